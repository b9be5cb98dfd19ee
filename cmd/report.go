package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agencydash/config"
	"agencydash/model"
	"agencydash/report"
	"agencydash/repository"
	"agencydash/services"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export records to xlsx or pdf",
	}
	cmd.AddCommand(newTaskReportCmd(), newClientReportCmd())
	return cmd
}

type reportFlags struct {
	format string
	out    string
}

func (f *reportFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", report.FormatExcel, "xlsx or pdf")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output file (default derived from the report name)")
}

func (f *reportFlags) write(cfg *config.Config, filename string, table *report.Table) error {
	renderer, err := report.NewRenderer(cfg.Report.PDFFontFile)
	if err != nil {
		return err
	}
	write, _, err := renderer.For(f.format)
	if err != nil {
		return err
	}
	if f.out != "" {
		filename = f.out
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := write(file, table); err != nil {
		file.Close()
		return fmt.Errorf("render %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Println(filename)
	return nil
}

func newTaskReportCmd() *cobra.Command {
	var (
		flags  reportFlags
		filter services.TaskFilter
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Export every task matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, backend, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			table, err := taskReport(cmd, backend.Store, filter)
			if err != nil {
				return err
			}
			return flags.write(cfg, report.Filename("tasks", filter.Month, flags.format), table)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&filter.Month, "month", "", "Month, e.g. 2024-05 or May")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Task status")
	cmd.Flags().StringVar(&filter.Department, "department", "", "Department")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Free-text search")
	return cmd
}

func taskReport(cmd *cobra.Command, store *repository.Store, filter services.TaskFilter) (*report.Table, error) {
	tasks := services.NewTaskService(store)
	all := model.Session{Email: "cli", Dashboard: model.DashboardSuperAdmin}

	rows, err := tasks.List(cmd.Context(), all, filter)
	if err != nil {
		return nil, err
	}
	clients, err := tasks.Clients(cmd.Context())
	if err != nil {
		return nil, err
	}
	title := "Tasks"
	if filter.Month != "" {
		title += " " + filter.Month
	}
	return services.TaskTable(title, rows, clients), nil
}

func newClientReportCmd() *cobra.Command {
	var (
		flags  reportFlags
		filter services.ClientFilter
	)

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Export every client matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, backend, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			clients, err := services.NewClientService(backend.Store).List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return flags.write(cfg, report.Filename("clients", filter.Stage, flags.format), services.ClientTable("Clients", clients))
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&filter.Stage, "stage", "", "Client stage")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Free-text search")
	return cmd
}
