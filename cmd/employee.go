package cmd

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"agencydash/dto"
	"agencydash/services"
)

func newEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employee records",
	}
	cmd.AddCommand(newEmployeeAddCmd(), newEmployeeRehashCmd())
	return cmd
}

func newEmployeeAddCmd() *cobra.Command {
	var req dto.CreateEmployeeRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an employee with a hashed password",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validator.New()
			v.SetTagName("binding")
			if err := v.Struct(req); err != nil {
				return fmt.Errorf("invalid employee: %w", err)
			}

			_, logger, backend, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			emp, err := services.NewEmployeeService(backend.Store.Employees).Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			logger.WithField("id", emp.ID).WithField("email", emp.Email).Info("employee created")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Login email (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Initial password (required)")
	cmd.Flags().StringVar(&req.EmployeeName, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&req.Department, "department", "", "Department, e.g. Graphics (required)")
	cmd.Flags().StringVar(&req.Role, "role", "employee", "head or employee")
	for _, name := range []string{"email", "password", "name", "department"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newEmployeeRehashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rehash",
		Short: "Replace plaintext passwords with bcrypt hashes",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, backend, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			changed, err := services.NewEmployeeService(backend.Store.Employees).RehashPasswords(cmd.Context())
			logger.WithField("changed", changed).Info("password migration finished")
			return err
		},
	}
}
