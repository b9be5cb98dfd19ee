package services

import (
	"strings"

	"agencydash/model"
	"agencydash/report"
)

// TaskTable reshapes tasks into report rows, resolving client names the
// same way the dashboards group them.
func TaskTable(title string, tasks []model.Task, clients []model.Client) *report.Table {
	byID := IndexClients(clients)
	t := &report.Table{
		Title:   title,
		Headers: []string{"Task", "Client", "Department", "Status", "Post Date", "Deadline", "Assigned To"},
	}
	for _, task := range tasks {
		if task.Deleted {
			continue
		}
		t.Rows = append(t.Rows, []string{
			task.TaskName,
			ResolveClientName(task, byID),
			task.Department,
			task.Status,
			model.FormatDate(task.PostDate),
			model.FormatDate(task.Deadline),
			task.AssignedTo,
		})
	}
	return t
}

func ClientTable(title string, clients []model.Client) *report.Table {
	t := &report.Table{
		Title:   title,
		Headers: []string{"Client ID", "Client", "Contact", "Email", "Phone", "Stage", "Assigned To", "Status"},
	}
	for _, c := range clients {
		if c.Deleted {
			continue
		}
		t.Rows = append(t.Rows, []string{
			c.ClientID, c.ClientName, c.ContactPerson, c.Email, c.Phone, c.Stage, c.AssignedToEmployee, c.Status,
		})
	}
	return t
}

// EmployeeTable never includes passwords.
func EmployeeTable(title string, employees []model.Employee) *report.Table {
	t := &report.Table{
		Title:   title,
		Headers: []string{"Name", "Email", "Department", "Role", "Status"},
	}
	for _, e := range employees {
		status := e.Status
		if status == "" {
			status = model.EmployeeActive
		}
		t.Rows = append(t.Rows, []string{e.EmployeeName, e.Email, e.Department, e.Role, strings.ToLower(status)})
	}
	return t
}
