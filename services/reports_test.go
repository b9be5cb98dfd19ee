package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydash/model"
)

func TestTaskTable(t *testing.T) {
	table := TaskTable("Tasks", []model.Task{
		{TaskName: "Poster", ClientID: "c1", Department: "Graphics", Status: "pending", PostDate: "2024-05-10", AssignedTo: "gia@agency.test"},
		{TaskName: "Hidden", Deleted: true},
		{TaskName: "Loose", PostDate: "someday"},
	}, []model.Client{{ID: "c1", ClientName: "Acme"}})

	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[0], len(table.Headers))
	assert.Equal(t, []string{"Poster", "Acme", "Graphics", "pending", "10 May 2024", "", "gia@agency.test"}, table.Rows[0])
	assert.Equal(t, UnknownClient, table.Rows[1][1])
	assert.Equal(t, "someday", table.Rows[1][4])

	table = TaskTable("Tasks", []model.Task{{TaskName: "Old", ClientID: "c1"}},
		[]model.Client{{ID: "c1", ClientName: "Acme", Deleted: true}})
	assert.Equal(t, UnknownClient, table.Rows[0][1])
}

func TestClientAndEmployeeTables(t *testing.T) {
	clients := ClientTable("Clients", []model.Client{
		{ClientID: "CL-1", ClientName: "Acme", Stage: model.StageDelivery},
		{ClientID: "CL-2", Deleted: true},
	})
	require.Len(t, clients.Rows, 1)
	assert.Equal(t, "CL-1", clients.Rows[0][0])

	employees := EmployeeTable("Employees", []model.Employee{
		{EmployeeName: "Gia", Email: "gia@agency.test", Password: "secret", Status: "Inactive"},
		{EmployeeName: "Vic", Email: "vic@agency.test"},
	})
	require.Len(t, employees.Rows, 2)
	assert.Equal(t, "inactive", employees.Rows[0][4])
	assert.Equal(t, model.EmployeeActive, employees.Rows[1][4])
	for _, row := range employees.Rows {
		assert.NotContains(t, row, "secret")
	}
}
