package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydash/dto"
	"agencydash/model"
	"agencydash/repository"
)

func TestEmployeeService_CreateAndList(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewEmployeeService(store.Employees)
	svc.now = clock
	ctx := context.Background()

	emp, err := svc.Create(ctx, dto.CreateEmployeeRequest{Email: "Zoe@Agency.test", Password: "secret1", EmployeeName: "Zoe", Department: "Video", Role: "head"})
	require.NoError(t, err)
	assert.Equal(t, "zoe@agency.test", emp.Email)
	assert.True(t, IsPasswordHashed(emp.Password))
	assert.Equal(t, model.RoleHead, emp.Role)
	assert.Equal(t, model.EmployeeActive, emp.Status)

	_, err = svc.Create(ctx, dto.CreateEmployeeRequest{Email: "zoe@agency.test", Password: "secret1", EmployeeName: "Zoe 2", Department: "Video"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Create(ctx, dto.CreateEmployeeRequest{Email: "adam@agency.test", Password: "secret1", EmployeeName: "adam", Department: "Video Editing"})
	require.NoError(t, err)
	gus, err := svc.Create(ctx, dto.CreateEmployeeRequest{Email: "gus@agency.test", Password: "secret1", EmployeeName: "Gus", Department: "Graphics"})
	require.NoError(t, err)

	all, err := svc.List(ctx, dto.EmployeeQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"adam", "Gus", "Zoe"}, []string{all[0].EmployeeName, all[1].EmployeeName, all[2].EmployeeName})

	video, err := svc.Assignable(ctx, "video")
	require.NoError(t, err)
	assert.Len(t, video, 2)

	require.NoError(t, svc.Deactivate(ctx, gus.ID))
	active, err := svc.Assignable(ctx, "graphic")
	require.NoError(t, err)
	assert.Empty(t, active)

	inactive, err := svc.List(ctx, dto.EmployeeQuery{Status: "inactive"})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "gus@agency.test", inactive[0].Email)

	found, err := svc.List(ctx, dto.EmployeeQuery{Search: "ZOE"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestEmployeeService_Update(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewEmployeeService(store.Employees)
	ctx := context.Background()
	seedEmployee(t, store, model.Employee{ID: "e1", Email: "a@agency.test", Password: "old"})

	pw := "new-password"
	dept := " Social Media "
	emp, err := svc.Update(ctx, "e1", dto.UpdateEmployeeRequest{Password: &pw, Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "Social Media", emp.Department)
	ok, legacy := CheckPassword(emp.Password, pw)
	assert.True(t, ok)
	assert.False(t, legacy)

	_, err = svc.Update(ctx, "missing", dto.UpdateEmployeeRequest{Department: &dept})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeService_RehashPasswords(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewEmployeeService(store.Employees)
	ctx := context.Background()

	hashed, err := HashPassword("already")
	require.NoError(t, err)
	seedEmployee(t, store, model.Employee{ID: "e1", Email: "a@agency.test", Password: "plain-a"})
	seedEmployee(t, store, model.Employee{ID: "e2", Email: "b@agency.test", Password: hashed})
	seedEmployee(t, store, model.Employee{ID: "e3", Email: "c@agency.test"})

	changed, err := svc.RehashPasswords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	e1, err := store.Employees.Get(ctx, "e1")
	require.NoError(t, err)
	ok, legacy := CheckPassword(e1.Password, "plain-a")
	assert.True(t, ok)
	assert.False(t, legacy)

	e2, err := store.Employees.Get(ctx, "e2")
	require.NoError(t, err)
	assert.Equal(t, hashed, e2.Password)

	changed, err = svc.RehashPasswords(ctx)
	require.NoError(t, err)
	assert.Zero(t, changed)
}
