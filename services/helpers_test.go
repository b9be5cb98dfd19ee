package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agencydash/config"
	"agencydash/model"
	"agencydash/repository"
)

var fixedNow = time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testJWT() config.JWTOptions {
	return config.JWTOptions{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "agencydash-test",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	}
}

func seedEmployee(t *testing.T, store *repository.Store, emp model.Employee) model.Employee {
	t.Helper()
	require.NoError(t, store.Employees.Create(context.Background(), &emp))
	return emp
}

func seedClient(t *testing.T, repo repository.ClientRepository, c model.Client) model.Client {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &c))
	return c
}

func seedTask(t *testing.T, store *repository.Store, task model.Task) model.Task {
	t.Helper()
	require.NoError(t, store.Tasks.Create(context.Background(), &task))
	return task
}

func session(d model.Dashboard, email string, head bool) model.Session {
	role := model.RoleEmployee
	if head {
		role = model.RoleHead
	}
	return model.Session{Email: email, Dashboard: d, Role: role}
}
