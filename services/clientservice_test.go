package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydash/dto"
	"agencydash/model"
	"agencydash/repository"
)

func newClientFixture(t *testing.T) (*ClientService, *repository.Store) {
	t.Helper()
	store := repository.NewMemoryStore()
	svc := NewClientService(store)
	svc.now = clock
	seedEmployee(t, store, model.Employee{ID: "e-sam", Email: "sam@agency.test", Department: "Strategy"})
	seedEmployee(t, store, model.Employee{ID: "e-ola", Email: "ola@agency.test", Department: "Strategy", Status: model.EmployeeInactive})
	seedEmployee(t, store, model.Employee{ID: "e-gia", Email: "gia@agency.test", Department: "Graphics"})
	return svc, store
}

func TestClientService_Create(t *testing.T) {
	svc, _ := newClientFixture(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, dto.CreateClientRequest{ClientName: " Acme ", Email: "Ops@Acme.test"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.ClientID, "CL-"))
	assert.Len(t, c.ClientID, 11)
	assert.Equal(t, "Acme", c.ClientName)
	assert.Equal(t, "ops@acme.test", c.Email)
	assert.Equal(t, model.StageOnboarding, c.Stage)
	assert.Equal(t, model.ClientActive, c.Status)

	_, err = svc.Create(ctx, dto.CreateClientRequest{ClientName: "Globex", ClientID: "GX-1", Stage: "content production"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateClientRequest{ClientName: "Globex again", ClientID: "gx-1"})
	assert.ErrorIs(t, err, ErrClientExists)

	_, err = svc.Create(ctx, dto.CreateClientRequest{ClientName: "Initech", Stage: "Launch"})
	assert.ErrorIs(t, err, ErrUnknownStage)

	clients, err := svc.List(ctx, ClientFilter{Stage: model.StageProduction})
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "GX-1", clients[0].ClientID)
}

func TestClientService_Workflow(t *testing.T) {
	svc, store := newClientFixture(t)
	ctx := context.Background()
	sam := session(model.DashboardStrategyEmployee, "sam@agency.test", false)

	c, err := svc.Create(ctx, dto.CreateClientRequest{ClientName: "Acme"})
	require.NoError(t, err)

	_, err = svc.AssignToEmployee(ctx, c.ID, "sam@agency.test")
	assert.ErrorIs(t, err, ErrClientNotFound, "must be forwarded first")

	forwarded, err := svc.Forward(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StageStrategy, forwarded.Stage)

	head, err := svc.HeadClients(ctx, ClientFilter{})
	require.NoError(t, err)
	require.Len(t, head, 1)
	assert.Equal(t, c.ID, head[0].ID)

	_, err = svc.AssignToEmployee(ctx, c.ID, "gia@agency.test")
	assert.ErrorIs(t, err, ErrNotStrategy)
	_, err = svc.AssignToEmployee(ctx, c.ID, "ola@agency.test")
	assert.ErrorIs(t, err, ErrNotStrategy)
	_, err = svc.AssignToEmployee(ctx, c.ID, "nobody@agency.test")
	assert.ErrorIs(t, err, ErrNotStrategy)

	assigned, err := svc.AssignToEmployee(ctx, c.ID, " SAM@agency.test")
	require.NoError(t, err)
	assert.Equal(t, "sam@agency.test", assigned.AssignedToEmployee)

	mine, err := svc.EmployeeClients(ctx, sam, ClientFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)

	others, err := svc.EmployeeClients(ctx, session(model.DashboardStrategyEmployee, "ola@agency.test", false), ClientFilter{})
	require.NoError(t, err)
	assert.Empty(t, others)

	advanced, err := svc.AdvanceStage(ctx, sam, c.ID, "content production")
	require.NoError(t, err)
	assert.Equal(t, model.StageProduction, advanced.Stage)

	_, err = svc.AdvanceStage(ctx, sam, c.ID, model.StageStrategy)
	assert.ErrorIs(t, err, ErrStageBackwards)

	_, err = svc.AdvanceStage(ctx, sam, c.ID, "Launch")
	assert.ErrorIs(t, err, ErrUnknownStage)

	_, err = svc.AdvanceStage(ctx, session(model.DashboardStrategyEmployee, "ola@agency.test", false), c.ID, model.StageDelivery)
	assert.ErrorIs(t, err, ErrClientNotFound)

	for _, repo := range []repository.ClientRepository{store.Clients, store.StrategyHeadClients, store.StrategyClients} {
		rec, err := repo.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StageProduction, rec.Stage)
		assert.Equal(t, "sam@agency.test", rec.AssignedToEmployee)
	}

	// The super admin may move a stage back.
	back := model.StageOnboarding
	updated, err := svc.Update(ctx, c.ID, dto.UpdateClientRequest{Stage: &back})
	require.NoError(t, err)
	assert.Equal(t, model.StageOnboarding, updated.Stage)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrClientNotFound)
	mine, err = svc.EmployeeClients(ctx, sam, ClientFilter{})
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestClientService_ForwardKeepsLaterStage(t *testing.T) {
	svc, _ := newClientFixture(t)
	c, err := svc.Create(context.Background(), dto.CreateClientRequest{ClientName: "Acme", Stage: model.StageDelivery})
	require.NoError(t, err)

	forwarded, err := svc.Forward(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StageDelivery, forwarded.Stage)
}

func TestClientService_UpdateMissing(t *testing.T) {
	svc, _ := newClientFixture(t)
	name := "x"
	_, err := svc.Update(context.Background(), "missing", dto.UpdateClientRequest{ClientName: &name})
	assert.ErrorIs(t, err, ErrClientNotFound)

	bad := "Launch"
	_, err = svc.Update(context.Background(), "missing", dto.UpdateClientRequest{Stage: &bad})
	assert.ErrorIs(t, err, ErrUnknownStage)
}

func TestStageCounts(t *testing.T) {
	counts := StageCounts([]model.Client{
		{Stage: model.StageOnboarding},
		{Stage: "client onboarding"},
		{Stage: model.StageDelivery},
		{Stage: "Paused"},
		{Stage: ""},
		{Stage: "Paused"},
		{Stage: model.StageDelivery, Deleted: true},
	})

	assert.Equal(t, []dto.StageCount{
		{Stage: model.StageOnboarding, Count: 2},
		{Stage: model.StageStrategy, Count: 0},
		{Stage: model.StageProduction, Count: 0},
		{Stage: model.StageDelivery, Count: 1},
		{Stage: "Paused", Count: 2},
		{Stage: "Unstaged", Count: 1},
	}, counts)
}
