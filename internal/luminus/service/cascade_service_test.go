package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminus-agency/luminus-backend/internal/luminus/domain"
	"github.com/luminus-agency/luminus-backend/internal/luminus/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.NewRedisStore(client)
}

func newTestService(t *testing.T) (*CascadeService, store.Store) {
	t.Helper()
	st := newTestStore(t)
	return NewCascadeService(st), st
}

func TestCreateClient_Defaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, CreateClientInput{
		Name:    "Jane Doe",
		Company: "Acme",
		Email:   "jane@acme.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, domain.BillingRecurring, c.BillingType)
	assert.Zero(t, c.TotalInvested)
	assert.Zero(t, c.ActiveProjects)
	assert.Equal(t, "active", c.Status)
}

func TestUpdateClient_MergesProfileFields(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, CreateClientInput{Company: "Acme", Email: "jane@acme.com"})
	require.NoError(t, err)

	// drift a counter to prove the edit path cannot touch it
	stored, err := st.GetClient(ctx, c.ID)
	require.NoError(t, err)
	stored.TotalInvested = 900
	require.NoError(t, st.UpdateClient(ctx, stored))

	updated, err := svc.UpdateClient(ctx, c.ID, CreateClientInput{
		Phone:       "555-0100",
		City:        "Curitiba",
		State:       "PR",
		BillingType: domain.BillingOneTime,
	})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "Curitiba", updated.City)
	assert.Equal(t, "PR", updated.State)
	assert.Equal(t, domain.BillingOneTime, updated.BillingType)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, 900.0, updated.TotalInvested)
}

func TestUpdateClient_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateClient(context.Background(), "cl-missing", CreateClientInput{Phone: "555"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestCreateTransaction_Defaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tx, err := svc.CreateTransaction(ctx, CreateTransactionInput{
		Description: "Consulting",
		Amount:      250,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionIncome, tx.Type)
	assert.Equal(t, domain.TransactionPaid, tx.Status)
	assert.NotEmpty(t, tx.Date)
	assert.GreaterOrEqual(t, tx.Amount, 0.0)
}

func TestCreateTransaction_RejectsNegativeAmount(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		Description: "Refund",
		Amount:      -100,
		Type:        domain.TransactionExpense,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestRecordTransaction_CreditsLinkedClient(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, CreateClientInput{Company: "Acme", Email: "jane@acme.com"})
	require.NoError(t, err)

	_, err = svc.RecordTransaction(ctx, CreateTransactionInput{
		Description: "Retainer",
		Amount:      1200,
		Type:        domain.TransactionIncome,
		ClientID:    c.ID,
	})
	require.NoError(t, err)

	got, err := st.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, got.TotalInvested)
	assert.Equal(t, 0, got.ActiveProjects)
}

func TestRecordTransaction_ExpenseDoesNotCredit(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, CreateClientInput{Company: "Acme"})
	require.NoError(t, err)

	_, err = svc.RecordTransaction(ctx, CreateTransactionInput{
		Description: "Ad spend",
		Amount:      300,
		Type:        domain.TransactionExpense,
		ClientID:    c.ID,
	})
	require.NoError(t, err)

	got, err := st.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalInvested)
}

func TestRecordTransaction_ProjectLinkedIncomeDoesNotCredit(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, CreateClientInput{Company: "Acme", Email: "jane@acme.com"})
	require.NoError(t, err)
	p, err := svc.CreateProject(ctx, CreateProjectInput{Name: "Campaign", ClientID: c.ID, Budget: 5000})
	require.NoError(t, err)

	// milestone payment entered through the finance form against the project
	_, err = svc.RecordTransaction(ctx, CreateTransactionInput{
		Description: "Milestone payment",
		Amount:      1000,
		Type:        domain.TransactionIncome,
		ClientID:    c.ID,
		ProjectID:   p.ID,
	})
	require.NoError(t, err)

	got, err := st.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalInvested)

	// the write path and the reconciler agree, so nothing drifts
	report, err := NewReconcileService(st).Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.ClientsRepaired)

	again, err := st.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, again.TotalInvested)
	assert.Equal(t, 1, again.ActiveProjects)
}

func TestCreateProject_Cascade(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, CreateClientInput{Company: "Acme", Email: "jane@acme.com"})
	require.NoError(t, err)

	p, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:        "Launch campaign",
		ClientID:    c.ID,
		Budget:      5000,
		ServiceType: "Consulting",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, p.Progress)
	assert.Equal(t, domain.ProjectActive, p.Status)
	assert.Equal(t, "Acme", p.Client)
	assert.Equal(t, c.ID, p.ClientID)

	// exactly one income transaction for the budget, linked to the client
	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TransactionIncome, txs[0].Type)
	assert.Equal(t, 5000.0, txs[0].Amount)
	assert.Equal(t, c.ID, txs[0].ClientID)
	assert.Equal(t, p.ID, txs[0].ProjectID)

	// active_projects bumped, total_invested untouched
	got, err := st.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ActiveProjects)
	assert.Zero(t, got.TotalInvested)
}

func TestCreateProject_ResolvesClientByCompanyName(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, CreateClientInput{Company: "Acme"})
	require.NoError(t, err)

	p, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:       "SEO sprint",
		ClientName: "aCmE",
		Budget:     800,
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, p.ClientID)
	assert.Equal(t, "Acme", p.Client)

	got, err := st.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ActiveProjects)
}

// wrappedNotFoundStore wraps lookup misses the way an instrumented
// adapter would.
type wrappedNotFoundStore struct {
	store.Store
}

func (w wrappedNotFoundStore) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	c, err := w.Store.GetClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return c, nil
}

func TestCreateProject_WrappedNotFoundFallsBackToNameMatch(t *testing.T) {
	st := newTestStore(t)
	svc := NewCascadeService(wrappedNotFoundStore{st})
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, CreateClientInput{Company: "Acme"})
	require.NoError(t, err)

	p, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:       "Retry campaign",
		ClientID:   "cl-stale",
		ClientName: "Acme",
		Budget:     700,
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, p.ClientID)
}

func TestCreateProject_UnresolvedClientProceedsUnlinked(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:       "One-off landing page",
		ClientName: "Nobody Inc",
		Budget:     400,
	})
	require.NoError(t, err)

	assert.Empty(t, p.ClientID)
	assert.Equal(t, "Nobody Inc", p.Client)

	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Empty(t, txs[0].ClientID)
}

func TestCreateProject_SeedsTemplateTasks(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Name:        "Acme socials",
		ServiceType: "Social Media",
		Budget:      1000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.Tasks)
	for _, task := range p.Tasks {
		assert.NotEmpty(t, task.ID)
		assert.NotEmpty(t, task.Text)
		assert.False(t, task.Completed)
	}
	assert.Equal(t, 0, p.Progress)
}

func TestTransitionLeadStatus_ClosedMaterializesClient(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	l, err := svc.CreateLead(ctx, CreateLeadInput{
		Name:    "Jane Doe",
		Company: "Acme",
		Email:   "jane@acme.com",
		Phone:   "555-0100",
		Value:   9000,
	})
	require.NoError(t, err)

	res, err := svc.TransitionLeadStatus(ctx, l.ID, domain.LeadStatusClosed)
	require.NoError(t, err)
	require.True(t, res.ClientCreated)
	require.NotNil(t, res.Client)

	assert.Equal(t, "Acme", res.Client.Company)
	assert.Equal(t, "Jane Doe", res.Client.Name)
	assert.Zero(t, res.Client.TotalInvested)
	assert.Zero(t, res.Client.ActiveProjects)

	clients, err := st.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestTransitionLeadStatus_ClosedIsIdempotentByEmail(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	l, err := svc.CreateLead(ctx, CreateLeadInput{
		Name: "Jane Doe", Company: "Acme", Email: "jane@acme.com",
	})
	require.NoError(t, err)

	first, err := svc.TransitionLeadStatus(ctx, l.ID, domain.LeadStatusClosed)
	require.NoError(t, err)
	require.True(t, first.ClientCreated)

	// drag the card out and back into closed
	_, err = svc.TransitionLeadStatus(ctx, l.ID, domain.LeadStatusNegotiation)
	require.NoError(t, err)
	second, err := svc.TransitionLeadStatus(ctx, l.ID, domain.LeadStatusClosed)
	require.NoError(t, err)

	assert.False(t, second.ClientCreated)
	require.NotNil(t, second.Client)
	assert.Equal(t, first.Client.ID, second.Client.ID)

	clients, err := st.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestTransitionLeadStatus_NonClosedHasNoSideEffects(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	l, err := svc.CreateLead(ctx, CreateLeadInput{Name: "Jane", Company: "Acme"})
	require.NoError(t, err)

	for _, status := range []domain.LeadStatus{
		domain.LeadStatusContacted,
		domain.LeadStatusQualified,
		domain.LeadStatusProposal,
		domain.LeadStatusLost,
		domain.LeadStatusNew,
	} {
		res, err := svc.TransitionLeadStatus(ctx, l.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, res.Lead.Status)
		assert.Nil(t, res.Client)
	}

	clients, err := st.ListClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestTransitionLeadStatus_InvalidStatus(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.TransitionLeadStatus(context.Background(), "lead-missing", "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidLeadStatus)
}

func TestTransitionLeadStatus_MissingLead(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.TransitionLeadStatus(context.Background(), "lead-missing", domain.LeadStatusClosed)
	assert.ErrorIs(t, err, domain.ErrLeadNotFound)
}

func TestToggleProjectTask_RecomputesProgress(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:        "Acme SEO",
		ServiceType: "SEO", // 4-task template
		Budget:      100,
	})
	require.NoError(t, err)
	require.Len(t, p.Tasks, 4)

	p, err = svc.ToggleProjectTask(ctx, p.ID, p.Tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 25, p.Progress)

	p, err = svc.ToggleProjectTask(ctx, p.ID, p.Tasks[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 50, p.Progress)

	// toggle the first back off
	p, err = svc.ToggleProjectTask(ctx, p.ID, p.Tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 25, p.Progress)
}

func TestToggleProjectTask_UnknownTask(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectInput{Name: "No checklist"})
	require.NoError(t, err)

	_, err = svc.ToggleProjectTask(ctx, p.ID, "task-missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskProgress_Rounding(t *testing.T) {
	tasks := []domain.ProjectTask{
		{ID: "a", Completed: true},
		{ID: "b"},
		{ID: "c"},
	}
	assert.Equal(t, 33, taskProgress(tasks))

	tasks[1].Completed = true
	assert.Equal(t, 67, taskProgress(tasks))

	assert.Equal(t, 0, taskProgress(nil))
}

func TestUpdateTransaction_MergesFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tx, err := svc.CreateTransaction(ctx, CreateTransactionInput{
		Description: "Hosting",
		Amount:      50,
		Type:        domain.TransactionExpense,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTransaction(ctx, tx.ID, CreateTransactionInput{
		Amount: 75,
		Status: domain.TransactionPending,
	})
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.Amount)
	assert.Equal(t, domain.TransactionPending, updated.Status)
	assert.Equal(t, "Hosting", updated.Description)
}

func TestDeleteTransaction(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	tx, err := svc.CreateTransaction(ctx, CreateTransactionInput{Description: "Temp", Amount: 10})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))

	_, err = st.GetTransaction(ctx, tx.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	assert.ErrorIs(t, svc.DeleteTransaction(ctx, tx.ID), domain.ErrTransactionNotFound)
}
