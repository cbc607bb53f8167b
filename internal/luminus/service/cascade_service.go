// Package service implements the cross-entity cascade rules: the side
// effects that keep clients, leads, projects and transactions consistent
// when one of them is created or changes status.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/luminus-agency/luminus-backend/internal/luminus/domain"
	"github.com/luminus-agency/luminus-backend/internal/luminus/store"
)

// CascadeService is the single write path for all four collections.
// Every mutation entry point (REST forms, pipeline drag-drop, assistant
// actions) goes through it, so the counter invariants hold regardless of
// which surface triggered the change.
//
// Multi-step cascades run serialized: each step is awaited and checked,
// and the cascade aborts on the first failure. Completed steps are not
// rolled back; the wrapped error names the failed step so the caller can
// report what partially landed.
type CascadeService struct {
	store store.Store
	now   func() time.Time
}

// NewCascadeService creates a new cascade service.
func NewCascadeService(st store.Store) *CascadeService {
	return &CascadeService{
		store: st,
		now:   time.Now,
	}
}

func (s *CascadeService) today() string {
	return s.now().Format(domain.DateLayout)
}

// CreateClientInput carries the onboarding form fields.
type CreateClientInput struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Phone2      string `json:"phone2"`
	CPF         string `json:"cpf"`
	CNPJ        string `json:"cnpj"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Website     string `json:"website"`
	Instagram   string `json:"instagram"`
	BillingType string `json:"billing_type"`
}

// CreateClient builds a client with zeroed counters and appends it.
// No side effects on any other collection.
func (s *CascadeService) CreateClient(ctx context.Context, in CreateClientInput) (*domain.Client, error) {
	id, err := domain.NewID(domain.ClientIDPrefix)
	if err != nil {
		return nil, fmt.Errorf("generate client id: %w", err)
	}

	billing := in.BillingType
	if billing == "" {
		billing = domain.BillingRecurring
	}

	c := &domain.Client{
		ID:             id,
		Name:           in.Name,
		Company:        in.Company,
		Email:          in.Email,
		Phone:          in.Phone,
		Phone2:         in.Phone2,
		CPF:            in.CPF,
		CNPJ:           in.CNPJ,
		Address:        in.Address,
		City:           in.City,
		State:          in.State,
		Website:        in.Website,
		Instagram:      in.Instagram,
		BillingType:    billing,
		TotalInvested:  0,
		ActiveProjects: 0,
		Status:         "active",
		CreatedAt:      s.now(),
	}
	if err := s.store.CreateClient(ctx, c); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	log.Printf("[cascade] client created id=%s company=%q", c.ID, c.Company)
	return c, nil
}

// UpdateClient edits a client's profile fields in place. The counters
// and status are not reachable from here; counters belong to the
// cascades and the reconciler.
func (s *CascadeService) UpdateClient(ctx context.Context, id string, in CreateClientInput) (*domain.Client, error) {
	c, err := s.store.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Company != "" {
		c.Company = in.Company
	}
	if in.Email != "" {
		c.Email = in.Email
	}
	if in.Phone != "" {
		c.Phone = in.Phone
	}
	if in.Phone2 != "" {
		c.Phone2 = in.Phone2
	}
	if in.CPF != "" {
		c.CPF = in.CPF
	}
	if in.CNPJ != "" {
		c.CNPJ = in.CNPJ
	}
	if in.Address != "" {
		c.Address = in.Address
	}
	if in.City != "" {
		c.City = in.City
	}
	if in.State != "" {
		c.State = in.State
	}
	if in.Website != "" {
		c.Website = in.Website
	}
	if in.Instagram != "" {
		c.Instagram = in.Instagram
	}
	if in.BillingType != "" {
		c.BillingType = in.BillingType
	}
	if err := s.store.UpdateClient(ctx, c); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return c, nil
}

// CreateTransactionInput carries a finance ledger entry.
type CreateTransactionInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	ClientID    string  `json:"client_id"`
	ProjectID   string  `json:"project_id"`
}

// CreateTransaction appends a transaction with defaults filled in
// (income, paid, dated today). It never touches client counters; counter
// maintenance belongs to the calling cascade.
func (s *CascadeService) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*domain.Transaction, error) {
	if in.Amount < 0 {
		return nil, domain.ErrNegativeAmount
	}

	id, err := domain.NewID(domain.TransactionIDPrefix)
	if err != nil {
		return nil, fmt.Errorf("generate transaction id: %w", err)
	}

	t := &domain.Transaction{
		ID:          id,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Date:        in.Date,
		Status:      in.Status,
		ClientID:    in.ClientID,
		ProjectID:   in.ProjectID,
		CreatedAt:   s.now(),
	}
	if t.Type == "" {
		t.Type = domain.TransactionIncome
	}
	if t.Status == "" {
		t.Status = domain.TransactionPaid
	}
	if t.Date == "" {
		t.Date = s.today()
	}

	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

// RecordTransaction is the user-initiated entry point (finance form and
// the record_transaction assistant action). On top of CreateTransaction
// it credits a linked client's lifetime value for direct income entries.
// Project-linked income never credits lifetime value, whether posted by
// CreateProject or entered manually against a project: that income is
// credited through the active-project counter, and the reconciler
// recomputes lifetime value under the same rule.
func (s *CascadeService) RecordTransaction(ctx context.Context, in CreateTransactionInput) (*domain.Transaction, error) {
	t, err := s.CreateTransaction(ctx, in)
	if err != nil {
		return nil, err
	}

	if t.Type == domain.TransactionIncome && t.ClientID != "" && t.ProjectID == "" {
		// The transaction is already posted; a failure here is reported,
		// not rolled back. The reconciler repairs the counter later.
		c, err := s.store.GetClient(ctx, t.ClientID)
		if err != nil {
			return t, fmt.Errorf("credit total invested: %w", err)
		}
		c.TotalInvested += t.Amount
		if err := s.store.UpdateClient(ctx, c); err != nil {
			return t, fmt.Errorf("credit total invested: %w", err)
		}
		log.Printf("[cascade] client %s total_invested += %.2f", c.ID, t.Amount)
	}
	return t, nil
}

// CreateProjectInput carries the project-start form fields. ClientID
// links an onboarded client directly; ClientName is matched against
// client companies when no ID is given.
type CreateProjectInput struct {
	Name        string  `json:"name"`
	ClientID    string  `json:"client_id"`
	ClientName  string  `json:"client_name"`
	LeadID      string  `json:"lead_id"`
	Budget      float64 `json:"budget"`
	ServiceType string  `json:"service_type"`
	DueDate     string  `json:"due_date"`
	Priority    string  `json:"priority"`
}

// CreateProject starts a project and runs its cascade: the project is
// appended, an income transaction for the budget is posted, and the
// resolved client's active-project counter is incremented. An unmatched
// client name is not an error; the project proceeds unlinked with the
// free-text label.
func (s *CascadeService) CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error) {
	if in.Budget < 0 {
		return nil, domain.ErrNegativeAmount
	}

	client, err := s.resolveClient(ctx, in.ClientID, in.ClientName)
	if err != nil {
		return nil, fmt.Errorf("resolve client: %w", err)
	}

	id, err := domain.NewID(domain.ProjectIDPrefix)
	if err != nil {
		return nil, fmt.Errorf("generate project id: %w", err)
	}
	tasks, err := domain.TemplateTasks(in.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("seed template tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.ProjectTask{}
	}

	p := &domain.Project{
		ID:          id,
		Name:        in.Name,
		Client:      in.ClientName,
		LeadID:      in.LeadID,
		Budget:      in.Budget,
		ServiceType: in.ServiceType,
		StartDate:   s.today(),
		DueDate:     in.DueDate,
		Progress:    0,
		Status:      domain.ProjectActive,
		Priority:    in.Priority,
		Tasks:       tasks,
		CreatedAt:   s.now(),
	}
	if p.Priority == "" {
		p.Priority = "medium"
	}
	if client != nil {
		p.Client = client.Company
		p.ClientEmail = client.Email
		p.ClientID = client.ID
	}

	if err := s.store.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	// Budget goes straight to the ledger. Deliberately the bare
	// transaction path: the client is credited via active_projects below,
	// not total_invested, so the income is not double counted.
	if _, err := s.CreateTransaction(ctx, CreateTransactionInput{
		Description: fmt.Sprintf("Project kickoff: %s (%s)", p.Name, p.Client),
		Amount:      p.Budget,
		Type:        domain.TransactionIncome,
		ClientID:    p.ClientID,
		ProjectID:   p.ID,
	}); err != nil {
		return p, fmt.Errorf("post project income: %w", err)
	}

	if client != nil {
		client.ActiveProjects++
		if err := s.store.UpdateClient(ctx, client); err != nil {
			return p, fmt.Errorf("increment active projects: %w", err)
		}
	}

	log.Printf("[cascade] project created id=%s client_id=%q budget=%.2f", p.ID, p.ClientID, p.Budget)
	return p, nil
}

// resolveClient finds the target client by id, or by case-insensitive
// exact company match. A miss returns (nil, nil).
func (s *CascadeService) resolveClient(ctx context.Context, id, name string) (*domain.Client, error) {
	if id != "" {
		c, err := s.store.GetClient(ctx, id)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, domain.ErrClientNotFound) {
			return nil, err
		}
	}
	if name == "" {
		return nil, nil
	}
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if strings.EqualFold(clients[i].Company, name) {
			return &clients[i], nil
		}
	}
	return nil, nil
}

// CreateLeadInput carries the CRM capture form fields.
type CreateLeadInput struct {
	Name              string  `json:"name"`
	Company           string  `json:"company"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	Source            string  `json:"source"`
	Service           string  `json:"service"`
	Value             float64 `json:"value"`
	ExpectedCloseDate string  `json:"expected_close_date"`
	Notes             string  `json:"notes"`
}

// CreateLead captures a new opportunity at the start of the pipeline.
func (s *CascadeService) CreateLead(ctx context.Context, in CreateLeadInput) (*domain.Lead, error) {
	id, err := domain.NewID(domain.LeadIDPrefix)
	if err != nil {
		return nil, fmt.Errorf("generate lead id: %w", err)
	}
	l := &domain.Lead{
		ID:                id,
		Name:              in.Name,
		Company:           in.Company,
		Email:             in.Email,
		Phone:             in.Phone,
		Source:            in.Source,
		Service:           in.Service,
		Value:             in.Value,
		Status:            domain.LeadStatusNew,
		ExpectedCloseDate: in.ExpectedCloseDate,
		Notes:             in.Notes,
		CreatedAt:         s.now(),
	}
	if err := s.store.CreateLead(ctx, l); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return l, nil
}

// TransitionResult reports the outcome of a pipeline move.
type TransitionResult struct {
	Lead          *domain.Lead   `json:"lead"`
	Client        *domain.Client `json:"client,omitempty"`
	ClientCreated bool           `json:"client_created"`
}

// TransitionLeadStatus moves a lead to a new pipeline stage. Any stage is
// reachable from any other. Reaching closed materializes a client from
// the lead's contact fields, idempotently: when the lead has an email and
// a client with that email already exists, no duplicate is created and
// the existing client is returned.
func (s *CascadeService) TransitionLeadStatus(ctx context.Context, leadID string, status domain.LeadStatus) (*TransitionResult, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidLeadStatus
	}

	l, err := s.store.GetLead(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("load lead: %w", err)
	}
	l.Status = status
	if err := s.store.UpdateLead(ctx, l); err != nil {
		return nil, fmt.Errorf("update lead status: %w", err)
	}

	res := &TransitionResult{Lead: l}
	if status != domain.LeadStatusClosed {
		return res, nil
	}

	if l.Email != "" {
		existing, err := s.findClientByEmail(ctx, l.Email)
		if err != nil {
			return res, fmt.Errorf("materialize client: %w", err)
		}
		if existing != nil {
			res.Client = existing
			log.Printf("[cascade] lead %s closed, client %s already on file", l.ID, existing.ID)
			return res, nil
		}
	}

	c, err := s.CreateClient(ctx, CreateClientInput{
		Name:    l.Name,
		Company: l.Company,
		Email:   l.Email,
		Phone:   l.Phone,
	})
	if err != nil {
		return res, fmt.Errorf("materialize client: %w", err)
	}
	res.Client = c
	res.ClientCreated = true
	log.Printf("[cascade] lead %s closed, client %s materialized", l.ID, c.ID)
	return res, nil
}

func (s *CascadeService) findClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].Email != "" && strings.EqualFold(clients[i].Email, email) {
			return &clients[i], nil
		}
	}
	return nil, nil
}

// ToggleProjectTask flips one checklist item and recomputes the project's
// progress in the same update: round(100 * completed / total), 0 when the
// checklist is empty.
func (s *CascadeService) ToggleProjectTask(ctx context.Context, projectID, taskID string) (*domain.Project, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	found := false
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			p.Tasks[i].Completed = !p.Tasks[i].Completed
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrTaskNotFound
	}

	p.Progress = taskProgress(p.Tasks)
	if err := s.store.UpdateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("update project progress: %w", err)
	}
	return p, nil
}

func taskProgress(tasks []domain.ProjectTask) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}

// UpdateTransaction edits a ledger entry in place.
func (s *CascadeService) UpdateTransaction(ctx context.Context, id string, in CreateTransactionInput) (*domain.Transaction, error) {
	if in.Amount < 0 {
		return nil, domain.ErrNegativeAmount
	}
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Description != "" {
		t.Description = in.Description
	}
	if in.Amount > 0 {
		t.Amount = in.Amount
	}
	if in.Type != "" {
		t.Type = in.Type
	}
	if in.Date != "" {
		t.Date = in.Date
	}
	if in.Status != "" {
		t.Status = in.Status
	}
	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

// DeleteTransaction removes a ledger entry.
func (s *CascadeService) DeleteTransaction(ctx context.Context, id string) error {
	return s.store.DeleteTransaction(ctx, id)
}
