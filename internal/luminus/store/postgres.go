package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luminus-agency/luminus-backend/internal/luminus/domain"
)

// PostgresStore persists the entity collections into four tables
// (clients, crm_leads, projects, finance_transactions). Column names are
// snake_case; the mapping to the in-memory model is lossless both ways.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Clients

const clientColumns = `id, name, company, email, phone, phone2, cpf, cnpj,
	address, city, state, website, instagram, billing_type, total_invested,
	active_projects, status, created_at`

func scanClient(row pgx.Row, c *domain.Client) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Phone2,
		&c.CPF, &c.CNPJ, &c.Address, &c.City, &c.State,
		&c.Website, &c.Instagram,
		&c.BillingType, &c.TotalInvested, &c.ActiveProjects,
		&c.Status, &c.CreatedAt,
	)
}

func (s *PostgresStore) ListClients(ctx context.Context) ([]domain.Client, error) {
	q := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC;`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Client, 0, 16)
	for rows.Next() {
		var c domain.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	q := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1;`
	var c domain.Client
	if err := scanClient(s.db.QueryRow(ctx, q, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) CreateClient(ctx context.Context, c *domain.Client) error {
	const q = `
INSERT INTO clients (id, name, company, email, phone, phone2, cpf, cnpj,
	address, city, state, website, instagram, billing_type, total_invested,
	active_projects, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
`
	_, err := s.db.Exec(ctx, q,
		c.ID, c.Name, c.Company, c.Email, c.Phone, c.Phone2,
		c.CPF, c.CNPJ, c.Address, c.City, c.State,
		c.Website, c.Instagram,
		c.BillingType, c.TotalInvested, c.ActiveProjects,
		c.Status, c.CreatedAt,
	)
	return err
}

func (s *PostgresStore) UpdateClient(ctx context.Context, c *domain.Client) error {
	const q = `
UPDATE clients
SET name = $2, company = $3, email = $4, phone = $5, phone2 = $6,
	cpf = $7, cnpj = $8, address = $9, city = $10, state = $11,
	website = $12, instagram = $13,
	billing_type = $14, total_invested = $15, active_projects = $16,
	status = $17
WHERE id = $1;
`
	tag, err := s.db.Exec(ctx, q,
		c.ID, c.Name, c.Company, c.Email, c.Phone, c.Phone2,
		c.CPF, c.CNPJ, c.Address, c.City, c.State,
		c.Website, c.Instagram,
		c.BillingType, c.TotalInvested, c.ActiveProjects, c.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// Leads

const leadColumns = `id, name, company, email, phone, source, service,
	value, status, expected_close_date, notes, created_at`

func scanLead(row pgx.Row, l *domain.Lead) error {
	return row.Scan(
		&l.ID, &l.Name, &l.Company, &l.Email, &l.Phone, &l.Source,
		&l.Service, &l.Value, &l.Status, &l.ExpectedCloseDate,
		&l.Notes, &l.CreatedAt,
	)
}

func (s *PostgresStore) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM crm_leads ORDER BY created_at DESC;`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Lead, 0, 16)
	for rows.Next() {
		var l domain.Lead
		if err := scanLead(rows, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM crm_leads WHERE id = $1;`
	var l domain.Lead
	if err := scanLead(s.db.QueryRow(ctx, q, id), &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (s *PostgresStore) CreateLead(ctx context.Context, l *domain.Lead) error {
	const q = `
INSERT INTO crm_leads (id, name, company, email, phone, source, service,
	value, status, expected_close_date, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`
	_, err := s.db.Exec(ctx, q,
		l.ID, l.Name, l.Company, l.Email, l.Phone, l.Source, l.Service,
		l.Value, l.Status, l.ExpectedCloseDate, l.Notes, l.CreatedAt,
	)
	return err
}

func (s *PostgresStore) UpdateLead(ctx context.Context, l *domain.Lead) error {
	const q = `
UPDATE crm_leads
SET name = $2, company = $3, email = $4, phone = $5, source = $6,
	service = $7, value = $8, status = $9, expected_close_date = $10,
	notes = $11
WHERE id = $1;
`
	tag, err := s.db.Exec(ctx, q,
		l.ID, l.Name, l.Company, l.Email, l.Phone, l.Source,
		l.Service, l.Value, l.Status, l.ExpectedCloseDate, l.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

// Projects

const projectColumns = `id, name, client, client_email, client_id, lead_id,
	budget, service_type, start_date, due_date, progress, status,
	priority, tasks, created_at`

func scanProject(row pgx.Row, p *domain.Project) error {
	var tasks []byte
	if err := row.Scan(
		&p.ID, &p.Name, &p.Client, &p.ClientEmail, &p.ClientID, &p.LeadID,
		&p.Budget, &p.ServiceType, &p.StartDate, &p.DueDate, &p.Progress,
		&p.Status, &p.Priority, &tasks, &p.CreatedAt,
	); err != nil {
		return err
	}
	if len(tasks) > 0 {
		return json.Unmarshal(tasks, &p.Tasks)
	}
	p.Tasks = []domain.ProjectTask{}
	return nil
}

func (s *PostgresStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC;`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1;`
	var p domain.Project
	if err := scanProject(s.db.QueryRow(ctx, q, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) CreateProject(ctx context.Context, p *domain.Project) error {
	tasks, err := json.Marshal(p.Tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	const q = `
INSERT INTO projects (id, name, client, client_email, client_id, lead_id,
	budget, service_type, start_date, due_date, progress, status,
	priority, tasks, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`
	_, err = s.db.Exec(ctx, q,
		p.ID, p.Name, p.Client, p.ClientEmail, p.ClientID, p.LeadID,
		p.Budget, p.ServiceType, p.StartDate, p.DueDate, p.Progress,
		p.Status, p.Priority, tasks, p.CreatedAt,
	)
	return err
}

func (s *PostgresStore) UpdateProject(ctx context.Context, p *domain.Project) error {
	tasks, err := json.Marshal(p.Tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	const q = `
UPDATE projects
SET name = $2, client = $3, client_email = $4, client_id = $5, lead_id = $6,
	budget = $7, service_type = $8, start_date = $9, due_date = $10,
	progress = $11, status = $12, priority = $13, tasks = $14
WHERE id = $1;
`
	tag, err := s.db.Exec(ctx, q,
		p.ID, p.Name, p.Client, p.ClientEmail, p.ClientID, p.LeadID,
		p.Budget, p.ServiceType, p.StartDate, p.DueDate, p.Progress,
		p.Status, p.Priority, tasks,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Transactions

const transactionColumns = `id, description, amount, type, date, status,
	client_id, project_id, created_at`

func scanTransaction(row pgx.Row, t *domain.Transaction) error {
	return row.Scan(
		&t.ID, &t.Description, &t.Amount, &t.Type, &t.Date, &t.Status,
		&t.ClientID, &t.ProjectID, &t.CreatedAt,
	)
}

func (s *PostgresStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	q := `SELECT ` + transactionColumns + ` FROM finance_transactions ORDER BY created_at DESC;`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Transaction, 0, 16)
	for rows.Next() {
		var t domain.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	q := `SELECT ` + transactionColumns + ` FROM finance_transactions WHERE id = $1;`
	var t domain.Transaction
	if err := scanTransaction(s.db.QueryRow(ctx, q, id), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStore) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	const q = `
INSERT INTO finance_transactions (id, description, amount, type, date,
	status, client_id, project_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := s.db.Exec(ctx, q,
		t.ID, t.Description, t.Amount, t.Type, t.Date, t.Status,
		t.ClientID, t.ProjectID, t.CreatedAt,
	)
	return err
}

func (s *PostgresStore) UpdateTransaction(ctx context.Context, t *domain.Transaction) error {
	const q = `
UPDATE finance_transactions
SET description = $2, amount = $3, type = $4, date = $5, status = $6,
	client_id = $7, project_id = $8
WHERE id = $1;
`
	tag, err := s.db.Exec(ctx, q,
		t.ID, t.Description, t.Amount, t.Type, t.Date, t.Status,
		t.ClientID, t.ProjectID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteTransaction(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM finance_transactions WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}
