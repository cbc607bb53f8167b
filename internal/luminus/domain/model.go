package domain

import "time"

// DateLayout is the wire format for transaction dates and project deadlines.
const DateLayout = "2006-01-02"

// LeadStatus is a stage of the CRM pipeline. Stages are ordered for display
// but transitions between them are unconstrained.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusProposal    LeadStatus = "proposal"
	LeadStatusNegotiation LeadStatus = "negotiation"
	LeadStatusClosed      LeadStatus = "closed"
	LeadStatusLost        LeadStatus = "lost"
)

// PipelineStages lists the pipeline columns in board order.
var PipelineStages = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusProposal,
	LeadStatusNegotiation,
	LeadStatusClosed,
	LeadStatusLost,
}

// Valid reports whether s is one of the known pipeline stages.
func (s LeadStatus) Valid() bool {
	for _, st := range PipelineStages {
		if s == st {
			return true
		}
	}
	return false
}

// Project status constants
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectOnHold    = "on_hold"
)

// Transaction type and status constants
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"

	TransactionPaid    = "paid"
	TransactionPending = "pending"
)

// Client billing classification
const (
	BillingRecurring = "recurring"
	BillingOneTime   = "one_time"
)

// Client is an onboarded customer of the agency. TotalInvested and
// ActiveProjects are running counters maintained by the cascade engine;
// they must always match a fresh aggregation over Transactions/Projects.
type Client struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Company        string    `json:"company"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Phone2         string    `json:"phone2,omitempty"`
	CPF            string    `json:"cpf,omitempty"`
	CNPJ           string    `json:"cnpj,omitempty"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	Website        string    `json:"website,omitempty"`
	Instagram      string    `json:"instagram,omitempty"`
	BillingType    string    `json:"billing_type"`
	TotalInvested  float64   `json:"total_invested"`
	ActiveProjects int       `json:"active_projects"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Lead is a prospective client moving through the sales pipeline.
type Lead struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Company           string     `json:"company"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	Source            string     `json:"source,omitempty"`
	Service           string     `json:"service,omitempty"`
	Value             float64    `json:"value"`
	Status            LeadStatus `json:"status"`
	ExpectedCloseDate string     `json:"expected_close_date,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ProjectTask is one item of a project's checklist.
type ProjectTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Project is a unit of delivery work. Progress is derived from the task
// checklist and recomputed whenever a task's completed flag flips.
// ClientID is a non-owning back-reference; Client carries the display name
// even when no onboarded client matched.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Client      string        `json:"client"`
	ClientEmail string        `json:"client_email,omitempty"`
	ClientID    string        `json:"client_id,omitempty"`
	LeadID      string        `json:"lead_id,omitempty"`
	Budget      float64       `json:"budget"`
	ServiceType string        `json:"service_type"`
	StartDate   string        `json:"start_date"`
	DueDate     string        `json:"due_date,omitempty"`
	Progress    int           `json:"progress"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority,omitempty"`
	Tasks       []ProjectTask `json:"tasks"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Terminal reports whether the project no longer counts against its
// client's active-project counter.
func (p *Project) Terminal() bool {
	return p.Status == ProjectCompleted
}

// Transaction is a finance ledger entry. Amount is always a non-negative
// magnitude; direction is carried by Type alone.
type Transaction struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Date        string    `json:"date"`
	Status      string    `json:"status"`
	ClientID    string    `json:"client_id,omitempty"`
	ProjectID   string    `json:"project_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
