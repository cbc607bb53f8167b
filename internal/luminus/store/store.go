// Package store defines the persistence boundary for the four entity
// collections and its two adapters (Redis key-value, Postgres tables).
// The cascade engine only ever talks to the Store interface; the backend
// is selected once at startup.
package store

import (
	"context"

	"github.com/luminus-agency/luminus-backend/internal/luminus/domain"
)

// Store is the persistence adapter for the entity collections. List
// results are ordered newest first. Get/Update/Delete return the matching
// domain.Err*NotFound sentinel when the identity is absent.
type Store interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, c *domain.Client) error
	UpdateClient(ctx context.Context, c *domain.Client) error

	ListLeads(ctx context.Context) ([]domain.Lead, error)
	GetLead(ctx context.Context, id string) (*domain.Lead, error)
	CreateLead(ctx context.Context, l *domain.Lead) error
	UpdateLead(ctx context.Context, l *domain.Lead) error

	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	CreateProject(ctx context.Context, p *domain.Project) error
	UpdateProject(ctx context.Context, p *domain.Project) error

	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, t *domain.Transaction) error
	UpdateTransaction(ctx context.Context, t *domain.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}
