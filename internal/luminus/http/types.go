package http

import (
	"github.com/luminus-agency/luminus-backend/internal/luminus/service"
	"github.com/luminus-agency/luminus-backend/internal/luminus/store"
)

// Handler bundles the dependencies for the dashboard HTTP endpoints.
// Reads go straight to the store; every write goes through the cascade
// service so the counter invariants hold.
type Handler struct {
	cascade   *service.CascadeService
	summary   *service.SummaryService
	reconcile *service.ReconcileService
	store     store.Store
}

// New creates a new dashboard handler.
func New(cascade *service.CascadeService, summary *service.SummaryService, reconcile *service.ReconcileService, st store.Store) *Handler {
	return &Handler{
		cascade:   cascade,
		summary:   summary,
		reconcile: reconcile,
		store:     st,
	}
}
