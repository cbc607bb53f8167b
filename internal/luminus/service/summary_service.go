package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/luminus-agency/luminus-backend/internal/luminus/domain"
	"github.com/luminus-agency/luminus-backend/internal/luminus/store"
)

// SummaryService computes the derived dashboard rollups. Everything is
// recomputed from the store on each read; the collections are small and
// nothing here caches or invalidates.
type SummaryService struct {
	store store.Store
}

// NewSummaryService creates a new summary service.
func NewSummaryService(st store.Store) *SummaryService {
	return &SummaryService{store: st}
}

// PipelineSummary aggregates the CRM board.
type PipelineSummary struct {
	TotalValue  float64 `json:"total_value"`
	ClosedCount int     `json:"closed_count"`
	LeadsCount  int     `json:"leads_count"`
}

// Pipeline sums estimated deal value across all leads regardless of stage
// and counts closed deals.
func (s *SummaryService) Pipeline(ctx context.Context) (*PipelineSummary, error) {
	leads, err := s.store.ListLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	sum := &PipelineSummary{LeadsCount: len(leads)}
	for _, l := range leads {
		sum.TotalValue += l.Value
		if l.Status == domain.LeadStatusClosed {
			sum.ClosedCount++
		}
	}
	return sum, nil
}

// FinanceSummary aggregates one month of the ledger.
type FinanceSummary struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Finance filters transactions to the given "YYYY-MM" month and totals
// them by direction.
func (s *SummaryService) Finance(ctx context.Context, month string) (*FinanceSummary, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	sum := &FinanceSummary{Month: month}
	for _, t := range txs {
		if !strings.HasPrefix(t.Date, month) {
			continue
		}
		switch t.Type {
		case domain.TransactionIncome:
			sum.Income += t.Amount
		case domain.TransactionExpense:
			sum.Expense += t.Amount
		}
	}
	sum.Balance = sum.Income - sum.Expense
	return sum, nil
}
