// Package reconcile schedules the nightly counter-reconciliation run.
package reconcile

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/luminus-agency/luminus-backend/internal/luminus/service"
)

// Scheduler runs the counter reconciler on a cron schedule.
type Scheduler struct {
	svc  *service.ReconcileService
	cron *cron.Cron
	spec string
}

// NewScheduler creates a scheduler with the given cron spec
// (e.g. "@midnight").
func NewScheduler(svc *service.ReconcileService, spec string) *Scheduler {
	if spec == "" {
		spec = "@midnight"
	}
	return &Scheduler{
		svc:  svc,
		cron: cron.New(),
		spec: spec,
	}
}

// Start registers the job and begins the schedule.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		report, err := s.svc.Run(ctx)
		if err != nil {
			log.Printf("[reconcile] run failed: %v", err)
			return
		}
		log.Printf("[reconcile] run done: checked=%d repaired=%d",
			report.ClientsChecked, report.ClientsRepaired)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
