package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"MarketScout/internal/logger"
	"MarketScout/internal/model"
)

// Runner executes one collect-and-analyze pass.
type Runner interface {
	Run(ctx context.Context) model.Report
}

// Scheduler runs the pipeline on a cron schedule. Runs never overlap: a
// trigger that fires while a run is in flight shares that run's report.
type Scheduler struct {
	Cron   *cron.Cron
	Runner Runner
	Ctx    context.Context

	group singleflight.Group
}

// NewScheduler creates a new Scheduler. Cron specs include a seconds field.
func NewScheduler(ctx context.Context, r Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: r,
		Ctx:    ctx,
	}
}

// Register adds the collection task under spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register collection task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.L().Info().Msg("scheduler started")
}

// Stop stops the scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.L().Info().Msg("scheduler stopped")
}

// RunNow executes a run immediately, or joins the one already in flight.
func (s *Scheduler) RunNow() model.Report {
	v, _, shared := s.group.Do("run", func() (any, error) {
		return s.Runner.Run(s.Ctx), nil
	})
	if shared {
		logger.L().Debug().Msg("joined in-flight run")
	}
	return v.(model.Report)
}
