package main

import (
	"context"
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/robfig/cron/v3"

	"github.com/goliatone/go-cms-medium/internal/logging"
	"github.com/goliatone/go-cms-medium/pkg/interfaces"
)

// cronScheduler runs registered imports on cron expressions. Register matches
// mediumcmd.CronRegistrar.
type cronScheduler struct {
	cron   *cron.Cron
	logger interfaces.Logger
}

func newCronScheduler(logger interfaces.Logger) *cronScheduler {
	return &cronScheduler{cron: cron.New(), logger: logging.Ensure(logger)}
}

func (s *cronScheduler) Register(cfg command.HandlerConfig, handler any) error {
	run, ok := handler.(func() error)
	if !ok {
		return fmt.Errorf("schedule %q: unsupported handler %T", cfg.Expression, handler)
	}
	_, err := s.cron.AddFunc(cfg.Expression, func() {
		if err := run(); err != nil {
			s.logger.Error("medium.import.schedule.failed", "expression", cfg.Expression, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", cfg.Expression, err)
	}
	s.logger.Info("medium.import.schedule.registered", "expression", cfg.Expression)
	return nil
}

// Run starts the scheduler and blocks until ctx is done and in-flight runs
// have finished.
func (s *cronScheduler) Run(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
}
