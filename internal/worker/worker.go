// Package worker runs the cron-driven materialization of due scheduled
// transfers. It is the production trigger that turns a definition's next
// occurrence into a concrete transfer execution.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/finvault/bankcore/pkg/config"
	transfersvc "github.com/finvault/bankcore/pkg/service/transfer"
)

// Worker polls for due scheduled transfers on a cron schedule.
type Worker struct {
	cron      *cron.Cron
	scheduled *transfersvc.ScheduledService
	cfg       *config.Worker
	logger    *slog.Logger
}

// New creates a worker with panic recovery wired into the cron chain.
func New(scheduled *transfersvc.ScheduledService, cfg *config.Worker, logger *slog.Logger) *Worker {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return &Worker{
		cron:      cron.New(cron.WithChain(cron.Recover(cronLogger))),
		scheduled: scheduled,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the materialization job and starts the scheduler.
func (w *Worker) Start() error {
	if _, err := w.cron.AddFunc(w.cfg.PollSpec, w.tick); err != nil {
		return err
	}
	w.logger.Info("scheduled transfer worker started",
		"poll_spec", w.cfg.PollSpec,
		"batch_size", w.cfg.BatchSize,
	)
	w.cron.Start()
	return nil
}

// Stop gracefully stops the scheduler, returning a context that is done
// once in-flight jobs finish.
func (w *Worker) Stop() context.Context {
	return w.cron.Stop()
}

func (w *Worker) tick() {
	ctx := context.Background()
	executed, err := w.scheduled.MaterializeDue(ctx, time.Now().UTC(), w.cfg.BatchSize)
	if err != nil {
		w.logger.Error("materialization tick failed", "error", err)
		return
	}
	if executed > 0 {
		w.logger.Info("materialized due transfers", "count", executed)
	}
}
