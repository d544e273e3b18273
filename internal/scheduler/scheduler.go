package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TomKxxx/sreality-tracker/internal/models"
	"github.com/TomKxxx/sreality-tracker/internal/services/checker"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Notifier pushes alert summaries after a successful cycle.
type Notifier interface {
	Notify(ctx context.Context, changes *models.Changes) error
}

// Uploader publishes the generated reports after a successful cycle.
type Uploader interface {
	Upload(ctx context.Context) error
}

// Scheduler runs check cycles on a fixed interval or a cron expression,
// exactly one cycle in flight at a time. Every per-cycle failure is
// contained: the loop logs it, waits the cooldown and tries again.
type Scheduler struct {
	log      *slog.Logger
	checker  checker.Interface
	notifier Notifier // optional, may be nil
	uploader Uploader // optional, may be nil
	interval time.Duration
	cooldown time.Duration
	cronExpr string
}

func New(
	log *slog.Logger,
	chk checker.Interface,
	notifier Notifier,
	uploader Uploader,
	interval, cooldown time.Duration,
	cronExpr string,
) *Scheduler {
	return &Scheduler{
		log:      log,
		checker:  chk,
		notifier: notifier,
		uploader: uploader,
		interval: interval,
		cooldown: cooldown,
		cronExpr: cronExpr,
	}
}

// Run blocks until ctx is canceled. The first cycle starts immediately;
// later cycles follow the cron expression when one is configured, otherwise
// the fixed interval (shortened to the cooldown after a failed cycle).
func (s *Scheduler) Run(ctx context.Context) error {
	if s.cronExpr != "" {
		return s.runCron(ctx)
	}

	for {
		wait := s.interval
		if !s.runOnce(ctx) {
			wait = s.cooldown
		}

		s.log.InfoContext(ctx, "Next check scheduled", "in", wait.String())

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			s.log.InfoContext(ctx, "Scheduler stopped")
			return nil
		}
	}
}

func (s *Scheduler) runCron(ctx context.Context) error {
	s.log.InfoContext(ctx, "Starting scheduler with cron", "cron", s.cronExpr)

	// Cron fires each trigger in its own goroutine; skip triggers that
	// arrive while a cycle is still running so only one is ever in flight.
	runner := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := runner.AddFunc(s.cronExpr, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.cronExpr, err)
	}

	s.runOnce(ctx)
	runner.Start()

	<-ctx.Done()

	// Let an in-flight cycle finish before reporting a clean stop.
	<-runner.Stop().Done()
	s.log.InfoContext(ctx, "Scheduler stopped")

	return nil
}

// runOnce performs a single cycle plus its follow-up side effects and
// reports whether the cycle itself succeeded.
func (s *Scheduler) runOnce(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	log := s.log.With("run_id", uuid.NewString())
	log.InfoContext(ctx, "Starting check cycle")

	changes, err := s.checker.RunCycle(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Check cycle failed", "error", err)
		return false
	}

	if s.notifier != nil && changes.HasAlerts() {
		if err = s.notifier.Notify(ctx, changes); err != nil {
			log.WarnContext(ctx, "Failed to deliver alerts", "error", err)
		}
	}

	if s.uploader != nil {
		if err = s.uploader.Upload(ctx); err != nil {
			log.WarnContext(ctx, "Failed to upload reports", "error", err)
		}
	}

	log.InfoContext(ctx, "Check cycle finished",
		"new", len(changes.New),
		"price_changed", len(changes.PriceChanged),
		"removed", len(changes.Removed))

	return true
}
