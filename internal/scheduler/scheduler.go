// Package scheduler runs the background job that logs a daily summary of
// how many reviews are waiting across the whole system. The summary is an
// operational signal; per-user counts come from the API instead.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// DueCounter reports how many scheduling states are due at a point in time.
type DueCounter interface {
	CountDue(ctx context.Context, before time.Time) (int, error)
}

// Scheduler owns the cron loop for background jobs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	counter   DueCounter
	logger    *slog.Logger
}

// New creates a Scheduler that will report the due-card backlog every day at
// the given local time ("HH:MM").
func New(counter DueCounter, dailySummaryTime string, log *slog.Logger) (*Scheduler, error) {
	if counter == nil {
		return nil, fmt.Errorf("counter cannot be nil")
	}
	if _, err := time.Parse("15:04", dailySummaryTime); err != nil {
		return nil, fmt.Errorf("invalid daily summary time %q: %w", dailySummaryTime, err)
	}

	if log == nil {
		log = slog.Default()
	}

	s := &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		counter:   counter,
		logger:    log.With(slog.String("component", "scheduler")),
	}

	if _, err := s.scheduler.Every(1).Day().At(dailySummaryTime).Do(s.logDueSummary); err != nil {
		return nil, fmt.Errorf("failed to schedule daily summary job: %w", err)
	}

	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
	s.logger.Info("scheduler started")
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("scheduler stopped")
}

// logDueSummary counts the reviews currently waiting and writes one summary
// log line.
func (s *Scheduler) logDueSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.counter.CountDue(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to count due reviews", slog.String("error", err.Error()))
		return
	}

	s.logger.Info("daily review backlog",
		slog.Int("due_reviews", count))
}
