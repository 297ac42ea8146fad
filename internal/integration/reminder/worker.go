// Package reminder runs the periodic salary day check.
package reminder

import (
	"context"
	"log/slog"
	"time"
)

// Runner performs one reminder pass and reports how many reminders went out.
type Runner interface {
	Execute(ctx context.Context) (int, error)
}

// Worker triggers the salary reminder on a fixed interval.
type Worker struct {
	runner       Runner
	pollInterval time.Duration
}

// NewWorker creates a new reminder worker.
func NewWorker(runner Runner, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = time.Hour
	}
	return &Worker{
		runner:       runner,
		pollInterval: pollInterval,
	}
}

// Start runs a pass immediately and then on every tick until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	slog.Info("salary reminder worker started", "poll_interval", w.pollInterval)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("salary reminder worker shutting down")
			return nil
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	sent, err := w.runner.Execute(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("salary reminder pass failed", "error", err)
		}
		return
	}
	if sent > 0 {
		slog.Info("salary reminders sent", "count", sent)
	}
}
