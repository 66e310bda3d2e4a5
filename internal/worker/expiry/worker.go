package expiry

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"
	"github.com/tiffinbox/marketplace/internal/service/services/reconciler"
)

// Worker runs the expired food item sweep on a fixed interval.
type Worker struct {
	reconciler   *reconciler.Reconciler
	pollInterval time.Duration
	stopCh       chan struct{}
}

// NewWorker creates a new expiry worker.
func NewWorker(rec *reconciler.Reconciler) *Worker {
	pollIntervalMinutes := viper.GetInt("reconciler.poll_interval_minutes")
	if pollIntervalMinutes == 0 {
		pollIntervalMinutes = 30
	}

	return &Worker{
		reconciler:   rec,
		pollInterval: time.Duration(pollIntervalMinutes) * time.Minute,
		stopCh:       make(chan struct{}),
	}
}

// Start begins sweeping expired food items.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Expiry worker started", "poll_interval", w.pollInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Expiry worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Expiry worker stopped")

			return
		case <-ticker.C:
			if err := w.reconciler.Sweep(ctx, time.Now()); err != nil {
				slog.Error("Expiry sweep failed", "error", err)
			}
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}
