package vault

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultRetention is how long trashed records stay recoverable
	// before the sweeper purges them.
	DefaultRetention = 15 * time.Minute
	// DefaultSweepInterval is the cadence of automatic sweeps.
	DefaultSweepInterval = time.Hour
)

// SweepResult reports one sweep pass.
type SweepResult struct {
	Scanned int `json:"scanned"`
	Purged  int `json:"purged"`
	Failed  int `json:"failed"`
}

// Sweeper periodically purges trashed records whose retention window
// has elapsed.
type Sweeper struct {
	service   *Service
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
}

// NewSweeper constructs a sweeper over the lifecycle service. Zero or
// negative durations fall back to the defaults.
func NewSweeper(service *Service, retention, interval time.Duration, logger *slog.Logger) *Sweeper {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{service: service, retention: retention, interval: interval, logger: logger}
}

// Retention returns the configured retention window.
func (w *Sweeper) Retention() time.Duration { return w.retention }

// Interval returns the configured sweep cadence.
func (w *Sweeper) Interval() time.Duration { return w.interval }

// Sweep purges every trashed record older than the retention window.
// Purges are independent: one record's failure does not stop the rest.
// Exactly one CatalogChanged notification goes out after the pass,
// whether or not individual purges failed.
func (w *Sweeper) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult

	trashed, err := w.service.ListTrashed(ctx)
	if err != nil {
		return result, err
	}
	result.Scanned = len(trashed)

	for _, record := range trashed {
		if record.TrashedAt == nil {
			continue
		}
		if now.Sub(*record.TrashedAt) <= w.retention {
			continue
		}
		if err := w.service.purgeRecord(ctx, record.ID); err != nil {
			result.Failed++
			w.logger.Warn("sweep purge failed", "id", record.ID, "name", record.Name, "error", err)
			continue
		}
		result.Purged++
	}

	w.service.publish()
	return result, nil
}

// Run sweeps immediately and then on every interval tick until the
// context is cancelled.
func (w *Sweeper) Run(ctx context.Context) error {
	w.logger.Info("sweeper started", "retention", w.retention, "interval", w.interval)

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sweeper stopped")
			return nil
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Sweeper) runOnce(ctx context.Context) {
	result, err := w.Sweep(ctx, w.service.now().UTC())
	if err != nil {
		w.logger.Error("sweep failed", "error", err)
		return
	}
	if result.Purged > 0 || result.Failed > 0 {
		w.logger.Info("sweep finished", "scanned", result.Scanned, "purged", result.Purged, "failed", result.Failed)
	}
}
