package pipeline

import (
	"context"
	"log/slog"
	"time"

	"pricewatch/internal/config"
)

// NextFire returns the next daily trigger time at hour:minute UTC strictly
// after now.
func NextFire(now time.Time, hour, minute int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Schedule fires fn once per day at the given "HH:MM" UTC time until ctx is
// cancelled. A failing run is logged and does not stop the schedule; each
// firing is reported independently.
func Schedule(ctx context.Context, at string, fn func(context.Context) error) error {
	hour, minute, err := config.ParseScheduleAt(at)
	if err != nil {
		return err
	}

	for {
		next := NextFire(time.Now(), hour, minute)
		slog.Info("next scheduled run", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := fn(ctx); err != nil {
			slog.Error("scheduled run failed", "error", err)
		}
	}
}
