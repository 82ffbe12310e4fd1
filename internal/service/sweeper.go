package service

import (
	"context"
	"log/slog"
	"time"
)

// RunExpirySweep periodically marks overdue cards as expired until ctx is
// cancelled. It runs one sweep immediately on start.
func RunExpirySweep(ctx context.Context, cards CardManager, interval time.Duration, logger *slog.Logger) {
	sweep := func(asOf time.Time) {
		if _, err := cards.ExpireDue(ctx, asOf); err != nil {
			logger.Error("expiry sweep failed", "error", err)
		}
	}

	sweep(time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sweep(now)
		}
	}
}
