package worker

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
)

// ReapStaleHandler handles a reap-stale sweep.
func ReapStaleHandler(ctx context.Context, svc port.StaleReaper) error {
	if err := svc.ReapStale(ctx); err != nil {
		logger.Errorf(ctx, "❌  Stale sweep failed: %v", err)
		return err
	}

	logger.Info(ctx, "✅  Stale sweep done")
	return nil
}
