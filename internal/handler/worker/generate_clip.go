package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/task"
	msuuid "github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// GenerateClipHandler handles a generate-clip task. It converts the incoming
// payload to the input expected by the clip service and delegates the call.
func GenerateClipHandler(ctx context.Context, p task.GenerateClipPayload, runID string, svc port.ClipGenerator) error {
	id, err := uuid.Parse(p.ClipID)
	if err != nil {
		logger.Errorf(ctx, "❌  Invalid clip ID %q: %v", p.ClipID, err)
		return fmt.Errorf("invalid clip ID %q: %v: %w", p.ClipID, err, asynq.SkipRetry)
	}

	in := port.GenerateClipInput{ID: msuuid.UUID(id), RunID: runID}
	if err := svc.GenerateClip(ctx, in); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			logger.Errorf(ctx, "❌  Clip #%s no longer exists: %v", id, err)
			return fmt.Errorf("clip #%s not found: %w", id, asynq.SkipRetry)
		}
		logger.Errorf(ctx, "❌  Failed to generate clip #%s: %v", id, err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully generated clip #%s", id)
	return nil
}
