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

// InpaintImageHandler handles an inpaint-image task. It converts the incoming
// payload to the input expected by the inpaint service and delegates the call.
func InpaintImageHandler(ctx context.Context, p task.InpaintImagePayload, runID string, svc port.Inpainter) error {
	id, err := uuid.Parse(p.ImageID)
	if err != nil {
		logger.Errorf(ctx, "❌  Invalid image ID %q: %v", p.ImageID, err)
		return fmt.Errorf("invalid image ID %q: %v: %w", p.ImageID, err, asynq.SkipRetry)
	}

	in := port.InpaintImageInput{ID: msuuid.UUID(id), RunID: runID}
	if err := svc.InpaintImage(ctx, in); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			logger.Errorf(ctx, "❌  Image #%s no longer exists: %v", id, err)
			return fmt.Errorf("image #%s not found: %w", id, asynq.SkipRetry)
		}
		logger.Errorf(ctx, "❌  Failed to inpaint image #%s: %v", id, err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully inpainted image #%s", id)
	return nil
}
