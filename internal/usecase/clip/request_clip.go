package clip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type clipRequesterSrv struct {
	repo  port.VideoClipRepository
	tasks port.TaskDispatcher
}

// compile-time check: *clipRequesterSrv must satisfy port.ClipRequester
var _ port.ClipRequester = (*clipRequesterSrv)(nil)

// NewClipRequester constructs a ClipRequester implementation.
func NewClipRequester(repo port.VideoClipRepository, tasks port.TaskDispatcher) port.ClipRequester {
	return &clipRequesterSrv{repo, tasks}
}

// RequestClip queues the generation job for an existing clip. Requesting an
// already completed clip queues a replay, which the worker resolves as a
// no-op success.
func (s *clipRequesterSrv) RequestClip(ctx context.Context, clipID uuid.UUID) (port.RequestClipOutput, error) {
	clip, err := s.repo.GetByID(ctx, clipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.RequestClipOutput{}, port.ErrNotFound
		}
		return port.RequestClipOutput{}, err
	}

	runID, err := s.tasks.EnqueueGenerateClip(ctx, clip.ID)
	if err != nil {
		return port.RequestClipOutput{}, fmt.Errorf("error enqueueing generation task for clip #%s: %w", clip.ID, err)
	}
	logger.Infof(ctx, "queued generation task %s for clip #%s", runID, clip.ID)

	return port.RequestClipOutput{RunID: runID}, nil
}
