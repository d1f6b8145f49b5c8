package reaper

import (
	"context"
	"errors"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
)

// DefaultStaleAfter is how long a record may sit in processing before the
// reaper fails it. The provider gives up after 3 minutes, so anything past
// this threshold lost its worker.
const DefaultStaleAfter = 10 * time.Minute

const timedOutMessage = "processing timed out"

type staleReaperSrv struct {
	edits      port.ImageEditRepository
	clips      port.VideoClipRepository
	recompute  port.Recomputer
	staleAfter time.Duration
}

// compile-time check: *staleReaperSrv must satisfy port.StaleReaper
var _ port.StaleReaper = (*staleReaperSrv)(nil)

// NewStaleReaper constructs a StaleReaper implementation. staleAfter <= 0
// falls back to DefaultStaleAfter.
func NewStaleReaper(
	edits port.ImageEditRepository,
	clips port.VideoClipRepository,
	recompute port.Recomputer,
	staleAfter time.Duration,
) port.StaleReaper {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &staleReaperSrv{edits, clips, recompute, staleAfter}
}

// ReapStale fails every edit and clip stuck in processing past the staleness
// threshold, then recomputes the parents it touched. Failures on one record
// do not stop the sweep.
func (s *staleReaperSrv) ReapStale(ctx context.Context) error {
	cutoff := time.Now().Add(-s.staleAfter)
	var errs []error

	ids, err := s.edits.ListStaleProcessing(ctx, cutoff)
	if err != nil {
		errs = append(errs, err)
	}
	if len(ids) == 0 && err == nil {
		logger.Info(ctx, "no stale edits found")
	}
	for _, id := range ids {
		edit, err := s.edits.GetByID(ctx, id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Warnf(ctx, "failing stale edit #%s (processing since %v)", id, edit.ProcessingStartedAt)
		msg := timedOutMessage
		edit.Status = model.StatusFailed
		edit.FailureMessage = &msg
		if err := s.edits.Update(ctx, edit); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.recompute.RecomputeProject(ctx, edit.ProjectID); err != nil {
			errs = append(errs, err)
		}
	}

	clipIDs, err := s.clips.ListStaleProcessing(ctx, cutoff)
	if err != nil {
		errs = append(errs, err)
	}
	if len(clipIDs) == 0 && err == nil {
		logger.Info(ctx, "no stale clips found")
	}
	for _, id := range clipIDs {
		clip, err := s.clips.GetByID(ctx, id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Warnf(ctx, "failing stale clip #%s (processing since %v)", id, clip.ProcessingStartedAt)
		msg := timedOutMessage
		clip.Status = model.StatusFailed
		clip.FailureMessage = &msg
		if err := s.clips.Update(ctx, clip); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.recompute.RecomputeVideoProject(ctx, clip.VideoProjectID); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
