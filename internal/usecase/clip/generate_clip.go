package clip

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/storage"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type clipGeneratorSrv struct {
	repo      port.VideoClipRepository
	videos    port.VideoProjectRepository
	gen       port.VideoGenerator
	dl        port.Downloader
	strg      port.Storage
	recompute port.Recomputer
	progress  port.ProgressReporter
	bucket    string
}

// compile-time check: *clipGeneratorSrv must satisfy port.ClipGenerator
var _ port.ClipGenerator = (*clipGeneratorSrv)(nil)

// NewClipGenerator constructs a ClipGenerator implementation.
func NewClipGenerator(
	repo port.VideoClipRepository,
	videos port.VideoProjectRepository,
	gen port.VideoGenerator,
	dl port.Downloader,
	strg port.Storage,
	recompute port.Recomputer,
	progress port.ProgressReporter,
	bucket string,
) port.ClipGenerator {
	return &clipGeneratorSrv{repo, videos, gen, dl, strg, recompute, progress, bucket}
}

// GenerateClip drives one queued clip to completion: animate the still with
// the video provider, pull the result, store it and flip the record to
// completed. Re-running a completed clip is a no-op success.
func (s *clipGeneratorSrv) GenerateClip(ctx context.Context, in port.GenerateClipInput) error {
	s.publish(ctx, in.RunID, port.StepFetching, "Fetching clip", 10)

	clip, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.ErrNotFound
		}
		return err
	}
	if clip.IsReplayable() {
		logger.Infof(ctx, "clip #%s already completed, skipping", clip.ID)
		s.publish(ctx, in.RunID, port.StepCompleted, "Completed", 100)
		return nil
	}
	video, err := s.videos.GetByID(ctx, clip.VideoProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.ErrNotFound
		}
		return err
	}

	now := time.Now()
	clip.Status = model.StatusProcessing
	clip.ProcessingStartedAt = &now
	if err := s.repo.Update(ctx, clip); err != nil {
		return err
	}
	s.recomputeVideo(ctx, clip.VideoProjectID)

	s.publish(ctx, in.RunID, port.StepGenerating, "Animating image", 40)

	motionPrompt := clip.RoomType.DefaultMotionPrompt()
	if clip.MotionPrompt != nil && *clip.MotionPrompt != "" {
		motionPrompt = *clip.MotionPrompt
	}
	result, err := s.gen.GenerateClip(ctx, port.ClipRequest{
		SourceImageURL:  clip.SourceImageURL,
		MotionPrompt:    motionPrompt,
		NegativePrompt:  model.DefaultNegativePrompt,
		DurationSeconds: clip.DurationSeconds,
		AspectRatio:     string(video.AspectRatio),
	})
	if err != nil {
		return s.fail(ctx, clip, in.RunID, err)
	}

	s.publish(ctx, in.RunID, port.StepSaving, "Saving clip", 70)

	dl, err := s.dl.Download(ctx, result.URL)
	if err != nil {
		return s.fail(ctx, clip, in.RunID, fmt.Errorf("error fetching provider result: %w", err))
	}
	data, err := io.ReadAll(dl.Body)
	_ = dl.Body.Close()
	if err != nil {
		return s.fail(ctx, clip, in.RunID, fmt.Errorf("error reading provider result: %w", err))
	}

	s.publish(ctx, in.RunID, port.StepUploading, "Storing clip", 90)

	key := storage.ClipKey(video.WorkspaceID, video.ID, clip.ID)
	if err := s.strg.SaveFile(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), dl.ContentType); err != nil {
		return s.fail(ctx, clip, in.RunID, fmt.Errorf("error storing clip #%s: %w", clip.ID, err))
	}

	clipURL := s.strg.PublicURL(s.bucket, key)
	clip.Status = model.StatusCompleted
	clip.ClipURL = &clipURL
	clip.FailureMessage = nil
	if err := s.repo.Update(ctx, clip); err != nil {
		return err
	}
	s.recomputeVideo(ctx, clip.VideoProjectID)

	s.publish(ctx, in.RunID, port.StepCompleted, "Completed", 100)
	logger.Infof(ctx, "clip #%s completed (%d bytes)", clip.ID, len(data))
	return nil
}

func (s *clipGeneratorSrv) fail(ctx context.Context, clip *model.VideoClip, runID string, cause error) error {
	msg := cause.Error()
	clip.Status = model.StatusFailed
	clip.FailureMessage = &msg
	if err := s.repo.Update(ctx, clip); err != nil {
		logger.Warnf(ctx, "failed to mark clip #%s as failed: %v", clip.ID, err)
	}
	s.recomputeVideo(ctx, clip.VideoProjectID)
	s.publish(ctx, runID, port.StepFailed, "Failed", 100)
	return cause
}

func (s *clipGeneratorSrv) recomputeVideo(ctx context.Context, videoProjectID uuid.UUID) {
	if err := s.recompute.RecomputeVideoProject(ctx, videoProjectID); err != nil {
		logger.Warnf(ctx, "failed to recompute video project #%s: %v", videoProjectID, err)
	}
}

func (s *clipGeneratorSrv) publish(ctx context.Context, runID, step, label string, pct int) {
	if runID == "" {
		return
	}
	s.progress.Publish(ctx, runID, port.Progress{Step: step, Label: label, Progress: pct})
}
