package inpaint

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/imaging"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/storage"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type inpainterSrv struct {
	repo      port.ImageEditRepository
	projects  port.ProjectRepository
	gen       port.ImageGenerator
	dl        port.Downloader
	strg      port.Storage
	recompute port.Recomputer
	progress  port.ProgressReporter
	bucket    string
}

// compile-time check: *inpainterSrv must satisfy port.Inpainter
var _ port.Inpainter = (*inpainterSrv)(nil)

// NewInpainter constructs an Inpainter implementation.
func NewInpainter(
	repo port.ImageEditRepository,
	projects port.ProjectRepository,
	gen port.ImageGenerator,
	dl port.Downloader,
	strg port.Storage,
	recompute port.Recomputer,
	progress port.ProgressReporter,
	bucket string,
) port.Inpainter {
	return &inpainterSrv{repo, projects, gen, dl, strg, recompute, progress, bucket}
}

// InpaintImage drives one queued edit to completion: call the provider, pull
// the result, store it and flip the record to completed. Re-running a
// completed edit is a no-op success.
func (s *inpainterSrv) InpaintImage(ctx context.Context, in port.InpaintImageInput) error {
	s.publish(ctx, in.RunID, port.StepFetching, "Fetching image", 10)

	edit, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.ErrNotFound
		}
		return err
	}
	if edit.IsReplayable() {
		logger.Infof(ctx, "edit #%s already completed, skipping", edit.ID)
		s.publish(ctx, in.RunID, port.StepCompleted, "Completed", 100)
		return nil
	}
	project, err := s.projects.GetByID(ctx, edit.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.ErrNotFound
		}
		return err
	}

	now := time.Now()
	edit.Status = model.StatusProcessing
	edit.ProcessingStartedAt = &now
	if err := s.repo.Update(ctx, edit); err != nil {
		return err
	}
	s.recomputeProject(ctx, edit.ProjectID)

	s.publish(ctx, in.RunID, port.StepGenerating, "Generating edit", 40)

	maskURL := ""
	if edit.MaskURL != nil {
		maskURL = *edit.MaskURL
	}
	result, err := s.gen.Inpaint(ctx, port.InpaintRequest{
		Prompt:    edit.Prompt,
		SourceURL: edit.SourceURL,
		MaskURL:   maskURL,
	})
	if err != nil {
		return s.fail(ctx, edit, in.RunID, err)
	}

	s.publish(ctx, in.RunID, port.StepSaving, "Saving result", 70)

	dl, err := s.dl.Download(ctx, result.URL)
	if err != nil {
		return s.fail(ctx, edit, in.RunID, fmt.Errorf("error fetching provider result: %w", err))
	}
	data, err := io.ReadAll(dl.Body)
	_ = dl.Body.Close()
	if err != nil {
		return s.fail(ctx, edit, in.RunID, fmt.Errorf("error reading provider result: %w", err))
	}

	if width, height, err := imaging.ProbeDimensions(dl.ContentType, bytes.NewReader(data)); err == nil {
		logger.Infof(ctx, "edit #%s result is %dx%d (%s, %d bytes)", edit.ID, width, height, dl.ContentType, len(data))
	}

	s.publish(ctx, in.RunID, port.StepUploading, "Storing result", 90)

	ext := storage.ExtensionForContentType(dl.ContentType)
	key := storage.ImageKey(project.WorkspaceID, project.ID, edit.ID, ext)
	if err := s.strg.SaveFile(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), dl.ContentType); err != nil {
		return s.fail(ctx, edit, in.RunID, fmt.Errorf("error storing result for edit #%s: %w", edit.ID, err))
	}

	resultURL := s.strg.PublicURL(s.bucket, key)
	edit.Status = model.StatusCompleted
	edit.ResultURL = &resultURL
	edit.FailureMessage = nil
	if err := s.repo.Update(ctx, edit); err != nil {
		return err
	}
	s.recomputeProject(ctx, edit.ProjectID)

	s.publish(ctx, in.RunID, port.StepCompleted, "Completed", 100)
	logger.Infof(ctx, "edit #%s completed", edit.ID)
	return nil
}

// fail persists the failure before bubbling the cause up: the record must
// reflect the outcome even when the task is not retried.
func (s *inpainterSrv) fail(ctx context.Context, edit *model.ImageEdit, runID string, cause error) error {
	msg := cause.Error()
	edit.Status = model.StatusFailed
	edit.FailureMessage = &msg
	if err := s.repo.Update(ctx, edit); err != nil {
		logger.Warnf(ctx, "failed to mark edit #%s as failed: %v", edit.ID, err)
	}
	s.recomputeProject(ctx, edit.ProjectID)
	s.publish(ctx, runID, port.StepFailed, "Failed", 100)
	return cause
}

func (s *inpainterSrv) recomputeProject(ctx context.Context, projectID uuid.UUID) {
	if err := s.recompute.RecomputeProject(ctx, projectID); err != nil {
		logger.Warnf(ctx, "failed to recompute project #%s: %v", projectID, err)
	}
}

func (s *inpainterSrv) publish(ctx context.Context, runID, step, label string, pct int) {
	if runID == "" {
		return
	}
	s.progress.Publish(ctx, runID, port.Progress{Step: step, Label: label, Progress: pct})
}
