package inpaint

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"

	"github.com/fhuszti/propshot-ms-go/internal/imaging"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/storage"
)

var (
	ErrPromptRequired = errors.New("a prompt is required")
	ErrInvalidMode    = errors.New("mode should be 'remove' or 'add'")
	ErrMaskRequired   = errors.New("a mask is required in remove mode")
)

type editRequesterSrv struct {
	repo     port.ImageEditRepository
	projects port.ProjectRepository
	ledger   port.Ledger
	strg     port.Storage
	dl       port.Downloader
	tasks    port.TaskDispatcher
	bucket   string
}

// compile-time check: *editRequesterSrv must satisfy port.EditRequester
var _ port.EditRequester = (*editRequesterSrv)(nil)

// NewEditRequester constructs an EditRequester implementation.
func NewEditRequester(
	repo port.ImageEditRepository,
	projects port.ProjectRepository,
	ledger port.Ledger,
	strg port.Storage,
	dl port.Downloader,
	tasks port.TaskDispatcher,
	bucket string,
) port.EditRequester {
	return &editRequesterSrv{repo, projects, ledger, strg, dl, tasks, bucket}
}

// RequestEdit appends a new pending version to the lineage of the given edit
// and queues the inpainting job for it. The new version's source is the
// picked version's result when it has one, so edits stack.
func (s *editRequesterSrv) RequestEdit(ctx context.Context, in port.RequestEditInput) (port.RequestEditOutput, error) {
	if in.Prompt == "" {
		return port.RequestEditOutput{}, ErrPromptRequired
	}
	if !in.Mode.Valid() {
		return port.RequestEditOutput{}, ErrInvalidMode
	}
	if in.Mode == model.EditModeRemove && in.MaskDataURL == "" {
		return port.RequestEditOutput{}, ErrMaskRequired
	}

	edit, err := s.repo.GetByID(ctx, in.ImageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.RequestEditOutput{}, port.ErrNotFound
		}
		return port.RequestEditOutput{}, err
	}
	project, err := s.projects.GetByID(ctx, edit.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.RequestEditOutput{}, port.ErrNotFound
		}
		return port.RequestEditOutput{}, err
	}

	sourceURL := edit.SourceURL
	if edit.ResultURL != nil && *edit.ResultURL != "" {
		sourceURL = *edit.ResultURL
	}

	maskPNG, err := s.prepareMask(ctx, in, sourceURL)
	if err != nil {
		return port.RequestEditOutput{}, err
	}

	if in.ReplaceNewerVersions {
		deleted, err := s.ledger.TruncateAfter(ctx, edit.LineageID, edit.Version)
		if err != nil {
			return port.RequestEditOutput{}, fmt.Errorf("error truncating lineage #%s: %w", edit.LineageID, err)
		}
		if deleted > 0 {
			logger.Infof(ctx, "dropped %d newer version(s) of lineage #%s", deleted, edit.LineageID)
		}
	}

	newEdit, err := s.ledger.CreateVersion(ctx, edit.LineageID, port.NewVersionFields{
		Prompt:    in.Prompt,
		Mode:      in.Mode,
		SourceURL: sourceURL,
	})
	if err != nil {
		return port.RequestEditOutput{}, err
	}

	if maskPNG != nil {
		maskKey := storage.MaskKey(project.WorkspaceID, project.ID, newEdit.ID)
		if err := s.strg.SaveFile(ctx, s.bucket, maskKey, bytes.NewReader(maskPNG), int64(len(maskPNG)), "image/png"); err != nil {
			s.markFailed(ctx, newEdit, "could not store the edit mask")
			return port.RequestEditOutput{}, fmt.Errorf("error saving mask for edit #%s: %w", newEdit.ID, err)
		}
		maskURL := s.strg.PublicURL(s.bucket, maskKey)
		newEdit.MaskURL = &maskURL
		if err := s.repo.Update(ctx, newEdit); err != nil {
			return port.RequestEditOutput{}, err
		}
	}

	runID, err := s.tasks.EnqueueInpaintImage(ctx, newEdit.ID)
	if err != nil {
		s.markFailed(ctx, newEdit, "could not queue the edit job")
		return port.RequestEditOutput{}, fmt.Errorf("error enqueueing inpaint task for edit #%s: %w", newEdit.ID, err)
	}
	logger.Infof(ctx, "queued inpaint task %s for edit #%s (version %d)", runID, newEdit.ID, newEdit.Version)

	return port.RequestEditOutput{RunID: runID, NewImageID: newEdit.ID}, nil
}

// prepareMask renders the mask PNG for the request, scaled to the source
// image's dimensions. Returns nil when the request carries no mask at all
// (add mode driven by prompt alone).
func (s *editRequesterSrv) prepareMask(ctx context.Context, in port.RequestEditInput, sourceURL string) ([]byte, error) {
	if in.MaskDataURL == "" && in.PlacementRect == nil {
		return nil, nil
	}

	width, height, err := s.probeSource(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	var mask image.Image
	if in.MaskDataURL != "" {
		mask, err = imaging.MaskFromDataURL(in.MaskDataURL)
		if err != nil {
			return nil, err
		}
		mask = imaging.FitTo(mask, width, height)
	} else {
		r := in.PlacementRect
		mask, err = imaging.MaskFromRect(r.X, r.Y, r.Width, r.Height, width, height)
		if err != nil {
			return nil, err
		}
	}
	return imaging.EncodePNG(mask)
}

func (s *editRequesterSrv) probeSource(ctx context.Context, sourceURL string) (int, int, error) {
	dl, err := s.dl.Download(ctx, sourceURL)
	if err != nil {
		return 0, 0, fmt.Errorf("error fetching source image: %w", err)
	}
	defer func() { _ = dl.Body.Close() }()

	width, height, err := imaging.ProbeDimensions(dl.ContentType, dl.Body)
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// markFailed flags a freshly created version that could not be queued, so it
// never lingers as a pending ghost.
func (s *editRequesterSrv) markFailed(ctx context.Context, edit *model.ImageEdit, msg string) {
	edit.Status = model.StatusFailed
	edit.FailureMessage = &msg
	if err := s.repo.Update(ctx, edit); err != nil {
		logger.Warnf(ctx, "failed to mark edit #%s as failed: %v", edit.ID, err)
	}
}
