package port

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// EditRequester creates a new pending version in a lineage and queues the
// inpainting job for it.
type EditRequester interface {
	RequestEdit(ctx context.Context, in RequestEditInput) (RequestEditOutput, error)
}
type RequestEditInput struct {
	ImageID uuid.UUID
	Prompt  string
	Mode    model.EditMode
	// MaskDataURL is a base64 data URL drawn by the user. Required in remove
	// mode.
	MaskDataURL string
	// PlacementRect derives a mask for add mode when no mask was drawn:
	// x, y, width, height in source-image pixels.
	PlacementRect *Rect
	// ReplaceNewerVersions truncates the lineage after the edited version
	// before inserting the new one.
	ReplaceNewerVersions bool
}
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width" validate:"gt=0"`
	Height int `json:"height" validate:"gt=0"`
}
type RequestEditOutput struct {
	RunID      string    `json:"run_id"`
	NewImageID uuid.UUID `json:"new_image_id"`
}

// Inpainter drives one queued image edit to completion against the external
// provider.
type Inpainter interface {
	InpaintImage(ctx context.Context, in InpaintImageInput) error
}
type InpaintImageInput struct {
	ID uuid.UUID
	// RunID identifies the task run for progress reporting.
	RunID string
}

// ClipRequester queues the generation job for a pending clip.
type ClipRequester interface {
	RequestClip(ctx context.Context, clipID uuid.UUID) (RequestClipOutput, error)
}
type RequestClipOutput struct {
	RunID string `json:"run_id"`
}

// ClipGenerator drives one queued video clip to completion against the
// external provider.
type ClipGenerator interface {
	GenerateClip(ctx context.Context, in GenerateClipInput) error
}
type GenerateClipInput struct {
	ID    uuid.UUID
	RunID string
}

// Ledger maintains edit lineages.
type Ledger interface {
	// CreateVersion inserts a new version at the tail of the lineage and
	// returns the created record.
	CreateVersion(ctx context.Context, lineageID uuid.UUID, fields NewVersionFields) (*model.ImageEdit, error)
	// ListLineage returns the full lineage of any edit in it, ordered by
	// ascending version.
	ListLineage(ctx context.Context, anyID uuid.UUID) ([]model.ImageEdit, error)
	// Latest returns the highest version of the lineage any edit belongs to.
	Latest(ctx context.Context, anyID uuid.UUID) (*model.ImageEdit, error)
	// TruncateAfter deletes every version strictly greater than the given one
	// and returns the number of deleted rows.
	TruncateAfter(ctx context.Context, lineageID uuid.UUID, version int) (int64, error)
}
type NewVersionFields struct {
	Prompt    string
	Mode      model.EditMode
	SourceURL string
	MaskURL   *string
}

// Recomputer keeps a parent aggregate's counts and status consistent with
// its children. Idempotent, safe to call after every child mutation.
type Recomputer interface {
	RecomputeProject(ctx context.Context, projectID uuid.UUID) error
	RecomputeVideoProject(ctx context.Context, videoProjectID uuid.UUID) error
}

// StaleReaper fails records stuck in processing past a staleness threshold.
type StaleReaper interface {
	ReapStale(ctx context.Context) error
}

// ProjectGetter returns a project with its image edits.
type ProjectGetter interface {
	GetProject(ctx context.Context, id uuid.UUID) (*GetProjectOutput, error)
}
type GetProjectOutput struct {
	Project model.Project `json:"project"`
	// Lineages groups the project's edits by lineage, each ordered by
	// ascending version.
	Lineages [][]model.ImageEdit `json:"lineages"`
}

// VideoProjectGetter returns a video project with its clips in sequence
// order.
type VideoProjectGetter interface {
	GetVideoProject(ctx context.Context, id uuid.UUID) (*GetVideoProjectOutput, error)
}
type GetVideoProjectOutput struct {
	VideoProject model.VideoProject `json:"video_project"`
	Clips        []model.VideoClip  `json:"clips"`
	MusicTrack   *model.MusicTrack  `json:"music_track,omitempty"`
}

// MusicTrackLister returns the music-track catalogue.
type MusicTrackLister interface {
	ListMusicTracks(ctx context.Context) ([]model.MusicTrack, error)
}
