package port

import (
	"context"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// ImageEditRepository defines persistence operations for image edits and
// their lineages.
type ImageEditRepository interface {
	Create(ctx context.Context, edit *model.ImageEdit) error
	Update(ctx context.Context, edit *model.ImageEdit) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ImageEdit, error)
	// ListLineage returns every version of the lineage the given edit belongs
	// to, ordered by ascending version. The sequence is recomputed on every
	// call, never cached.
	ListLineage(ctx context.Context, lineageID uuid.UUID) ([]model.ImageEdit, error)
	// MaxVersion returns the highest version currently present in a lineage.
	MaxVersion(ctx context.Context, lineageID uuid.UUID) (int, error)
	// DeleteVersionsAfter removes every row of the lineage whose version is
	// strictly greater than the given one and returns how many were deleted.
	DeleteVersionsAfter(ctx context.Context, lineageID uuid.UUID, version int) (int64, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ImageEdit, error)
	// CountByProject takes the aggregate snapshot for a project in one read.
	CountByProject(ctx context.Context, projectID uuid.UUID) (model.AggregateCounts, error)
	// ListStaleProcessing returns ids of edits stuck in processing since
	// before the given time.
	ListStaleProcessing(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}

// ProjectRepository defines persistence operations for image projects.
type ProjectRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	// UpdateCounts writes the derived counts and status in a single update.
	UpdateCounts(ctx context.Context, id uuid.UUID, counts model.AggregateCounts, status string) error
}

// VideoClipRepository defines persistence operations for video clips.
type VideoClipRepository interface {
	Create(ctx context.Context, clip *model.VideoClip) error
	Update(ctx context.Context, clip *model.VideoClip) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.VideoClip, error)
	ListByVideoProject(ctx context.Context, videoProjectID uuid.UUID) ([]model.VideoClip, error)
	CountByVideoProject(ctx context.Context, videoProjectID uuid.UUID) (model.AggregateCounts, error)
	ListStaleProcessing(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}

// VideoProjectRepository defines persistence operations for video projects.
type VideoProjectRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.VideoProject, error)
	UpdateCounts(ctx context.Context, id uuid.UUID, counts model.AggregateCounts, status string) error
}

// MusicTrackRepository reads the music-track reference data. The pipeline
// never mutates tracks.
type MusicTrackRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.MusicTrack, error)
	List(ctx context.Context) ([]model.MusicTrack, error)
}
