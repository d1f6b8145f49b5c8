package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
	guuid "github.com/google/uuid"
)

type VideoProjectRepository struct {
	db *sql.DB
}

// compile-time check: *VideoProjectRepository must satisfy port.VideoProjectRepository
var _ port.VideoProjectRepository = (*VideoProjectRepository)(nil)

func NewVideoProjectRepository(db *sql.DB) *VideoProjectRepository {
	return &VideoProjectRepository{db: db}
}

func (r *VideoProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.VideoProject, error) {
	log.Printf("fetching video project #%s from the database...", id)

	const query = `
      SELECT id, workspace_id, name, status, clip_count, completed_clip_count, aspect_ratio, music_track_id, created_at, updated_at
      FROM video_projects
      WHERE id = ?
    `
	var vp model.VideoProject
	var musicTrackID []byte // nullable binary UUID
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&vp.ID, &vp.WorkspaceID, &vp.Name, &vp.Status,
		&vp.ClipCount, &vp.CompletedClipCount, &vp.AspectRatio,
		&musicTrackID, &vp.CreatedAt, &vp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if musicTrackID != nil {
		parsed, err := guuid.FromBytes(musicTrackID)
		if err != nil {
			return nil, err
		}
		mt := uuid.UUID(parsed)
		vp.MusicTrackID = &mt
	}
	return &vp, nil
}

func (r *VideoProjectRepository) UpdateCounts(ctx context.Context, id uuid.UUID, counts model.AggregateCounts, status string) error {
	log.Printf("updating counts on video project #%s (%d/%d, %q)...", id, counts.Completed, counts.Total, status)

	const query = `
      UPDATE video_projects
      SET clip_count = ?, completed_clip_count = ?, status = ?, updated_at = NOW()
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, counts.Total, counts.Completed, status, id)
	return err
}
