package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type VideoClipRepository struct {
	db *sql.DB
}

// compile-time check: *VideoClipRepository must satisfy port.VideoClipRepository
var _ port.VideoClipRepository = (*VideoClipRepository)(nil)

func NewVideoClipRepository(db *sql.DB) *VideoClipRepository {
	return &VideoClipRepository{db: db}
}

const videoClipColumns = `id, video_project_id, status, source_image_url, clip_url, sequence_order, motion_prompt, duration_seconds, room_type, failure_message, processing_started_at, created_at, updated_at`

func scanVideoClip(row interface{ Scan(...any) error }) (*model.VideoClip, error) {
	var c model.VideoClip
	if err := row.Scan(
		&c.ID, &c.VideoProjectID, &c.Status, &c.SourceImageURL,
		&c.ClipURL, &c.SequenceOrder, &c.MotionPrompt, &c.DurationSeconds,
		&c.RoomType, &c.FailureMessage, &c.ProcessingStartedAt,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *VideoClipRepository) Create(ctx context.Context, clip *model.VideoClip) error {
	log.Printf("creating database record for video clip #%s, at status %q...", clip.ID, clip.Status)

	const query = `
      INSERT INTO video_clips
        (id, video_project_id, status, source_image_url, clip_url, sequence_order, motion_prompt, duration_seconds, room_type, failure_message, processing_started_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		clip.ID, clip.VideoProjectID, clip.Status, clip.SourceImageURL,
		clip.ClipURL, clip.SequenceOrder, clip.MotionPrompt, clip.DurationSeconds,
		clip.RoomType, clip.FailureMessage, clip.ProcessingStartedAt,
	)
	return err
}

func (r *VideoClipRepository) Update(ctx context.Context, clip *model.VideoClip) error {
	log.Printf("updating database record for video clip #%s, with status %q...", clip.ID, clip.Status)

	const query = `
      UPDATE video_clips
      SET
        status                = ?,
        clip_url              = ?,
        sequence_order        = ?,
        motion_prompt         = ?,
        failure_message       = ?,
        processing_started_at = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		clip.Status,
		clip.ClipURL,
		clip.SequenceOrder,
		clip.MotionPrompt,
		clip.FailureMessage,
		clip.ProcessingStartedAt,
		clip.ID, // WHERE clause
	)
	return err
}

func (r *VideoClipRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.VideoClip, error) {
	log.Printf("fetching video clip #%s from the database...", id)

	query := `SELECT ` + videoClipColumns + ` FROM video_clips WHERE id = ?`
	return scanVideoClip(r.db.QueryRowContext(ctx, query, id))
}

func (r *VideoClipRepository) ListByVideoProject(ctx context.Context, videoProjectID uuid.UUID) ([]model.VideoClip, error) {
	query := `SELECT ` + videoClipColumns + ` FROM video_clips WHERE video_project_id = ? ORDER BY sequence_order ASC`
	rows, err := r.db.QueryContext(ctx, query, videoProjectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var clips []model.VideoClip
	for rows.Next() {
		c, err := scanVideoClip(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, *c)
	}
	return clips, rows.Err()
}

func (r *VideoClipRepository) CountByVideoProject(ctx context.Context, videoProjectID uuid.UUID) (model.AggregateCounts, error) {
	const query = `
      SELECT
        COUNT(*),
        COALESCE(SUM(status = 'completed'), 0),
        COALESCE(SUM(status = 'processing'), 0),
        COALESCE(SUM(status = 'failed'), 0)
      FROM video_clips
      WHERE video_project_id = ?
    `
	var c model.AggregateCounts
	if err := r.db.QueryRowContext(ctx, query, videoProjectID).Scan(&c.Total, &c.Completed, &c.Processing, &c.Failed); err != nil {
		return model.AggregateCounts{}, err
	}
	return c, nil
}

func (r *VideoClipRepository) ListStaleProcessing(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	const query = `
      SELECT id FROM video_clips
      WHERE status = 'processing' AND processing_started_at IS NOT NULL AND processing_started_at < ?
    `
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
