package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// MusicTrackRepository reads the track catalogue. The pipeline never writes
// here; tracks are seeded by migrations.
type MusicTrackRepository struct {
	db *sql.DB
}

// compile-time check: *MusicTrackRepository must satisfy port.MusicTrackRepository
var _ port.MusicTrackRepository = (*MusicTrackRepository)(nil)

func NewMusicTrackRepository(db *sql.DB) *MusicTrackRepository {
	return &MusicTrackRepository{db: db}
}

const musicTrackColumns = `id, title, category, mood, duration_seconds, bpm, license, url, created_at`

func (r *MusicTrackRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MusicTrack, error) {
	log.Printf("fetching music track #%s from the database...", id)

	query := `SELECT ` + musicTrackColumns + ` FROM music_tracks WHERE id = ?`
	var t model.MusicTrack
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Category, &t.Mood,
		&t.DurationSeconds, &t.BPM, &t.License, &t.URL, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *MusicTrackRepository) List(ctx context.Context) ([]model.MusicTrack, error) {
	query := `SELECT ` + musicTrackColumns + ` FROM music_tracks ORDER BY category, title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tracks []model.MusicTrack
	for rows.Next() {
		var t model.MusicTrack
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Category, &t.Mood,
			&t.DurationSeconds, &t.BPM, &t.License, &t.URL, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
