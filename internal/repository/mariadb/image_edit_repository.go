package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
	"github.com/go-sql-driver/mysql"
)

const mysqlErrDupEntry = 1062

type ImageEditRepository struct {
	db *sql.DB
}

// compile-time check: *ImageEditRepository must satisfy port.ImageEditRepository
var _ port.ImageEditRepository = (*ImageEditRepository)(nil)

func NewImageEditRepository(db *sql.DB) *ImageEditRepository {
	return &ImageEditRepository{db: db}
}

const imageEditColumns = `id, project_id, lineage_id, version, status, mode, prompt, source_url, mask_url, result_url, failure_message, processing_started_at, created_at, updated_at`

func scanImageEdit(row interface{ Scan(...any) error }) (*model.ImageEdit, error) {
	var e model.ImageEdit
	if err := row.Scan(
		&e.ID, &e.ProjectID, &e.LineageID, &e.Version,
		&e.Status, &e.Mode, &e.Prompt, &e.SourceURL,
		&e.MaskURL, &e.ResultURL, &e.FailureMessage,
		&e.ProcessingStartedAt, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ImageEditRepository) Create(ctx context.Context, edit *model.ImageEdit) error {
	log.Printf("creating database record for image edit #%s, version %d of lineage #%s...", edit.ID, edit.Version, edit.LineageID)

	const query = `
      INSERT INTO image_edits
        (id, project_id, lineage_id, version, status, mode, prompt, source_url, mask_url, result_url, failure_message, processing_started_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		edit.ID, edit.ProjectID, edit.LineageID, edit.Version,
		edit.Status, edit.Mode, edit.Prompt, edit.SourceURL,
		edit.MaskURL, edit.ResultURL, edit.FailureMessage,
		edit.ProcessingStartedAt,
	)
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDupEntry {
		return fmt.Errorf("%w: lineage %s version %d", port.ErrVersionConflict, edit.LineageID, edit.Version)
	}
	return err
}

func (r *ImageEditRepository) Update(ctx context.Context, edit *model.ImageEdit) error {
	log.Printf("updating database record for image edit #%s, with status %q...", edit.ID, edit.Status)

	const query = `
      UPDATE image_edits
      SET
        status                = ?,
        mask_url              = ?,
        result_url            = ?,
        failure_message       = ?,
        processing_started_at = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		edit.Status,
		edit.MaskURL,
		edit.ResultURL,
		edit.FailureMessage,
		edit.ProcessingStartedAt,
		edit.ID, // WHERE clause
	)
	return err
}

func (r *ImageEditRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ImageEdit, error) {
	log.Printf("fetching image edit #%s from the database...", id)

	query := `SELECT ` + imageEditColumns + ` FROM image_edits WHERE id = ?`
	return scanImageEdit(r.db.QueryRowContext(ctx, query, id))
}

func (r *ImageEditRepository) ListLineage(ctx context.Context, lineageID uuid.UUID) ([]model.ImageEdit, error) {
	log.Printf("fetching lineage #%s from the database...", lineageID)

	query := `SELECT ` + imageEditColumns + ` FROM image_edits WHERE lineage_id = ? ORDER BY version ASC`
	rows, err := r.db.QueryContext(ctx, query, lineageID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var edits []model.ImageEdit
	for rows.Next() {
		e, err := scanImageEdit(rows)
		if err != nil {
			return nil, err
		}
		edits = append(edits, *e)
	}
	return edits, rows.Err()
}

func (r *ImageEditRepository) MaxVersion(ctx context.Context, lineageID uuid.UUID) (int, error) {
	const query = `SELECT COALESCE(MAX(version), 0) FROM image_edits WHERE lineage_id = ?`
	var maxVersion int
	if err := r.db.QueryRowContext(ctx, query, lineageID).Scan(&maxVersion); err != nil {
		return 0, err
	}
	return maxVersion, nil
}

func (r *ImageEditRepository) DeleteVersionsAfter(ctx context.Context, lineageID uuid.UUID, version int) (int64, error) {
	log.Printf("deleting versions of lineage #%s above %d...", lineageID, version)

	const query = `DELETE FROM image_edits WHERE lineage_id = ? AND version > ?`
	res, err := r.db.ExecContext(ctx, query, lineageID, version)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ImageEditRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ImageEdit, error) {
	query := `SELECT ` + imageEditColumns + ` FROM image_edits WHERE project_id = ? ORDER BY lineage_id, version ASC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var edits []model.ImageEdit
	for rows.Next() {
		e, err := scanImageEdit(rows)
		if err != nil {
			return nil, err
		}
		edits = append(edits, *e)
	}
	return edits, rows.Err()
}

// CountByProject snapshots all child statuses in a single read so the
// recompute never mixes two points in time.
func (r *ImageEditRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (model.AggregateCounts, error) {
	const query = `
      SELECT
        COUNT(*),
        COALESCE(SUM(status = 'completed'), 0),
        COALESCE(SUM(status = 'processing'), 0),
        COALESCE(SUM(status = 'failed'), 0)
      FROM image_edits
      WHERE project_id = ?
    `
	var c model.AggregateCounts
	if err := r.db.QueryRowContext(ctx, query, projectID).Scan(&c.Total, &c.Completed, &c.Processing, &c.Failed); err != nil {
		return model.AggregateCounts{}, err
	}
	return c, nil
}

func (r *ImageEditRepository) ListStaleProcessing(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	const query = `
      SELECT id FROM image_edits
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
