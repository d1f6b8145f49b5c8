package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type ProjectRepository struct {
	db *sql.DB
}

// compile-time check: *ProjectRepository must satisfy port.ProjectRepository
var _ port.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	log.Printf("fetching project #%s from the database...", id)

	const query = `
      SELECT id, workspace_id, name, status, image_count, completed_count, created_at, updated_at
      FROM projects
      WHERE id = ?
    `
	var p model.Project
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.WorkspaceID, &p.Name, &p.Status,
		&p.ImageCount, &p.CompletedCount, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateCounts replaces all derived fields from the same snapshot in one
// statement, so readers never see a partially recomputed aggregate.
func (r *ProjectRepository) UpdateCounts(ctx context.Context, id uuid.UUID, counts model.AggregateCounts, status string) error {
	log.Printf("updating counts on project #%s (%d/%d, %q)...", id, counts.Completed, counts.Total, status)

	const query = `
      UPDATE projects
      SET image_count = ?, completed_count = ?, status = ?, updated_at = NOW()
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, counts.Total, counts.Completed, status, id)
	return err
}
