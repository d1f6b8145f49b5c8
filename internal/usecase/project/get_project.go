package project

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type projectGetterSrv struct {
	projects port.ProjectRepository
	edits    port.ImageEditRepository
}

// compile-time check: *projectGetterSrv must satisfy port.ProjectGetter
var _ port.ProjectGetter = (*projectGetterSrv)(nil)

// NewProjectGetter constructs a ProjectGetter implementation.
func NewProjectGetter(projects port.ProjectRepository, edits port.ImageEditRepository) port.ProjectGetter {
	return &projectGetterSrv{projects, edits}
}

// GetProject returns the project with its edits grouped by lineage, each
// lineage ordered by ascending version.
func (s *projectGetterSrv) GetProject(ctx context.Context, id uuid.UUID) (*port.GetProjectOutput, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, port.ErrNotFound
		}
		return nil, err
	}

	edits, err := s.edits.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	// group by lineage, keeping the repository's ordering within each
	byLineage := make(map[uuid.UUID]int)
	lineages := make([][]model.ImageEdit, 0)
	for _, e := range edits {
		idx, ok := byLineage[e.LineageID]
		if !ok {
			idx = len(lineages)
			byLineage[e.LineageID] = idx
			lineages = append(lineages, nil)
		}
		lineages[idx] = append(lineages[idx], e)
	}

	return &port.GetProjectOutput{Project: *project, Lineages: lineages}, nil
}
