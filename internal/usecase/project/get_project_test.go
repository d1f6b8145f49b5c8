package project

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/propshot-ms-go/internal/mock"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

func TestGetProject_GroupsByLineage(t *testing.T) {
	projectID := uuid.NewUUID()
	lineageA := uuid.NewUUID()
	lineageB := uuid.NewUUID()
	edits := (&mock.ImageEditRepo{}).Seed(
		&model.ImageEdit{ID: lineageA, ProjectID: projectID, LineageID: lineageA, Version: 1},
		&model.ImageEdit{ID: uuid.NewUUID(), ProjectID: projectID, LineageID: lineageA, Version: 2},
		&model.ImageEdit{ID: lineageB, ProjectID: projectID, LineageID: lineageB, Version: 1},
	)
	projects := &mock.ProjectRepo{Project: &model.Project{ID: projectID, Name: "12 Maple Street"}}
	svc := NewProjectGetter(projects, edits)

	out, err := svc.GetProject(context.Background(), projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Project.Name != "12 Maple Street" {
		t.Errorf("unexpected project: %+v", out.Project)
	}
	if len(out.Lineages) != 2 {
		t.Fatalf("expected 2 lineages, got %d", len(out.Lineages))
	}
	for _, lineage := range out.Lineages {
		for i, e := range lineage {
			if e.Version != i+1 {
				t.Errorf("lineage %s position %d holds version %d", e.LineageID, i, e.Version)
			}
		}
	}
}

func TestGetProject_EmptyProject(t *testing.T) {
	projectID := uuid.NewUUID()
	projects := &mock.ProjectRepo{Project: &model.Project{ID: projectID}}
	svc := NewProjectGetter(projects, &mock.ImageEditRepo{})

	out, err := svc.GetProject(context.Background(), projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Lineages) != 0 {
		t.Errorf("expected no lineages, got %d", len(out.Lineages))
	}
}

func TestGetProject_NotFound(t *testing.T) {
	svc := NewProjectGetter(&mock.ProjectRepo{}, &mock.ImageEditRepo{})

	_, err := svc.GetProject(context.Background(), uuid.NewUUID())
	if !errors.Is(err, port.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetProject_ListError(t *testing.T) {
	projects := &mock.ProjectRepo{Project: &model.Project{ID: uuid.NewUUID()}}
	edits := &mock.ImageEditRepo{ListErr: errors.New("db fail")}
	svc := NewProjectGetter(projects, edits)

	_, err := svc.GetProject(context.Background(), uuid.NewUUID())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
