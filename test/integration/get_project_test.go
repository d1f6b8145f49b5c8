package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/propshot-ms-go/internal/api_context"
	"github.com/fhuszti/propshot-ms-go/internal/cache"
	"github.com/fhuszti/propshot-ms-go/internal/handler/api"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/renderer"
	"github.com/fhuszti/propshot-ms-go/internal/repository/mariadb"
	projectSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/project"
	msuuid "github.com/fhuszti/propshot-ms-go/internal/uuid"
	_ "github.com/go-sql-driver/mysql"
)

func TestGetProjectIntegration_GroupsLineages(t *testing.T) {
	ctx := context.Background()

	dbConn, cleanup := setupMigratedDB(t)
	defer cleanup()

	workspaceID := msuuid.NewUUID()
	projectID := seedProject(t, dbConn, workspaceID)

	editRepo := mariadb.NewImageEditRepository(dbConn)
	projRepo := mariadb.NewProjectRepository(dbConn)

	// two lineages: one with two versions, one with a lone root
	rootA := msuuid.NewUUID()
	for i, e := range []*model.ImageEdit{
		{ID: rootA, ProjectID: projectID, LineageID: rootA, Version: 1, Status: model.StatusCompleted, Mode: model.EditModeRemove, SourceURL: "https://cdn.example.com/a.jpg"},
		{ID: msuuid.NewUUID(), ProjectID: projectID, LineageID: rootA, Version: 2, Status: model.StatusPending, Mode: model.EditModeRemove, Prompt: "remove the bins", SourceURL: "https://cdn.example.com/a.jpg"},
	} {
		if err := editRepo.Create(ctx, e); err != nil {
			t.Fatalf("insert edit %d: %v", i, err)
		}
	}
	rootB := msuuid.NewUUID()
	if err := editRepo.Create(ctx, &model.ImageEdit{
		ID: rootB, ProjectID: projectID, LineageID: rootB, Version: 1, Status: model.StatusCompleted, Mode: model.EditModeAdd, SourceURL: "https://cdn.example.com/b.jpg",
	}); err != nil {
		t.Fatalf("insert edit: %v", err)
	}

	rdr := renderer.NewHTTPRenderer(cache.NewNoop())
	svc := projectSvc.NewProjectGetter(projRepo, editRepo)
	handler := api.GetProjectHandler(rdr, svc)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String(), nil)
	req = req.WithContext(context.WithValue(req.Context(), api_context.IDKey, projectID))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body %s", rr.Code, rr.Body.String())
	}
	etag := rr.Header().Get("ETag")
	if etag == "" {
		t.Error("expected a non-empty ETag header")
	}

	var out port.GetProjectOutput
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if out.Project.ID != projectID {
		t.Errorf("Project.ID = %s; want %s", out.Project.ID, projectID)
	}
	if len(out.Lineages) != 2 {
		t.Fatalf("len(Lineages) = %d; want 2", len(out.Lineages))
	}
	for _, lineage := range out.Lineages {
		for i, e := range lineage {
			if e.Version != i+1 {
				t.Errorf("lineage of %s out of order at %d: version %d", e.LineageID, i, e.Version)
			}
		}
	}

	// a second request with the ETag must come back 304
	req2 := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String(), nil)
	req2 = req2.WithContext(context.WithValue(req2.Context(), api_context.IDKey, projectID))
	req2.Header.Set("If-None-Match", etag)
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req2)

	if rr2.Code != http.StatusNotModified {
		t.Errorf("status = %d; want 304", rr2.Code)
	}
}
