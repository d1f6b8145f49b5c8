package integration

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/fhuszti/propshot-ms-go/internal/migration"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	msuuid "github.com/fhuszti/propshot-ms-go/internal/uuid"
	"github.com/fhuszti/propshot-ms-go/test/testutil"
)

// setupMigratedDB gives each test a fresh schema to write into.
func setupMigratedDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	if err := migration.MigrateUp(testDB.DB); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	return testDB.DB, func() { _ = testDB.Cleanup() }
}

func seedProject(t *testing.T, dbConn *sql.DB, workspaceID msuuid.UUID) msuuid.UUID {
	t.Helper()

	id := msuuid.UUID(uuid.New())
	_, err := dbConn.Exec(
		`INSERT INTO projects (id, workspace_id, name, status) VALUES (?, ?, ?, ?)`,
		id, workspaceID, "14 Maple Street", model.StatusPending,
	)
	if err != nil {
		t.Fatalf("insert project: %v", err)
	}
	return id
}

func seedVideoProject(t *testing.T, dbConn *sql.DB, workspaceID msuuid.UUID) msuuid.UUID {
	t.Helper()

	id := msuuid.UUID(uuid.New())
	_, err := dbConn.Exec(
		`INSERT INTO video_projects (id, workspace_id, name, status, aspect_ratio) VALUES (?, ?, ?, ?, ?)`,
		id, workspaceID, "14 Maple Street tour", model.StatusPending, string(model.AspectRatioLandscape),
	)
	if err != nil {
		t.Fatalf("insert video project: %v", err)
	}
	return id
}
