package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// maxInsertRetries bounds how often CreateVersion re-reads the max version
// after losing a race to a concurrent edit. The unique key on
// (lineage_id, version) is what detects the race; retrying with a fresh read
// resolves it.
const maxInsertRetries = 3

type ledgerSrv struct {
	repo  port.ImageEditRepository
	genID port.UUIDGen
}

// compile-time check: *ledgerSrv must satisfy port.Ledger
var _ port.Ledger = (*ledgerSrv)(nil)

func NewLedger(repo port.ImageEditRepository, genID port.UUIDGen) port.Ledger {
	return &ledgerSrv{repo: repo, genID: genID}
}

func (l *ledgerSrv) CreateVersion(ctx context.Context, lineageID uuid.UUID, fields port.NewVersionFields) (*model.ImageEdit, error) {
	root, err := l.resolve(ctx, lineageID)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxInsertRetries; attempt++ {
		maxVersion, err := l.repo.MaxVersion(ctx, root.LineageID)
		if err != nil {
			return nil, err
		}

		edit := &model.ImageEdit{
			ID:        l.genID(),
			ProjectID: root.ProjectID,
			LineageID: root.LineageID,
			Version:   maxVersion + 1,
			Status:    model.StatusPending,
			Mode:      fields.Mode,
			Prompt:    fields.Prompt,
			SourceURL: fields.SourceURL,
			MaskURL:   fields.MaskURL,
		}
		err = l.repo.Create(ctx, edit)
		if err == nil {
			return edit, nil
		}
		if !errors.Is(err, port.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("could not claim a version for lineage %s after %d attempts: %w", root.LineageID, maxInsertRetries, lastErr)
}

func (l *ledgerSrv) ListLineage(ctx context.Context, anyID uuid.UUID) ([]model.ImageEdit, error) {
	edit, err := l.resolve(ctx, anyID)
	if err != nil {
		return nil, err
	}
	return l.repo.ListLineage(ctx, edit.LineageID)
}

func (l *ledgerSrv) Latest(ctx context.Context, anyID uuid.UUID) (*model.ImageEdit, error) {
	edits, err := l.ListLineage(ctx, anyID)
	if err != nil {
		return nil, err
	}
	if len(edits) == 0 {
		return nil, port.ErrNotFound
	}
	return &edits[len(edits)-1], nil
}

func (l *ledgerSrv) TruncateAfter(ctx context.Context, lineageID uuid.UUID, version int) (int64, error) {
	deleted, err := l.repo.DeleteVersionsAfter(ctx, lineageID, version)
	if err != nil {
		return 0, err
	}

	// Invariant: no version above the cut survives.
	maxVersion, err := l.repo.MaxVersion(ctx, lineageID)
	if err != nil {
		return deleted, err
	}
	if maxVersion > version {
		return deleted, fmt.Errorf("lineage %s still has version %d after truncating to %d", lineageID, maxVersion, version)
	}
	return deleted, nil
}

func (l *ledgerSrv) resolve(ctx context.Context, id uuid.UUID) (*model.ImageEdit, error) {
	edit, err := l.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, port.ErrNotFound
		}
		return nil, err
	}
	return edit, nil
}
