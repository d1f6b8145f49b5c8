package mock

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// ImageEditRepo implements port.ImageEditRepository in memory for tests.
// Records is keyed by edit id; lineage queries derive from it.
type ImageEditRepo struct {
	Records map[uuid.UUID]*model.ImageEdit

	GetErr    error
	CreateErr error
	UpdateErr error
	ListErr   error
	MaxErr    error
	DeleteErr error
	CountErr  error
	StaleErr  error

	// ConflictsLeft makes the next N Create calls fail with
	// port.ErrVersionConflict, simulating a lost race on the unique key.
	ConflictsLeft int

	CountOut model.AggregateCounts
	StaleOut []uuid.UUID

	Created     []*model.ImageEdit
	Updated     *model.ImageEdit
	GetCalled   bool
	CountCalled bool
}

var _ port.ImageEditRepository = (*ImageEditRepo)(nil)

func (m *ImageEditRepo) put(e *model.ImageEdit) {
	if m.Records == nil {
		m.Records = make(map[uuid.UUID]*model.ImageEdit)
	}
	cp := *e
	m.Records[e.ID] = &cp
}

// Seed adds records to the in-memory store.
func (m *ImageEditRepo) Seed(edits ...*model.ImageEdit) *ImageEditRepo {
	for _, e := range edits {
		m.put(e)
	}
	return m
}

func (m *ImageEditRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.ImageEdit, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	e, ok := m.Records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (m *ImageEditRepo) Create(ctx context.Context, edit *model.ImageEdit) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if m.ConflictsLeft > 0 {
		m.ConflictsLeft--
		return port.ErrVersionConflict
	}
	m.Created = append(m.Created, edit)
	m.put(edit)
	return nil
}

func (m *ImageEditRepo) Update(ctx context.Context, edit *model.ImageEdit) error {
	m.Updated = edit
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.put(edit)
	return nil
}

func (m *ImageEditRepo) ListLineage(ctx context.Context, lineageID uuid.UUID) ([]model.ImageEdit, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var edits []model.ImageEdit
	for _, e := range m.Records {
		if e.LineageID == lineageID {
			edits = append(edits, *e)
		}
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Version < edits[j].Version })
	return edits, nil
}

func (m *ImageEditRepo) MaxVersion(ctx context.Context, lineageID uuid.UUID) (int, error) {
	if m.MaxErr != nil {
		return 0, m.MaxErr
	}
	maxVersion := 0
	for _, e := range m.Records {
		if e.LineageID == lineageID && e.Version > maxVersion {
			maxVersion = e.Version
		}
	}
	return maxVersion, nil
}

func (m *ImageEditRepo) DeleteVersionsAfter(ctx context.Context, lineageID uuid.UUID, version int) (int64, error) {
	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}
	var deleted int64
	for id, e := range m.Records {
		if e.LineageID == lineageID && e.Version > version {
			delete(m.Records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *ImageEditRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ImageEdit, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var edits []model.ImageEdit
	for _, e := range m.Records {
		if e.ProjectID == projectID {
			edits = append(edits, *e)
		}
	}
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].LineageID != edits[j].LineageID {
			return edits[i].LineageID.String() < edits[j].LineageID.String()
		}
		return edits[i].Version < edits[j].Version
	})
	return edits, nil
}

func (m *ImageEditRepo) CountByProject(ctx context.Context, projectID uuid.UUID) (model.AggregateCounts, error) {
	m.CountCalled = true
	if m.CountErr != nil {
		return model.AggregateCounts{}, m.CountErr
	}
	if m.CountOut != (model.AggregateCounts{}) {
		return m.CountOut, nil
	}
	var c model.AggregateCounts
	for _, e := range m.Records {
		if e.ProjectID != projectID {
			continue
		}
		c.Total++
		switch e.Status {
		case model.StatusCompleted:
			c.Completed++
		case model.StatusProcessing:
			c.Processing++
		case model.StatusFailed:
			c.Failed++
		}
	}
	return c, nil
}

func (m *ImageEditRepo) ListStaleProcessing(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	if m.StaleErr != nil {
		return nil, m.StaleErr
	}
	return m.StaleOut, nil
}

// ProjectRepo implements port.ProjectRepository for tests.
type ProjectRepo struct {
	Project *model.Project

	GetErr    error
	UpdateErr error

	UpdatedCounts *model.AggregateCounts
	UpdatedStatus string
	UpdateCalled  bool
}

var _ port.ProjectRepository = (*ProjectRepo)(nil)

func (m *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Project == nil {
		return nil, sql.ErrNoRows
	}
	return m.Project, nil
}

func (m *ProjectRepo) UpdateCounts(ctx context.Context, id uuid.UUID, counts model.AggregateCounts, status string) error {
	m.UpdateCalled = true
	m.UpdatedCounts = &counts
	m.UpdatedStatus = status
	return m.UpdateErr
}

// VideoClipRepo implements port.VideoClipRepository for tests.
type VideoClipRepo struct {
	Clip  *model.VideoClip
	Clips []model.VideoClip

	GetErr    error
	CreateErr error
	UpdateErr error
	ListErr   error
	CountErr  error
	StaleErr  error

	CountOut model.AggregateCounts
	StaleOut []uuid.UUID

	Created *model.VideoClip
	Updated *model.VideoClip
}

var _ port.VideoClipRepository = (*VideoClipRepo)(nil)

func (m *VideoClipRepo) Create(ctx context.Context, clip *model.VideoClip) error {
	m.Created = clip
	return m.CreateErr
}

func (m *VideoClipRepo) Update(ctx context.Context, clip *model.VideoClip) error {
	m.Updated = clip
	if m.UpdateErr == nil && m.Clip != nil && m.Clip.ID == clip.ID {
		cp := *clip
		m.Clip = &cp
	}
	return m.UpdateErr
}

func (m *VideoClipRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.VideoClip, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Clip == nil || m.Clip.ID != id {
		return nil, sql.ErrNoRows
	}
	cp := *m.Clip
	return &cp, nil
}

func (m *VideoClipRepo) ListByVideoProject(ctx context.Context, videoProjectID uuid.UUID) ([]model.VideoClip, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Clips, nil
}

func (m *VideoClipRepo) CountByVideoProject(ctx context.Context, videoProjectID uuid.UUID) (model.AggregateCounts, error) {
	if m.CountErr != nil {
		return model.AggregateCounts{}, m.CountErr
	}
	return m.CountOut, nil
}

func (m *VideoClipRepo) ListStaleProcessing(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	if m.StaleErr != nil {
		return nil, m.StaleErr
	}
	return m.StaleOut, nil
}

// VideoProjectRepo implements port.VideoProjectRepository for tests.
type VideoProjectRepo struct {
	VideoProject *model.VideoProject

	GetErr    error
	UpdateErr error

	UpdatedCounts *model.AggregateCounts
	UpdatedStatus string
	UpdateCalled  bool
}

var _ port.VideoProjectRepository = (*VideoProjectRepo)(nil)

func (m *VideoProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.VideoProject, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.VideoProject == nil {
		return nil, sql.ErrNoRows
	}
	return m.VideoProject, nil
}

func (m *VideoProjectRepo) UpdateCounts(ctx context.Context, id uuid.UUID, counts model.AggregateCounts, status string) error {
	m.UpdateCalled = true
	m.UpdatedCounts = &counts
	m.UpdatedStatus = status
	return m.UpdateErr
}

// MusicTrackRepo implements port.MusicTrackRepository for tests.
type MusicTrackRepo struct {
	Track  *model.MusicTrack
	Tracks []model.MusicTrack

	GetErr  error
	ListErr error

	ListCalled bool
}

var _ port.MusicTrackRepository = (*MusicTrackRepo)(nil)

func (m *MusicTrackRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.MusicTrack, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Track == nil {
		return nil, sql.ErrNoRows
	}
	return m.Track, nil
}

func (m *MusicTrackRepo) List(ctx context.Context) ([]model.MusicTrack, error) {
	m.ListCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Tracks, nil
}
