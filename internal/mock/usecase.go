package mock

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// MockLedger implements port.Ledger for tests.
type MockLedger struct {
	CreateOut *model.ImageEdit
	CreateErr error

	ListOut []model.ImageEdit
	ListErr error

	LatestOut *model.ImageEdit
	LatestErr error

	TruncateOut int64
	TruncateErr error

	CreateCalled   bool
	CreatedFields  port.NewVersionFields
	CreatedLineage uuid.UUID
	ListCalled     bool
	LatestCalled   bool
	TruncateCalled bool
	TruncatedAfter int
}

func (m *MockLedger) CreateVersion(ctx context.Context, lineageID uuid.UUID, fields port.NewVersionFields) (*model.ImageEdit, error) {
	m.CreateCalled = true
	m.CreatedLineage = lineageID
	m.CreatedFields = fields
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.CreateOut, nil
}

func (m *MockLedger) ListLineage(ctx context.Context, anyID uuid.UUID) ([]model.ImageEdit, error) {
	m.ListCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *MockLedger) Latest(ctx context.Context, anyID uuid.UUID) (*model.ImageEdit, error) {
	m.LatestCalled = true
	if m.LatestErr != nil {
		return nil, m.LatestErr
	}
	return m.LatestOut, nil
}

func (m *MockLedger) TruncateAfter(ctx context.Context, lineageID uuid.UUID, version int) (int64, error) {
	m.TruncateCalled = true
	m.TruncatedAfter = version
	if m.TruncateErr != nil {
		return 0, m.TruncateErr
	}
	return m.TruncateOut, nil
}

// MockRecomputer implements port.Recomputer for tests.
type MockRecomputer struct {
	ProjectErr      error
	VideoProjectErr error

	ProjectCalled      bool
	ProjectIDs         []uuid.UUID
	VideoProjectCalled bool
	VideoProjectIDs    []uuid.UUID
}

func (m *MockRecomputer) RecomputeProject(ctx context.Context, projectID uuid.UUID) error {
	m.ProjectCalled = true
	m.ProjectIDs = append(m.ProjectIDs, projectID)
	return m.ProjectErr
}

func (m *MockRecomputer) RecomputeVideoProject(ctx context.Context, videoProjectID uuid.UUID) error {
	m.VideoProjectCalled = true
	m.VideoProjectIDs = append(m.VideoProjectIDs, videoProjectID)
	return m.VideoProjectErr
}

// MockEditRequester implements port.EditRequester for tests.
type MockEditRequester struct {
	Out port.RequestEditOutput
	Err error

	Called bool
	In     port.RequestEditInput
}

func (m *MockEditRequester) RequestEdit(ctx context.Context, in port.RequestEditInput) (port.RequestEditOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockInpainter implements port.Inpainter for tests.
type MockInpainter struct {
	Err error

	Called bool
	In     port.InpaintImageInput
}

func (m *MockInpainter) InpaintImage(ctx context.Context, in port.InpaintImageInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// MockClipRequester implements port.ClipRequester for tests.
type MockClipRequester struct {
	Out port.RequestClipOutput
	Err error

	Called bool
	ClipID uuid.UUID
}

func (m *MockClipRequester) RequestClip(ctx context.Context, clipID uuid.UUID) (port.RequestClipOutput, error) {
	m.Called = true
	m.ClipID = clipID
	return m.Out, m.Err
}

// MockClipGenerator implements port.ClipGenerator for tests.
type MockClipGenerator struct {
	Err error

	Called bool
	In     port.GenerateClipInput
}

func (m *MockClipGenerator) GenerateClip(ctx context.Context, in port.GenerateClipInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// MockStaleReaper implements port.StaleReaper for tests.
type MockStaleReaper struct {
	Err    error
	Called bool
}

func (m *MockStaleReaper) ReapStale(ctx context.Context) error {
	m.Called = true
	return m.Err
}

// MockProjectGetter implements port.ProjectGetter for tests.
type MockProjectGetter struct {
	Out *port.GetProjectOutput
	Err error

	Called bool
	ID     uuid.UUID
}

func (m *MockProjectGetter) GetProject(ctx context.Context, id uuid.UUID) (*port.GetProjectOutput, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// MockVideoProjectGetter implements port.VideoProjectGetter for tests.
type MockVideoProjectGetter struct {
	Out *port.GetVideoProjectOutput
	Err error

	Called bool
	ID     uuid.UUID
}

func (m *MockVideoProjectGetter) GetVideoProject(ctx context.Context, id uuid.UUID) (*port.GetVideoProjectOutput, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// MockMusicTrackLister implements port.MusicTrackLister for tests.
type MockMusicTrackLister struct {
	Out []model.MusicTrack
	Err error

	Called bool
}

func (m *MockMusicTrackLister) ListMusicTracks(ctx context.Context) ([]model.MusicTrack, error) {
	m.Called = true
	return m.Out, m.Err
}
