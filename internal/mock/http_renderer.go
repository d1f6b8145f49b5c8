package mock

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// MockHTTPRenderer implements renderer.HTTPRenderer for tests.
type MockHTTPRenderer struct {
	Data []byte
	Etag string
	Err  error

	ProjectCalled bool
	ProjectID     uuid.UUID
	TracksCalled  bool
}

func (m *MockHTTPRenderer) RenderGetProject(ctx context.Context, getter port.ProjectGetter, id uuid.UUID) ([]byte, string, error) {
	m.ProjectCalled = true
	m.ProjectID = id
	return m.Data, m.Etag, m.Err
}

func (m *MockHTTPRenderer) RenderListMusicTracks(ctx context.Context, lister port.MusicTrackLister) ([]byte, string, error) {
	m.TracksCalled = true
	return m.Data, m.Etag, m.Err
}
