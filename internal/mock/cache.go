package mock

import (
	"context"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	ProjectOut []byte
	TracksOut  []byte

	// etag values
	EtagProject string
	EtagTracks  string

	// errors
	GetProjectErr     error
	GetEtagProjectErr error
	DelProjectErr     error
	GetTracksErr      error
	GetEtagTracksErr  error

	// call flags
	GetProjectCalled     bool
	GetEtagProjectCalled bool
	SetProjectCalled     bool
	SetEtagProjectCalled bool
	DelProjectCalled     bool
	GetTracksCalled      bool
	GetEtagTracksCalled  bool
	SetTracksCalled      bool
	SetEtagTracksCalled  bool
}

func (c *Cache) GetProjectDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	c.GetProjectCalled = true
	if c.GetProjectErr != nil {
		return nil, c.GetProjectErr
	}
	return c.ProjectOut, nil
}

func (c *Cache) GetEtagProjectDetails(ctx context.Context, id uuid.UUID) (string, error) {
	c.GetEtagProjectCalled = true
	if c.GetEtagProjectErr != nil {
		return "", c.GetEtagProjectErr
	}
	return c.EtagProject, nil
}

func (c *Cache) SetProjectDetails(ctx context.Context, id uuid.UUID, data []byte, ttl time.Duration) {
	c.SetProjectCalled = true
	c.ProjectOut = data
}

func (c *Cache) SetEtagProjectDetails(ctx context.Context, id uuid.UUID, etag string, ttl time.Duration) {
	c.SetEtagProjectCalled = true
	c.EtagProject = etag
}

func (c *Cache) DeleteProjectDetails(ctx context.Context, id uuid.UUID) error {
	c.DelProjectCalled = true
	return c.DelProjectErr
}

func (c *Cache) GetMusicTracks(ctx context.Context) ([]byte, error) {
	c.GetTracksCalled = true
	if c.GetTracksErr != nil {
		return nil, c.GetTracksErr
	}
	return c.TracksOut, nil
}

func (c *Cache) GetEtagMusicTracks(ctx context.Context) (string, error) {
	c.GetEtagTracksCalled = true
	if c.GetEtagTracksErr != nil {
		return "", c.GetEtagTracksErr
	}
	return c.EtagTracks, nil
}

func (c *Cache) SetMusicTracks(ctx context.Context, data []byte, ttl time.Duration) {
	c.SetTracksCalled = true
	c.TracksOut = data
}

func (c *Cache) SetEtagMusicTracks(ctx context.Context, etag string, ttl time.Duration) {
	c.SetEtagTracksCalled = true
	c.EtagTracks = etag
}
