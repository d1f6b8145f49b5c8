package cache

import (
	"context"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetProjectDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagProjectDetails(ctx context.Context, id uuid.UUID) (string, error) {
	return "", nil
}

func (n *NoopCache) SetProjectDetails(ctx context.Context, id uuid.UUID, data []byte, ttl time.Duration) {
}

func (n *NoopCache) SetEtagProjectDetails(ctx context.Context, id uuid.UUID, etag string, ttl time.Duration) {
}

func (n *NoopCache) DeleteProjectDetails(ctx context.Context, id uuid.UUID) error { return nil }

func (n *NoopCache) GetMusicTracks(ctx context.Context) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagMusicTracks(ctx context.Context) (string, error) {
	return "", nil
}

func (n *NoopCache) SetMusicTracks(ctx context.Context, data []byte, ttl time.Duration) {}

func (n *NoopCache) SetEtagMusicTracks(ctx context.Context, etag string, ttl time.Duration) {}
