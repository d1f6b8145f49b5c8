package port

import (
	"context"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// Cache provides caching for read endpoints: project details and the
// music-track catalogue.
type Cache interface {
	GetProjectDetails(ctx context.Context, id uuid.UUID) ([]byte, error)
	GetEtagProjectDetails(ctx context.Context, id uuid.UUID) (string, error)
	SetProjectDetails(ctx context.Context, id uuid.UUID, data []byte, ttl time.Duration)
	SetEtagProjectDetails(ctx context.Context, id uuid.UUID, etag string, ttl time.Duration)
	DeleteProjectDetails(ctx context.Context, id uuid.UUID) error

	GetMusicTracks(ctx context.Context) ([]byte, error)
	GetEtagMusicTracks(ctx context.Context) (string, error)
	SetMusicTracks(ctx context.Context, data []byte, ttl time.Duration)
	SetEtagMusicTracks(ctx context.Context, etag string, ttl time.Duration)
}
