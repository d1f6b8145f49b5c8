package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// Cache TTLs for the two read endpoints. Project details change with every
// job, so they stay short; the music catalogue practically never changes.
const (
	projectDetailsTTL = 2 * time.Minute
	musicTracksTTL    = time.Hour
)

// HTTPRenderer mediates between HTTP handlers and the read use cases. It
// provides caching capabilities and returns both the JSON representation of
// the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	// RenderGetProject returns the cached JSON result and its ETag if available
	// or executes the underlying use case and caches the output otherwise.
	RenderGetProject(ctx context.Context, getter port.ProjectGetter, id uuid.UUID) ([]byte, string, error)
	// RenderListMusicTracks does the same for the music-track catalogue.
	RenderListMusicTracks(ctx context.Context, lister port.MusicTrackLister) ([]byte, string, error)
}

type httpRenderer struct {
	cache port.Cache
}

// compile-time check: *httpRenderer must satisfy HTTPRenderer
var _ HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache) HTTPRenderer {
	return &httpRenderer{cache: cache}
}

func (r *httpRenderer) RenderGetProject(ctx context.Context, getter port.ProjectGetter, id uuid.UUID) ([]byte, string, error) {
	raw, err := r.cache.GetProjectDetails(ctx, id)
	etag, errEtag := r.cache.GetEtagProjectDetails(ctx, id)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := getter.GetProject(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = etagFor(raw)
	r.cache.SetProjectDetails(ctx, id, raw, projectDetailsTTL)
	r.cache.SetEtagProjectDetails(ctx, id, etag, projectDetailsTTL)

	return raw, etag, nil
}

func (r *httpRenderer) RenderListMusicTracks(ctx context.Context, lister port.MusicTrackLister) ([]byte, string, error) {
	raw, err := r.cache.GetMusicTracks(ctx)
	etag, errEtag := r.cache.GetEtagMusicTracks(ctx)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	tracks, err := lister.ListMusicTracks(ctx)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(tracks)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = etagFor(raw)
	r.cache.SetMusicTracks(ctx, raw, musicTracksTTL)
	r.cache.SetEtagMusicTracks(ctx, etag, musicTracksTTL)

	return raw, etag, nil
}

func etagFor(raw []byte) string {
	return fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
}
