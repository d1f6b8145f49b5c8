package music

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
)

type musicTrackListerSrv struct {
	tracks port.MusicTrackRepository
}

// compile-time check: *musicTrackListerSrv must satisfy port.MusicTrackLister
var _ port.MusicTrackLister = (*musicTrackListerSrv)(nil)

// NewMusicTrackLister constructs a MusicTrackLister implementation.
func NewMusicTrackLister(tracks port.MusicTrackRepository) port.MusicTrackLister {
	return &musicTrackListerSrv{tracks}
}

func (s *musicTrackListerSrv) ListMusicTracks(ctx context.Context) ([]model.MusicTrack, error) {
	return s.tracks.List(ctx)
}
