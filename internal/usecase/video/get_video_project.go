package video

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type videoProjectGetterSrv struct {
	videos port.VideoProjectRepository
	clips  port.VideoClipRepository
	tracks port.MusicTrackRepository
}

// compile-time check: *videoProjectGetterSrv must satisfy port.VideoProjectGetter
var _ port.VideoProjectGetter = (*videoProjectGetterSrv)(nil)

// NewVideoProjectGetter constructs a VideoProjectGetter implementation.
func NewVideoProjectGetter(
	videos port.VideoProjectRepository,
	clips port.VideoClipRepository,
	tracks port.MusicTrackRepository,
) port.VideoProjectGetter {
	return &videoProjectGetterSrv{videos, clips, tracks}
}

// GetVideoProject returns the video project with its clips in sequence order
// and its selected music track, when one is set.
func (s *videoProjectGetterSrv) GetVideoProject(ctx context.Context, id uuid.UUID) (*port.GetVideoProjectOutput, error) {
	videoProject, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, port.ErrNotFound
		}
		return nil, err
	}

	clips, err := s.clips.ListByVideoProject(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &port.GetVideoProjectOutput{VideoProject: *videoProject, Clips: clips}
	if videoProject.MusicTrackID != nil {
		track, err := s.tracks.GetByID(ctx, *videoProject.MusicTrackID)
		if err != nil {
			// a dangling track reference should not hide the project
			logger.Warnf(ctx, "failed to load music track #%s: %v", *videoProject.MusicTrackID, err)
		} else {
			out.MusicTrack = track
		}
	}
	return out, nil
}
