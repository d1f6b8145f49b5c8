package aggregate

import (
	"context"
	"fmt"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type recomputerSrv struct {
	edits    port.ImageEditRepository
	projects port.ProjectRepository
	clips    port.VideoClipRepository
	videos   port.VideoProjectRepository
	cache    port.Cache
}

// compile-time check: *recomputerSrv must satisfy port.Recomputer
var _ port.Recomputer = (*recomputerSrv)(nil)

// NewRecomputer constructs a Recomputer implementation. cache may be nil in
// contexts without Redis; invalidation is then skipped.
func NewRecomputer(
	edits port.ImageEditRepository,
	projects port.ProjectRepository,
	clips port.VideoClipRepository,
	videos port.VideoProjectRepository,
	cache port.Cache,
) port.Recomputer {
	return &recomputerSrv{edits, projects, clips, videos, cache}
}

// RecomputeProject takes a fresh snapshot of the project's edit statuses and
// writes the derived counts and status back in one update.
func (s *recomputerSrv) RecomputeProject(ctx context.Context, projectID uuid.UUID) error {
	counts, err := s.edits.CountByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("error counting edits for project #%s: %w", projectID, err)
	}

	status := model.DeriveAggregateStatus(counts)
	if err := s.projects.UpdateCounts(ctx, projectID, counts, status); err != nil {
		return fmt.Errorf("error updating counts for project #%s: %w", projectID, err)
	}
	logger.Infof(ctx, "project #%s recomputed: %d/%d completed, status %q", projectID, counts.Completed, counts.Total, status)

	if s.cache != nil {
		if err := s.cache.DeleteProjectDetails(ctx, projectID); err != nil {
			logger.Warnf(ctx, "failed to invalidate cache for project #%s: %v", projectID, err)
		}
	}
	return nil
}

// RecomputeVideoProject does the same for a video project and its clips.
func (s *recomputerSrv) RecomputeVideoProject(ctx context.Context, videoProjectID uuid.UUID) error {
	counts, err := s.clips.CountByVideoProject(ctx, videoProjectID)
	if err != nil {
		return fmt.Errorf("error counting clips for video project #%s: %w", videoProjectID, err)
	}

	status := model.DeriveAggregateStatus(counts)
	if err := s.videos.UpdateCounts(ctx, videoProjectID, counts, status); err != nil {
		return fmt.Errorf("error updating counts for video project #%s: %w", videoProjectID, err)
	}
	logger.Infof(ctx, "video project #%s recomputed: %d/%d completed, status %q", videoProjectID, counts.Completed, counts.Total, status)
	return nil
}
