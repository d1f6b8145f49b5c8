package model

import (
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// Project groups the image edits of one listing. Its status and counts are
// derived from its children and never set directly.
type Project struct {
	ID             uuid.UUID `json:"id"`
	WorkspaceID    uuid.UUID `json:"workspace_id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	ImageCount     int       `json:"image_count"`
	CompletedCount int       `json:"completed_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AggregateCounts is a snapshot of child statuses taken in a single read.
type AggregateCounts struct {
	Total      int
	Completed  int
	Processing int
	Failed     int
}

// DeriveAggregateStatus computes a parent's status from its children.
// The rule: completed iff every child completed (and there is at least one);
// processing iff any child completed or is still processing; failed iff some
// children failed and none completed; pending otherwise.
func DeriveAggregateStatus(c AggregateCounts) string {
	switch {
	case c.Total > 0 && c.Completed == c.Total:
		return StatusCompleted
	case c.Completed > 0 || c.Processing > 0:
		return StatusProcessing
	case c.Failed > 0:
		return StatusFailed
	default:
		return StatusPending
	}
}
