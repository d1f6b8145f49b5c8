package model

import (
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type EditMode string

const (
	EditModeRemove EditMode = "remove"
	EditModeAdd    EditMode = "add"
)

func (m EditMode) Valid() bool {
	return m == EditModeRemove || m == EditModeAdd
}

// ImageEdit is one version of an edited listing photo. Every edit belongs to
// a lineage: LineageID is the id of the version-1 row, and the version-1 row
// carries its own id as LineageID. Versions within a lineage start at 1 and
// are unique (enforced by the database).
type ImageEdit struct {
	ID                  uuid.UUID  `json:"id"`
	ProjectID           uuid.UUID  `json:"project_id"`
	LineageID           uuid.UUID  `json:"lineage_id"`
	Version             int        `json:"version"`
	Status              string     `json:"status"`
	Mode                EditMode   `json:"mode"`
	Prompt              string     `json:"prompt"`
	SourceURL           string     `json:"source_url"`
	MaskURL             *string    `json:"mask_url,omitempty"`
	ResultURL           *string    `json:"result_url,omitempty"`
	FailureMessage      *string    `json:"failure_message,omitempty"`
	ProcessingStartedAt *time.Time `json:"processing_started_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// IsRoot reports whether this edit is the first version of its lineage.
func (e *ImageEdit) IsRoot() bool {
	return e.LineageID == e.ID
}

// IsReplayable reports whether a job for this edit already ran to completion,
// in which case re-running it must be a no-op success.
func (e *ImageEdit) IsReplayable() bool {
	return e.Status == StatusCompleted && e.ResultURL != nil && *e.ResultURL != ""
}
