package model

import (
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type AspectRatio string

const (
	AspectRatioLandscape AspectRatio = "16:9"
	AspectRatioPortrait  AspectRatio = "9:16"
	AspectRatioSquare    AspectRatio = "1:1"
)

func (a AspectRatio) Valid() bool {
	switch a {
	case AspectRatioLandscape, AspectRatioPortrait, AspectRatioSquare:
		return true
	}
	return false
}

// VideoClip is one animated shot of a property tour, generated from a still
// image. SequenceOrder is its position in the assembled video.
type VideoClip struct {
	ID                  uuid.UUID  `json:"id"`
	VideoProjectID      uuid.UUID  `json:"video_project_id"`
	Status              string     `json:"status"`
	SourceImageURL      string     `json:"source_image_url"`
	ClipURL             *string    `json:"clip_url,omitempty"`
	SequenceOrder       int        `json:"sequence_order"`
	MotionPrompt        *string    `json:"motion_prompt,omitempty"`
	DurationSeconds     int        `json:"duration_seconds"`
	RoomType            RoomType   `json:"room_type"`
	FailureMessage      *string    `json:"failure_message,omitempty"`
	ProcessingStartedAt *time.Time `json:"processing_started_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// IsReplayable reports whether a generation job for this clip already ran to
// completion, in which case re-running it must be a no-op success.
func (c *VideoClip) IsReplayable() bool {
	return c.Status == StatusCompleted && c.ClipURL != nil && *c.ClipURL != ""
}

// VideoProject owns the clips of one property tour. Status and clip counts
// are derived from the children, like Project.
type VideoProject struct {
	ID                  uuid.UUID   `json:"id"`
	WorkspaceID         uuid.UUID   `json:"workspace_id"`
	Name                string      `json:"name"`
	Status              string      `json:"status"`
	ClipCount           int         `json:"clip_count"`
	CompletedClipCount  int         `json:"completed_clip_count"`
	AspectRatio         AspectRatio `json:"aspect_ratio"`
	MusicTrackID        *uuid.UUID  `json:"music_track_id,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// MusicTrack is read-only reference data for video assembly.
type MusicTrack struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Mood            string    `json:"mood"`
	DurationSeconds int       `json:"duration_seconds"`
	BPM             int       `json:"bpm"`
	License         string    `json:"license"`
	URL             string    `json:"url"`
	CreatedAt       time.Time `json:"created_at"`
}
