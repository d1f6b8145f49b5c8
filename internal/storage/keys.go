package storage

import (
	"fmt"

	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// Object keys are derived from workspace / owning aggregate / entity ids so
// a re-run of the same job lands on the same key.

// ImageKey is where an image edit's result lives.
func ImageKey(workspaceID, projectID, editID uuid.UUID, ext string) string {
	return fmt.Sprintf("%s/projects/%s/%s%s", workspaceID, projectID, editID, ext)
}

// MaskKey is where an edit's mask lives, next to its result.
func MaskKey(workspaceID, projectID, editID uuid.UUID) string {
	return fmt.Sprintf("%s/projects/%s/%s.mask.png", workspaceID, projectID, editID)
}

// ClipKey is where a video clip's result lives.
func ClipKey(workspaceID, videoProjectID, clipID uuid.UUID) string {
	return fmt.Sprintf("%s/videos/%s/%s.mp4", workspaceID, videoProjectID, clipID)
}

// ExtensionForContentType maps a provider result content type to the file
// extension used in object keys.
func ExtensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	default:
		return ".jpg"
	}
}
