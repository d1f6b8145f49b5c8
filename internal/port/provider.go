package port

import "context"

// InpaintRequest is what the image provider needs for one edit. MaskURL is
// required in remove mode; in add mode it may be empty, in which case the
// provider relies on the prompt and the placement the mask was derived from.
type InpaintRequest struct {
	Prompt       string
	SourceURL    string
	MaskURL      string
	OutputFormat string
}

// InpaintResult is the completed output of an image edit.
type InpaintResult struct {
	URL    string
	Width  int
	Height int
}

// ImageGenerator submits one inpainting request to the external image
// provider and blocks (polling) until it resolves.
type ImageGenerator interface {
	Inpaint(ctx context.Context, req InpaintRequest) (InpaintResult, error)
}

// ClipRequest is what the video provider needs for one clip.
type ClipRequest struct {
	SourceImageURL  string
	MotionPrompt    string
	NegativePrompt  string
	DurationSeconds int
	AspectRatio     string
}

// ClipResult is the completed output of a clip generation.
type ClipResult struct {
	URL string
}

// VideoGenerator submits one clip generation request to the external video
// provider and blocks (polling) until it resolves.
type VideoGenerator interface {
	GenerateClip(ctx context.Context, req ClipRequest) (ClipResult, error)
}
