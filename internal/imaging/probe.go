package imaging

import (
	"fmt"
	"image"
	"io"

	"github.com/chai2010/webp"
)

// ProbeDimensions reads the pixel dimensions of a downloaded result without
// decoding the full image. Providers return jpeg, png or webp.
func ProbeDimensions(contentType string, r io.Reader) (width, height int, err error) {
	switch contentType {
	case "image/webp":
		cfg, err := webp.DecodeConfig(r)
		if err != nil {
			return 0, 0, fmt.Errorf("imaging: probe webp: %w", err)
		}
		return cfg.Width, cfg.Height, nil
	default:
		cfg, _, err := image.DecodeConfig(r)
		if err != nil {
			return 0, 0, fmt.Errorf("imaging: probe image: %w", err)
		}
		return cfg.Width, cfg.Height, nil
	}
}
