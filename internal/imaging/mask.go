package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	_ "image/jpeg"

	"golang.org/x/image/draw"
)

// MaskFromDataURL decodes a user-drawn mask sent as a base64 data URL
// (e.g. "data:image/png;base64,...").
func MaskFromDataURL(dataURL string) (image.Image, error) {
	idx := strings.Index(dataURL, ",")
	if !strings.HasPrefix(dataURL, "data:") || idx < 0 {
		return nil, fmt.Errorf("imaging: malformed data URL")
	}
	meta := dataURL[:idx]
	if !strings.Contains(meta, ";base64") {
		return nil, fmt.Errorf("imaging: data URL is not base64 encoded")
	}

	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("imaging: decode base64 mask: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode mask image: %w", err)
	}
	return img, nil
}

// MaskFromRect builds a mask for add mode from a placement rectangle: white
// inside the rectangle (the edit region), black elsewhere.
func MaskFromRect(x, y, w, h, imageWidth, imageHeight int) (image.Image, error) {
	if w <= 0 || h <= 0 || imageWidth <= 0 || imageHeight <= 0 {
		return nil, fmt.Errorf("imaging: placement rectangle and image bounds must be positive")
	}

	mask := image.NewGray(image.Rect(0, 0, imageWidth, imageHeight))
	rect := image.Rect(x, y, x+w, y+h).Intersect(mask.Bounds())
	draw.Draw(mask, rect, image.NewUniform(color.White), image.Point{}, draw.Src)
	return mask, nil
}

// FitTo scales a mask to the source image's bounds. Nearest neighbour keeps
// the mask binary instead of introducing grey edges.
func FitTo(mask image.Image, width, height int) image.Image {
	b := mask.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return mask
	}
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), mask, b, draw.Src, nil)
	return dst
}

// EncodePNG renders a mask as PNG bytes for upload.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imaging: encode mask png: %w", err)
	}
	return buf.Bytes(), nil
}
