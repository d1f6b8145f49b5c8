package testutil

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func GeneratePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// GenerateMaskDataURL returns a base64 PNG data URL like the one the frontend
// sends when the user paints a mask.
func GenerateMaskDataURL(t *testing.T, width, height int) string {
	t.Helper()
	raw := GeneratePNG(t, width, height)
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}
