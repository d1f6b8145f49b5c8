package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func maskDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestMaskFromDataURL(t *testing.T) {
	img, err := MaskFromDataURL(maskDataURL(t, 10, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 6 {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestMaskFromDataURL_Malformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"no prefix", "nonsense"},
		{"not base64", "data:image/png;charset=utf-8,xxx"},
		{"bad base64", "data:image/png;base64,!!!"},
		{"not an image", "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MaskFromDataURL(tc.in); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestMaskFromRect(t *testing.T) {
	mask, err := MaskFromRect(2, 2, 4, 3, 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gray, ok := mask.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray, got %T", mask)
	}
	if got := gray.GrayAt(3, 3); got.Y != 255 {
		t.Errorf("inside rectangle should be white, got %v", got)
	}
	if got := gray.GrayAt(0, 0); got.Y != 0 {
		t.Errorf("outside rectangle should be black, got %v", got)
	}
}

func TestMaskFromRect_ClampsToImageBounds(t *testing.T) {
	mask, err := MaskFromRect(8, 8, 10, 10, 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b := mask.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("mask should keep image bounds, got %v", b)
	}
}

func TestMaskFromRect_InvalidInputs(t *testing.T) {
	if _, err := MaskFromRect(0, 0, 0, 5, 10, 10); err == nil {
		t.Error("expected error for zero-width rectangle")
	}
	if _, err := MaskFromRect(0, 0, 5, 5, 0, 10); err == nil {
		t.Error("expected error for zero-width image")
	}
}

func TestFitTo(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	src.SetGray(1, 1, color.Gray{Y: 255})

	dst := FitTo(src, 8, 8)
	if b := dst.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("unexpected bounds %v", b)
	}

	// Same size comes back untouched.
	same := FitTo(src, 4, 4)
	if same != image.Image(src) {
		t.Error("expected the same image back when dimensions already match")
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	mask, err := MaskFromRect(0, 0, 2, 2, 4, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := EncodePNG(mask)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode encoded png: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestProbeDimensions_PNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 12, 7))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	w, h, err := ProbeDimensions("image/png", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 12 || h != 7 {
		t.Errorf("unexpected dimensions %dx%d", w, h)
	}
}

func TestProbeDimensions_Garbage(t *testing.T) {
	if _, _, err := ProbeDimensions("image/png", bytes.NewReader([]byte("nope"))); err == nil {
		t.Error("expected an error")
	}
}
