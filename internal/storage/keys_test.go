package storage

import (
	"testing"

	"github.com/fhuszti/propshot-ms-go/internal/uuid"
	guuid "github.com/google/uuid"
)

func TestKeysAreDeterministic(t *testing.T) {
	ws := uuid.UUID(guuid.MustParse("11111111-1111-1111-1111-111111111111"))
	proj := uuid.UUID(guuid.MustParse("22222222-2222-2222-2222-222222222222"))
	edit := uuid.UUID(guuid.MustParse("33333333-3333-3333-3333-333333333333"))

	want := "11111111-1111-1111-1111-111111111111/projects/22222222-2222-2222-2222-222222222222/33333333-3333-3333-3333-333333333333.jpg"
	if got := ImageKey(ws, proj, edit, ".jpg"); got != want {
		t.Errorf("ImageKey = %q, want %q", got, want)
	}
	if first, second := ImageKey(ws, proj, edit, ".jpg"), ImageKey(ws, proj, edit, ".jpg"); first != second {
		t.Error("same inputs must produce the same key")
	}

	wantMask := "11111111-1111-1111-1111-111111111111/projects/22222222-2222-2222-2222-222222222222/33333333-3333-3333-3333-333333333333.mask.png"
	if got := MaskKey(ws, proj, edit); got != wantMask {
		t.Errorf("MaskKey = %q, want %q", got, wantMask)
	}

	wantClip := "11111111-1111-1111-1111-111111111111/videos/22222222-2222-2222-2222-222222222222/33333333-3333-3333-3333-333333333333.mp4"
	if got := ClipKey(ws, proj, edit); got != wantClip {
		t.Errorf("ClipKey = %q, want %q", got, wantClip)
	}
}

func TestExtensionForContentType(t *testing.T) {
	cases := map[string]string{
		"image/png":  ".png",
		"image/webp": ".webp",
		"video/mp4":  ".mp4",
		"image/jpeg": ".jpg",
		"":           ".jpg",
	}
	for ct, want := range cases {
		if got := ExtensionForContentType(ct); got != want {
			t.Errorf("ExtensionForContentType(%q) = %q, want %q", ct, got, want)
		}
	}
}
