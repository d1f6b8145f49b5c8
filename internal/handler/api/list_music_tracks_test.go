package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/propshot-ms-go/internal/mock"
)

func TestListMusicTracksHandler(t *testing.T) {
	t.Run("renderer error", func(t *testing.T) {
		rdr := &mock.MockHTTPRenderer{Err: errors.New("boom")}
		h := ListMusicTracksHandler(rdr, &mock.MockMusicTrackLister{})

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/music-tracks", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusInternalServerError)
		}
		if !strings.Contains(rec.Body.String(), "Could not list music tracks") {
			t.Errorf("body = %q; want error message", rec.Body.String())
		}
	})

	t.Run("happy path", func(t *testing.T) {
		rdr := &mock.MockHTTPRenderer{Data: []byte(`[{"name":"Calm Horizon"}]`), Etag: `"cafebabe"`}
		h := ListMusicTracksHandler(rdr, &mock.MockMusicTrackLister{})

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/music-tracks", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d (body=%q)", rec.Code, http.StatusOK, rec.Body.String())
		}
		if got := rec.Body.String(); got != `[{"name":"Calm Horizon"}]` {
			t.Errorf("body = %q; want rendered payload", got)
		}
		if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=3600" {
			t.Errorf("Cache-Control = %q; want %q", cc, "public, max-age=3600")
		}
		if !rdr.TracksCalled {
			t.Error("expected the renderer to be called")
		}
	})

	t.Run("if-none-match", func(t *testing.T) {
		rdr := &mock.MockHTTPRenderer{Data: []byte(`[]`), Etag: `"cafebabe"`}
		h := ListMusicTracksHandler(rdr, &mock.MockMusicTrackLister{})

		req := httptest.NewRequest(http.MethodGet, "/music-tracks", nil)
		req.Header.Set("If-None-Match", `"cafebabe"`)
		rec := httptest.NewRecorder()
		h(rec, req)

		if rec.Code != http.StatusNotModified {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusNotModified)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("expected empty body, got %q", rec.Body.String())
		}
	})
}
