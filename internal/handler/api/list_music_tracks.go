package api

import (
	"net/http"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/renderer"
)

func ListMusicTracksHandler(rdr renderer.HTTPRenderer, svc port.MusicTrackLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, etag, err := rdr.RenderListMusicTracks(r.Context(), svc)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not list music tracks", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Info(r.Context(), "✅  Returning cached music tracks")
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Info(r.Context(), "✅  Successfully returned the music track catalogue")
	}
}
