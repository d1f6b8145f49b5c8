package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/propshot-ms-go/internal/api_context"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/renderer"
)

func GetProjectHandler(rdr renderer.HTTPRenderer, svc port.ProjectGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		raw, etag, err := rdr.RenderGetProject(r.Context(), svc, id)
		if err != nil {
			if errors.Is(err, port.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Project not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get project details", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=120")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Returning cached project #%s", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned details for project #%s", id)
	}
}
