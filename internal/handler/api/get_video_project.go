package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/propshot-ms-go/internal/api_context"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
)

func GetVideoProjectHandler(svc port.VideoProjectGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.GetVideoProject(r.Context(), id)
		if err != nil {
			if errors.Is(err, port.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Video project not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get video project details", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully returned details for video project #%s", id)
	}
}
