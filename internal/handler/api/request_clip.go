package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/propshot-ms-go/internal/api_context"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
)

func RequestClipHandler(svc port.ClipRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.RequestClip(r.Context(), id)
		if err != nil {
			if errors.Is(err, port.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Clip not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not request the clip generation", err)
			return
		}

		RespondJSON(w, http.StatusAccepted, out)
		logger.Infof(r.Context(), "✅  Queued generation of clip #%s", id)
	}
}
