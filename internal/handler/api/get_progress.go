package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
)

func GetProgressHandler(reporter port.ProgressReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "taskID")
		if taskID == "" {
			WriteError(w, http.StatusBadRequest, "Task ID is required", nil)
			return
		}

		prog, err := reporter.Get(r.Context(), taskID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not read task progress", err)
			return
		}
		if prog == nil {
			WriteError(w, http.StatusNotFound, "Task not found", nil)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		RespondJSON(w, http.StatusOK, prog)
		logger.Infof(r.Context(), "✅  Successfully returned progress for task #%s", taskID)
	}
}
