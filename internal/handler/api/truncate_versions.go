package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/propshot-ms-go/internal/api_context"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
)

type TruncateVersionsResponse struct {
	Deleted int64 `json:"deleted"`
}

// TruncateVersionsHandler drops every version newer than the given edit, then
// recomputes the parent project since completed versions may vanish.
func TruncateVersionsHandler(ledger port.Ledger, recompute port.Recomputer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		lineage, err := ledger.ListLineage(r.Context(), id)
		if err != nil {
			if errors.Is(err, port.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Image not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not resolve the image lineage", err)
			return
		}

		version := 0
		for _, e := range lineage {
			if e.ID == id {
				version = e.Version
				break
			}
		}
		if version == 0 {
			WriteError(w, http.StatusNotFound, "Image not found", nil)
			return
		}

		deleted, err := ledger.TruncateAfter(r.Context(), lineage[0].LineageID, version)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not truncate the lineage", err)
			return
		}
		if err := recompute.RecomputeProject(r.Context(), lineage[0].ProjectID); err != nil {
			logger.Warnf(r.Context(), "failed to recompute project #%s: %v", lineage[0].ProjectID, err)
		}

		RespondJSON(w, http.StatusOK, TruncateVersionsResponse{Deleted: deleted})
		logger.Infof(r.Context(), "✅  Dropped %d version(s) newer than image #%s", deleted, id)
	}
}
