package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/propshot-ms-go/internal/api_context"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
)

type GetImageResponse struct {
	Image   model.ImageEdit   `json:"image"`
	Lineage []model.ImageEdit `json:"lineage"`
}

func GetImageHandler(ledger port.Ledger) http.HandlerFunc {
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
			WriteError(w, http.StatusInternalServerError, "could not get image details", err)
			return
		}

		resp := GetImageResponse{Lineage: lineage}
		for _, e := range lineage {
			if e.ID == id {
				resp.Image = e
				break
			}
		}

		RespondJSON(w, http.StatusOK, resp)
		logger.Infof(r.Context(), "✅  Successfully returned details for image #%s", id)
	}
}
