package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/propshot-ms-go/internal/api_context"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/usecase/inpaint"
	"github.com/fhuszti/propshot-ms-go/internal/validation"
)

type RequestEditRequest struct {
	Prompt               string     `json:"prompt" validate:"required"`
	Mode                 string     `json:"mode" validate:"required,edit_mode"`
	MaskDataURL          string     `json:"mask_data_url"`
	PlacementRect        *port.Rect `json:"placement_rect"`
	ReplaceNewerVersions bool       `json:"replace_newer_versions"`
}

func RequestEditHandler(svc port.EditRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var req RequestEditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Errorf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		out, err := svc.RequestEdit(r.Context(), port.RequestEditInput{
			ImageID:              id,
			Prompt:               req.Prompt,
			Mode:                 model.EditMode(req.Mode),
			MaskDataURL:          req.MaskDataURL,
			PlacementRect:        req.PlacementRect,
			ReplaceNewerVersions: req.ReplaceNewerVersions,
		})
		if err != nil {
			switch {
			case errors.Is(err, port.ErrNotFound):
				WriteError(w, http.StatusNotFound, "Image not found", nil)
			case errors.Is(err, inpaint.ErrPromptRequired),
				errors.Is(err, inpaint.ErrInvalidMode),
				errors.Is(err, inpaint.ErrMaskRequired):
				WriteError(w, http.StatusBadRequest, err.Error(), nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not request the edit", err)
			}
			return
		}

		RespondJSON(w, http.StatusAccepted, out)
		logger.Infof(r.Context(), "✅  Queued edit #%s of image #%s", out.NewImageID, id)
	}
}
