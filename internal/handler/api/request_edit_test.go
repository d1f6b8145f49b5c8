package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/propshot-ms-go/internal/api_context"
	"github.com/fhuszti/propshot-ms-go/internal/mock"
	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/usecase/inpaint"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

func TestRequestEditHandler(t *testing.T) {
	validID := uuid.NewUUID()
	newID := uuid.NewUUID()

	tests := []struct {
		name           string
		ctxID          *uuid.UUID
		body           string
		svcOut         port.RequestEditOutput
		svcErr         error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:           "missing id",
			ctxID:          nil,
			body:           `{"prompt":"remove the couch","mode":"remove"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "ID is required",
		},
		{
			name:           "invalid payload",
			ctxID:          &validID,
			body:           `{not json`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid request payload",
		},
		{
			name:           "validation failure",
			ctxID:          &validID,
			body:           `{"mode":"remove"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "prompt",
		},
		{
			name:           "unknown mode rejected by validation",
			ctxID:          &validID,
			body:           `{"prompt":"remove the couch","mode":"teleport"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "mode",
		},
		{
			name:           "image not found",
			ctxID:          &validID,
			body:           `{"prompt":"remove the couch","mode":"remove"}`,
			svcErr:         port.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "Image not found",
		},
		{
			name:           "mask required",
			ctxID:          &validID,
			body:           `{"prompt":"remove the couch","mode":"remove"}`,
			svcErr:         inpaint.ErrMaskRequired,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: inpaint.ErrMaskRequired.Error(),
		},
		{
			name:           "service error",
			ctxID:          &validID,
			body:           `{"prompt":"remove the couch","mode":"remove"}`,
			svcErr:         errors.New("boom"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "could not request the edit",
		},
		{
			name:       "happy path",
			ctxID:      &validID,
			body:       `{"prompt":"add a plant","mode":"add","placement_rect":{"x":10,"y":20,"width":100,"height":80}}`,
			svcOut:     port.RequestEditOutput{RunID: "run-1", NewImageID: newID},
			wantStatus: http.StatusAccepted,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mock.MockEditRequester{Out: tc.svcOut, Err: tc.svcErr}
			h := RequestEditHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/images/"+validID.String()+"/edits", strings.NewReader(tc.body))
			if tc.ctxID != nil {
				req = req.WithContext(context.WithValue(req.Context(), api_context.IDKey, *tc.ctxID))
			}
			rec := httptest.NewRecorder()

			h(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body=%q)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantBodySubstr != "" && !strings.Contains(rec.Body.String(), tc.wantBodySubstr) {
				t.Errorf("body = %q; want to contain %q", rec.Body.String(), tc.wantBodySubstr)
			}

			if tc.wantStatus == http.StatusAccepted {
				var out port.RequestEditOutput
				if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
					t.Fatalf("JSON decode = %v (body=%q)", err, rec.Body.String())
				}
				if out.RunID != tc.svcOut.RunID {
					t.Errorf("run_id = %q; want %q", out.RunID, tc.svcOut.RunID)
				}
				if out.NewImageID != tc.svcOut.NewImageID {
					t.Errorf("new_image_id = %s; want %s", out.NewImageID, tc.svcOut.NewImageID)
				}
				if mockSvc.In.ImageID != validID {
					t.Errorf("service got ID = %s; want %s", mockSvc.In.ImageID, validID)
				}
				if mockSvc.In.Mode != model.EditModeAdd {
					t.Errorf("service got mode = %q; want %q", mockSvc.In.Mode, model.EditModeAdd)
				}
				if mockSvc.In.PlacementRect == nil || mockSvc.In.PlacementRect.Width != 100 {
					t.Errorf("service got placement rect = %+v; want width 100", mockSvc.In.PlacementRect)
				}
			}
		})
	}
}
