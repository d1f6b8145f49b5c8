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
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

func TestRequestClipHandler(t *testing.T) {
	validID := uuid.NewUUID()

	tests := []struct {
		name           string
		ctxID          *uuid.UUID
		svcErr         error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:           "missing id",
			ctxID:          nil,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "ID is required",
		},
		{
			name:           "clip not found",
			ctxID:          &validID,
			svcErr:         port.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "Clip not found",
		},
		{
			name:           "service error",
			ctxID:          &validID,
			svcErr:         errors.New("boom"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "could not request the clip generation",
		},
		{
			name:       "happy path",
			ctxID:      &validID,
			wantStatus: http.StatusAccepted,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mock.MockClipRequester{Out: port.RequestClipOutput{RunID: "run-1"}, Err: tc.svcErr}
			h := RequestClipHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/clips/"+validID.String()+"/generate", nil)
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
				var out port.RequestClipOutput
				if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
					t.Fatalf("JSON decode = %v (body=%q)", err, rec.Body.String())
				}
				if out.RunID != "run-1" {
					t.Errorf("run_id = %q; want %q", out.RunID, "run-1")
				}
				if mockSvc.ClipID != validID {
					t.Errorf("service got ID = %s; want %s", mockSvc.ClipID, validID)
				}
			}
		})
	}
}
