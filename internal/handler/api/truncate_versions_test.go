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
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

func TestTruncateVersionsHandler(t *testing.T) {
	projectID := uuid.NewUUID()
	rootID := uuid.NewUUID()
	childID := uuid.NewUUID()
	strayID := uuid.NewUUID()
	lineage := []model.ImageEdit{
		{ID: rootID, ProjectID: projectID, LineageID: rootID, Version: 1},
		{ID: childID, ProjectID: projectID, LineageID: rootID, Version: 2},
		{ID: uuid.NewUUID(), ProjectID: projectID, LineageID: rootID, Version: 3},
	}

	tests := []struct {
		name           string
		ctxID          *uuid.UUID
		listOut        []model.ImageEdit
		listErr        error
		truncateErr    error
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
			name:           "image not found",
			ctxID:          &childID,
			listErr:        port.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "Image not found",
		},
		{
			name:           "id not part of its lineage",
			ctxID:          &strayID,
			listOut:        lineage,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "Image not found",
		},
		{
			name:           "truncate error",
			ctxID:          &childID,
			listOut:        lineage,
			truncateErr:    errors.New("boom"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "could not truncate the lineage",
		},
		{
			name:       "happy path",
			ctxID:      &childID,
			listOut:    lineage,
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := &mock.MockLedger{ListOut: tc.listOut, ListErr: tc.listErr, TruncateOut: 1, TruncateErr: tc.truncateErr}
			recompute := &mock.MockRecomputer{}
			h := TruncateVersionsHandler(ledger, recompute)

			req := httptest.NewRequest(http.MethodDelete, "/images/"+childID.String()+"/versions", nil)
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

			if tc.wantStatus == http.StatusOK {
				var out TruncateVersionsResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
					t.Fatalf("JSON decode = %v (body=%q)", err, rec.Body.String())
				}
				if out.Deleted != 1 {
					t.Errorf("deleted = %d; want 1", out.Deleted)
				}
				if ledger.TruncatedAfter != 2 {
					t.Errorf("truncated after version %d; want 2", ledger.TruncatedAfter)
				}
				if !recompute.ProjectCalled || recompute.ProjectIDs[0] != projectID {
					t.Errorf("expected project #%s to be recomputed, got %v", projectID, recompute.ProjectIDs)
				}
			}
		})
	}
}

func TestTruncateVersionsHandler_RecomputeErrorNotFatal(t *testing.T) {
	rootID := uuid.NewUUID()
	ledger := &mock.MockLedger{
		ListOut:     []model.ImageEdit{{ID: rootID, ProjectID: uuid.NewUUID(), LineageID: rootID, Version: 1}},
		TruncateOut: 2,
	}
	recompute := &mock.MockRecomputer{ProjectErr: errors.New("boom")}
	h := TruncateVersionsHandler(ledger, recompute)

	req := httptest.NewRequest(http.MethodDelete, "/images/"+rootID.String()+"/versions", nil)
	req = req.WithContext(context.WithValue(req.Context(), api_context.IDKey, rootID))
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d (body=%q)", rec.Code, http.StatusOK, rec.Body.String())
	}
}
