package mock

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	InpaintCalled bool
	InpaintIDs    []uuid.UUID
	InpaintErr    error

	ClipCalled bool
	ClipIDs    []uuid.UUID
	ClipErr    error

	ReapCalled bool
	ReapErr    error

	// RunIDOut is returned by every enqueue; defaults to "run-1".
	RunIDOut string
}

func (m *MockDispatcher) runID() string {
	if m.RunIDOut == "" {
		return "run-1"
	}
	return m.RunIDOut
}

func (m *MockDispatcher) EnqueueInpaintImage(ctx context.Context, id uuid.UUID) (string, error) {
	m.InpaintCalled = true
	m.InpaintIDs = append(m.InpaintIDs, id)
	if m.InpaintErr != nil {
		return "", m.InpaintErr
	}
	return m.runID(), nil
}

func (m *MockDispatcher) EnqueueGenerateClip(ctx context.Context, id uuid.UUID) (string, error) {
	m.ClipCalled = true
	m.ClipIDs = append(m.ClipIDs, id)
	if m.ClipErr != nil {
		return "", m.ClipErr
	}
	return m.runID(), nil
}

func (m *MockDispatcher) EnqueueReapStale(ctx context.Context) (string, error) {
	m.ReapCalled = true
	if m.ReapErr != nil {
		return "", m.ReapErr
	}
	return m.runID(), nil
}
