package mock

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/port"
)

// MockProgress records every published progress update, in order.
type MockProgress struct {
	Published []port.Progress
	TaskIDs   []string

	GetOut *port.Progress
	GetErr error
}

func (m *MockProgress) Publish(ctx context.Context, taskID string, p port.Progress) {
	m.TaskIDs = append(m.TaskIDs, taskID)
	m.Published = append(m.Published, p)
}

func (m *MockProgress) Get(ctx context.Context, taskID string) (*port.Progress, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.GetOut, nil
}

// Steps returns just the step names of the published updates.
func (m *MockProgress) Steps() []string {
	steps := make([]string, 0, len(m.Published))
	for _, p := range m.Published {
		steps = append(steps, p.Step)
	}
	return steps
}
