package progress

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/port"
)

type NoopReporter struct{}

// compile-time check: *NoopReporter must satisfy port.ProgressReporter
var _ port.ProgressReporter = (*NoopReporter)(nil)

func NewNoop() *NoopReporter { return &NoopReporter{} }

func (n *NoopReporter) Publish(ctx context.Context, taskID string, p port.Progress) {}

func (n *NoopReporter) Get(ctx context.Context, taskID string) (*port.Progress, error) {
	return nil, nil
}
