package task

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueInpaintImage(ctx context.Context, id uuid.UUID) (string, error) {
	return "", nil
}

func (d *NoopDispatcher) EnqueueGenerateClip(ctx context.Context, id uuid.UUID) (string, error) {
	return "", nil
}

func (d *NoopDispatcher) EnqueueReapStale(ctx context.Context) (string, error) {
	return "", nil
}
