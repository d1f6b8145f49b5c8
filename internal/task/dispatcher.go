package task

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueInpaintImage(ctx context.Context, id uuid.UUID) (string, error) {
	t, err := NewInpaintImageTask(id.String())
	if err != nil {
		return "", err
	}
	info, err := d.client.EnqueueContext(ctx, t)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

func (d *Dispatcher) EnqueueGenerateClip(ctx context.Context, id uuid.UUID) (string, error) {
	t, err := NewGenerateClipTask(id.String())
	if err != nil {
		return "", err
	}
	info, err := d.client.EnqueueContext(ctx, t)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

func (d *Dispatcher) EnqueueReapStale(ctx context.Context) (string, error) {
	info, err := d.client.EnqueueContext(ctx, NewReapStaleTask())
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
