package port

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

// TaskDispatcher enqueues asynchronous pipeline jobs. Callers get back the
// opaque id of the queued task run so they can follow its progress.
type TaskDispatcher interface {
	EnqueueInpaintImage(ctx context.Context, id uuid.UUID) (string, error)
	EnqueueGenerateClip(ctx context.Context, id uuid.UUID) (string, error)
	EnqueueReapStale(ctx context.Context) (string, error)
}
