package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeInpaintImage = "image:inpaint"
	TypeGenerateClip = "video:generate_clip"
	TypeReapStale    = "pipeline:reap_stale"
)

// Jobs get one retry on top of the first attempt. A second failure is
// persisted on the record, not hidden in the queue.
const maxRetry = 1

// jobTimeout caps a single attempt. The provider itself gives up after 3
// minutes of polling.
const jobTimeout = 5 * time.Minute

type InpaintImagePayload struct {
	ImageID string `json:"image_id"`
}

type GenerateClipPayload struct {
	ClipID string `json:"clip_id"`
}

// NewInpaintImageTask creates an Asynq task for inpainting an image edit by ID.
func NewInpaintImageTask(imageID string) (*asynq.Task, error) {
	data, err := json.Marshal(InpaintImagePayload{ImageID: imageID})
	if err != nil {
		return nil, fmt.Errorf("could not marshal inpaint-image payload: %w", err)
	}
	return asynq.NewTask(TypeInpaintImage, data, asynq.MaxRetry(maxRetry), asynq.Timeout(jobTimeout)), nil
}

// ParseInpaintImagePayload parses the task payload to InpaintImagePayload.
func ParseInpaintImagePayload(t *asynq.Task) (InpaintImagePayload, error) {
	var p InpaintImagePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return InpaintImagePayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// NewGenerateClipTask creates an Asynq task for generating a video clip by ID.
func NewGenerateClipTask(clipID string) (*asynq.Task, error) {
	data, err := json.Marshal(GenerateClipPayload{ClipID: clipID})
	if err != nil {
		return nil, fmt.Errorf("could not marshal generate-clip payload: %w", err)
	}
	return asynq.NewTask(TypeGenerateClip, data, asynq.MaxRetry(maxRetry), asynq.Timeout(jobTimeout)), nil
}

// ParseGenerateClipPayload parses the task payload to GenerateClipPayload.
func ParseGenerateClipPayload(t *asynq.Task) (GenerateClipPayload, error) {
	var p GenerateClipPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return GenerateClipPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// NewReapStaleTask creates an Asynq task that sweeps records stuck in
// processing. It carries no payload.
func NewReapStaleTask() *asynq.Task {
	return asynq.NewTask(TypeReapStale, nil, asynq.MaxRetry(0))
}

// RetryDelay doubles from two seconds per retry, capped at thirty seconds.
func RetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	if n < 1 {
		n = 1
	}
	d := 2 * time.Second << uint(n-1)
	if d > 30*time.Second {
		return 30 * time.Second
	}
	return d
}
