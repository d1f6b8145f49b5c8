package port

import "context"

// Progress steps, in pipeline order.
const (
	StepFetching   = "fetching"
	StepUploading  = "uploading"
	StepGenerating = "generating"
	StepSaving     = "saving"
	StepCompleted  = "completed"
	StepFailed     = "failed"
)

// Progress is the observable state of a running job, published for UI
// progress bars. It is a side channel, not part of the correctness contract.
type Progress struct {
	Step     string `json:"step"`
	Label    string `json:"label"`
	Progress int    `json:"progress"`
}

// ProgressReporter publishes and reads per-task-run progress.
type ProgressReporter interface {
	Publish(ctx context.Context, taskID string, p Progress)
	Get(ctx context.Context, taskID string) (*Progress, error)
}
