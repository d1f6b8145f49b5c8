package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult means the provider reported completion but returned no
	// output media.
	ErrEmptyResult = errors.New("provider: completed task returned no output media")
	// ErrTimeout means the poll budget was exhausted before the task
	// resolved.
	ErrTimeout = errors.New("provider: task timed out after 3 minutes")
)

// RequestError means the provider rejected the submission, either at the
// HTTP level or in its own response envelope.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider: request rejected: %s", e.Message)
	}
	return fmt.Sprintf("provider: request rejected with status %d", e.StatusCode)
}

// TaskFailedError carries the provider's own error string for a failed task.
type TaskFailedError struct {
	Reason string
}

func (e *TaskFailedError) Error() string {
	if e.Reason == "" {
		return "provider: task failed: unknown error"
	}
	return e.Reason
}

// UnknownStatusError means the provider returned a status outside its
// documented set.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("provider: unknown task status %q", e.Status)
}
