package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	createTaskEndpoint = "/jobs/createTask"
	getTaskEndpoint    = "/jobs/getTask"

	pollInterval    = 2 * time.Second
	maxPollAttempts = 90 // ~3 minutes at 2s per attempt
)

const (
	taskStatusPending    = "pending"
	taskStatusProcessing = "processing"
	taskStatusCompleted  = "completed"
	taskStatusFailed     = "failed"
)

type taskData struct {
	TaskID string          `json:"task_id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type taskEnvelope struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Data    *taskData `json:"data,omitempty"`
}

// api is the transport shared by the image and video clients: a createTask /
// getTask pair wrapped in a `{code, message, data}` envelope, polled at a
// fixed interval with a bounded attempt budget.
type api struct {
	baseURL string
	apiKey  string
	httpc   *http.Client

	pollInterval    time.Duration
	maxPollAttempts int
}

func newAPI(baseURL, apiKey string) api {
	return api{
		baseURL:         baseURL,
		apiKey:          apiKey,
		httpc:           &http.Client{Timeout: 30 * time.Second},
		pollInterval:    pollInterval,
		maxPollAttempts: maxPollAttempts,
	}
}

func (a *api) createTask(ctx context.Context, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal createTask payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+createTaskEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("createTask request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env taskEnvelope
		// Best effort: surface the provider's own message when it sent one.
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return "", &RequestError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	var env taskEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("decode createTask response: %w", err)
	}
	// 0 and 200 both signal acceptance.
	if env.Code != 0 && env.Code != 200 {
		return "", &RequestError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if env.Data == nil || env.Data.TaskID == "" {
		return "", &RequestError{StatusCode: resp.StatusCode, Message: "no task_id in response"}
	}

	return env.Data.TaskID, nil
}

// waitForTask polls getTask until the task resolves or the attempt budget is
// spent. A pending/processing status consumes one attempt.
func (a *api) waitForTask(ctx context.Context, taskID string) (*taskData, error) {
	for attempt := 0; attempt < a.maxPollAttempts; attempt++ {
		data, err := a.getTask(ctx, taskID)
		if err != nil {
			return nil, err
		}

		switch data.Status {
		case taskStatusCompleted:
			return data, nil
		case taskStatusFailed:
			reason := data.Error
			if reason == "" {
				reason = "unknown error"
			}
			return nil, &TaskFailedError{Reason: reason}
		case taskStatusPending, taskStatusProcessing:
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.pollInterval):
			}
		default:
			return nil, &UnknownStatusError{Status: data.Status}
		}
	}

	return nil, ErrTimeout
}

func (a *api) getTask(ctx context.Context, taskID string) (*taskData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+getTaskEndpoint+"?task_id="+taskID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getTask request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{StatusCode: resp.StatusCode}
	}

	var env taskEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode getTask response: %w", err)
	}
	if env.Data == nil {
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: "no data in getTask response"}
	}

	return env.Data, nil
}
