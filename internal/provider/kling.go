package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/fhuszti/propshot-ms-go/internal/port"
)

const klingModel = "kling-video/v2.6/pro"

// KlingClient drives image-to-video clip generation through the same
// createTask/getTask envelope as the image provider.
type KlingClient struct {
	api
}

// compile-time check: *KlingClient must satisfy port.VideoGenerator
var _ port.VideoGenerator = (*KlingClient)(nil)

func NewKlingClient(baseURL, apiKey string) *KlingClient {
	return &KlingClient{api: newAPI(baseURL, apiKey)}
}

type klingTaskInput struct {
	Prompt         string `json:"prompt"`
	ImageURL       string `json:"image_url"`
	Duration       string `json:"duration"`
	AspectRatio    string `json:"aspect_ratio"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
}

type klingCreateTaskRequest struct {
	Model    string         `json:"model"`
	TaskType string         `json:"task_type"`
	Input    klingTaskInput `json:"input"`
}

type klingOutput struct {
	Video struct {
		URL string `json:"url"`
	} `json:"video"`
}

func (c *KlingClient) GenerateClip(ctx context.Context, req port.ClipRequest) (port.ClipResult, error) {
	duration := req.DurationSeconds
	if duration <= 0 {
		duration = 5
	}

	taskID, err := c.createTask(ctx, klingCreateTaskRequest{
		Model:    klingModel,
		TaskType: "img2vid",
		Input: klingTaskInput{
			Prompt:         req.MotionPrompt,
			ImageURL:       req.SourceImageURL,
			Duration:       strconv.Itoa(duration),
			AspectRatio:    req.AspectRatio,
			NegativePrompt: req.NegativePrompt,
		},
	})
	if err != nil {
		return port.ClipResult{}, err
	}
	log.Printf("submitted clip task %q to provider, polling...", taskID)

	data, err := c.waitForTask(ctx, taskID)
	if err != nil {
		return port.ClipResult{}, err
	}

	var out klingOutput
	if len(data.Output) > 0 {
		if err := json.Unmarshal(data.Output, &out); err != nil {
			return port.ClipResult{}, fmt.Errorf("decode clip output: %w", err)
		}
	}
	if out.Video.URL == "" {
		return port.ClipResult{}, ErrEmptyResult
	}

	return port.ClipResult{URL: out.Video.URL}, nil
}
