package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/fhuszti/propshot-ms-go/internal/port"
)

const kieModel = "nano-banana-pro"

// KieClient drives image inpainting through the Kie.ai jobs API.
type KieClient struct {
	api
}

// compile-time check: *KieClient must satisfy port.ImageGenerator
var _ port.ImageGenerator = (*KieClient)(nil)

// NewKieClient builds a client with the API key supplied up front. There is
// no lazy global instance; construct once and inject.
func NewKieClient(baseURL, apiKey string) *KieClient {
	return &KieClient{api: newAPI(baseURL, apiKey)}
}

type kieTaskInput struct {
	Prompt       string `json:"prompt"`
	ImageURL     string `json:"image_url,omitempty"`
	MaskURL      string `json:"mask_url,omitempty"`
	AspectRatio  string `json:"aspect_ratio,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
}

type kieCreateTaskRequest struct {
	Model    string       `json:"model"`
	TaskType string       `json:"task_type"`
	Input    kieTaskInput `json:"input"`
}

type kieImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type kieOutput struct {
	Images []kieImage `json:"images"`
}

func (c *KieClient) Inpaint(ctx context.Context, req port.InpaintRequest) (port.InpaintResult, error) {
	format := req.OutputFormat
	if format == "" {
		format = "jpeg"
	}

	taskID, err := c.createTask(ctx, kieCreateTaskRequest{
		Model:    kieModel,
		TaskType: "img2img",
		Input: kieTaskInput{
			Prompt:       req.Prompt,
			ImageURL:     req.SourceURL,
			MaskURL:      req.MaskURL,
			OutputFormat: format,
		},
	})
	if err != nil {
		return port.InpaintResult{}, err
	}
	log.Printf("submitted inpaint task %q to provider, polling...", taskID)

	data, err := c.waitForTask(ctx, taskID)
	if err != nil {
		return port.InpaintResult{}, err
	}

	var out kieOutput
	if len(data.Output) > 0 {
		if err := json.Unmarshal(data.Output, &out); err != nil {
			return port.InpaintResult{}, fmt.Errorf("decode inpaint output: %w", err)
		}
	}
	if len(out.Images) == 0 {
		return port.InpaintResult{}, ErrEmptyResult
	}

	img := out.Images[0]
	return port.InpaintResult{URL: img.URL, Width: img.Width, Height: img.Height}, nil
}
