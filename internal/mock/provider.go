package mock

import (
	"context"

	"github.com/fhuszti/propshot-ms-go/internal/port"
)

// MockImageGenerator implements port.ImageGenerator for tests.
type MockImageGenerator struct {
	Out port.InpaintResult
	Err error

	Calls int
	In    port.InpaintRequest
}

func (m *MockImageGenerator) Inpaint(ctx context.Context, req port.InpaintRequest) (port.InpaintResult, error) {
	m.Calls++
	m.In = req
	if m.Err != nil {
		return port.InpaintResult{}, m.Err
	}
	return m.Out, nil
}

// MockVideoGenerator implements port.VideoGenerator for tests.
type MockVideoGenerator struct {
	Out port.ClipResult
	Err error

	Calls int
	In    port.ClipRequest
}

func (m *MockVideoGenerator) GenerateClip(ctx context.Context, req port.ClipRequest) (port.ClipResult, error) {
	m.Calls++
	m.In = req
	if m.Err != nil {
		return port.ClipResult{}, m.Err
	}
	return m.Out, nil
}
