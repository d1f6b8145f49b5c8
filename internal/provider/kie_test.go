package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/port"
)

func newTestKieClient(srv *httptest.Server) *KieClient {
	c := NewKieClient(srv.URL, "test-key")
	c.httpc = srv.Client()
	c.pollInterval = 0 // no real sleeping in tests
	return c
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, env taskEnvelope) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(env); err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
}

func completedImageData(url string) *taskData {
	out, _ := json.Marshal(kieOutput{Images: []kieImage{{URL: url, Width: 1024, Height: 768}}})
	return &taskData{TaskID: "task-1", Status: taskStatusCompleted, Output: out}
}

func TestInpaint_Success(t *testing.T) {
	var createBody kieCreateTaskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case createTaskEndpoint:
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("unexpected auth header %q", got)
			}
			if err := json.NewDecoder(r.Body).Decode(&createBody); err != nil {
				t.Fatalf("decode create body: %v", err)
			}
			writeEnvelope(t, w, taskEnvelope{Code: 200, Data: &taskData{TaskID: "task-1"}})
		case getTaskEndpoint:
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: completedImageData("https://cdn.example.com/out.jpg")})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := newTestKieClient(srv)
	res, err := c.Inpaint(context.Background(), port.InpaintRequest{
		Prompt:    "remove the trash bins",
		SourceURL: "https://cdn.example.com/src.jpg",
		MaskURL:   "https://cdn.example.com/mask.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.URL != "https://cdn.example.com/out.jpg" {
		t.Errorf("unexpected result URL %q", res.URL)
	}
	if createBody.TaskType != "img2img" || createBody.Model != kieModel {
		t.Errorf("unexpected create payload: %+v", createBody)
	}
	if createBody.Input.MaskURL != "https://cdn.example.com/mask.png" {
		t.Errorf("mask URL not forwarded: %+v", createBody.Input)
	}
	if createBody.Input.OutputFormat != "jpeg" {
		t.Errorf("output format should default to jpeg, got %q", createBody.Input.OutputFormat)
	}
}

func TestInpaint_CreateRejectedHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":500,"message":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestKieClient(srv)
	_, err := c.Inpaint(context.Background(), port.InpaintRequest{Prompt: "p", SourceURL: "s"})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected status code %d", reqErr.StatusCode)
	}
}

func TestInpaint_CreateRejectedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, taskEnvelope{Code: 422, Message: "invalid prompt"})
	}))
	defer srv.Close()

	c := newTestKieClient(srv)
	_, err := c.Inpaint(context.Background(), port.InpaintRequest{Prompt: "p", SourceURL: "s"})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Message != "invalid prompt" {
		t.Errorf("provider message not carried: %q", reqErr.Message)
	}
}

func TestInpaint_TaskFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case createTaskEndpoint:
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1"}})
		case getTaskEndpoint:
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1", Status: taskStatusFailed, Error: "content policy violation"}})
		}
	}))
	defer srv.Close()

	c := newTestKieClient(srv)
	_, err := c.Inpaint(context.Background(), port.InpaintRequest{Prompt: "p", SourceURL: "s"})
	var failErr *TaskFailedError
	if !errors.As(err, &failErr) {
		t.Fatalf("expected TaskFailedError, got %v", err)
	}
	if failErr.Reason != "content policy violation" {
		t.Errorf("provider error string not carried verbatim: %q", failErr.Reason)
	}
}

func TestInpaint_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case createTaskEndpoint:
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1"}})
		case getTaskEndpoint:
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1", Status: "paused"}})
		}
	}))
	defer srv.Close()

	c := newTestKieClient(srv)
	_, err := c.Inpaint(context.Background(), port.InpaintRequest{Prompt: "p", SourceURL: "s"})
	var unkErr *UnknownStatusError
	if !errors.As(err, &unkErr) {
		t.Fatalf("expected UnknownStatusError, got %v", err)
	}
	if unkErr.Status != "paused" {
		t.Errorf("unexpected status %q", unkErr.Status)
	}
}

func TestInpaint_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case createTaskEndpoint:
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1"}})
		case getTaskEndpoint:
			out, _ := json.Marshal(kieOutput{})
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1", Status: taskStatusCompleted, Output: out}})
		}
	}))
	defer srv.Close()

	c := newTestKieClient(srv)
	_, err := c.Inpaint(context.Background(), port.InpaintRequest{Prompt: "p", SourceURL: "s"})
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestWaitForTask_TimesOutAfterExactBudget(t *testing.T) {
	var polls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case createTaskEndpoint:
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1"}})
		case getTaskEndpoint:
			polls.Add(1)
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1", Status: taskStatusProcessing}})
		}
	}))
	defer srv.Close()

	c := newTestKieClient(srv)
	_, err := c.Inpaint(context.Background(), port.InpaintRequest{Prompt: "p", SourceURL: "s"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if got := polls.Load(); got != maxPollAttempts {
		t.Errorf("expected exactly %d poll attempts, got %d", maxPollAttempts, got)
	}
}

func TestWaitForTask_PendingThenCompleted(t *testing.T) {
	var polls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case createTaskEndpoint:
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1"}})
		case getTaskEndpoint:
			if polls.Add(1) < 3 {
				writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1", Status: taskStatusPending}})
				return
			}
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: completedImageData("https://cdn.example.com/out.jpg")})
		}
	}))
	defer srv.Close()

	c := newTestKieClient(srv)
	res, err := c.Inpaint(context.Background(), port.InpaintRequest{Prompt: "p", SourceURL: "s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.URL == "" {
		t.Error("expected a result URL")
	}
	if polls.Load() != 3 {
		t.Errorf("expected 3 polls, got %d", polls.Load())
	}
}

func TestWaitForTask_ContextCancelledBetweenPolls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case createTaskEndpoint:
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1"}})
		case getTaskEndpoint:
			writeEnvelope(t, w, taskEnvelope{Code: 0, Data: &taskData{TaskID: "task-1", Status: taskStatusProcessing}})
		}
	}))
	defer srv.Close()

	c := newTestKieClient(srv)
	c.pollInterval = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.Inpaint(ctx, port.InpaintRequest{Prompt: "p", SourceURL: "s"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
