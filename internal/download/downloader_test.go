package download

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDownload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	d := NewHTTPDownloader()
	f, err := d.Download(context.Background(), srv.URL+"/out.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = f.Body.Close() }()

	if f.ContentType != "image/jpeg" {
		t.Errorf("unexpected content type %q", f.ContentType)
	}
	data, err := io.ReadAll(f.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("unexpected body %q", data)
	}
}

func TestDownload_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := NewHTTPDownloader()
	_, err := d.Download(context.Background(), srv.URL+"/missing.jpg")
	var dlErr *ErrDownload
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}
	if dlErr.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status code %d", dlErr.StatusCode)
	}
}

func TestDownload_ConnectionRefused(t *testing.T) {
	d := NewHTTPDownloader()
	_, err := d.Download(context.Background(), "http://127.0.0.1:1/nope.jpg")
	var dlErr *ErrDownload
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}
}
