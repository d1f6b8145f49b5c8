package download

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fhuszti/propshot-ms-go/internal/port"
)

// ErrDownload wraps any failure to fetch a provider result. Callers treat it
// as a retryable job failure.
type ErrDownload struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ErrDownload) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("download %q: unexpected status %d", e.URL, e.StatusCode)
}

func (e *ErrDownload) Unwrap() error { return e.Err }

// HTTPDownloader fetches result media from provider CDNs.
type HTTPDownloader struct {
	httpc *http.Client
}

// compile-time check: *HTTPDownloader must satisfy port.Downloader
var _ port.Downloader = (*HTTPDownloader)(nil)

func NewHTTPDownloader() *HTTPDownloader {
	return &HTTPDownloader{httpc: &http.Client{Timeout: 2 * time.Minute}}
}

func (d *HTTPDownloader) Download(ctx context.Context, url string) (port.DownloadedFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return port.DownloadedFile{}, &ErrDownload{URL: url, Err: err}
	}

	resp, err := d.httpc.Do(req)
	if err != nil {
		return port.DownloadedFile{}, &ErrDownload{URL: url, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return port.DownloadedFile{}, &ErrDownload{URL: url, StatusCode: resp.StatusCode}
	}

	return port.DownloadedFile{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		SizeBytes:   resp.ContentLength,
	}, nil
}
