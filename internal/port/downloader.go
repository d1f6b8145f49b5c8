package port

import (
	"context"
	"io"
)

// DownloadedFile is a fetched remote media payload. Callers own Body and must
// close it.
type DownloadedFile struct {
	Body        io.ReadCloser
	ContentType string
	SizeBytes   int64
}

// Downloader fetches a provider result over HTTP.
type Downloader interface {
	Download(ctx context.Context, url string) (DownloadedFile, error)
}
