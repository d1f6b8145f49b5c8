package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/fhuszti/propshot-ms-go/internal/port"
)

// MockDownloader implements port.Downloader for tests. Bodies keyed by URL
// win over the default Body.
type MockDownloader struct {
	Body        []byte
	ContentType string
	Err         error

	Bodies map[string][]byte

	Calls int
	URLs  []string
}

func (m *MockDownloader) Download(ctx context.Context, url string) (port.DownloadedFile, error) {
	m.Calls++
	m.URLs = append(m.URLs, url)
	if m.Err != nil {
		return port.DownloadedFile{}, m.Err
	}
	body := m.Body
	if b, ok := m.Bodies[url]; ok {
		body = b
	}
	ct := m.ContentType
	if ct == "" {
		ct = "image/jpeg"
	}
	return port.DownloadedFile{
		Body:        io.NopCloser(bytes.NewReader(body)),
		ContentType: ct,
		SizeBytes:   int64(len(body)),
	}, nil
}
