package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/fhuszti/propshot-ms-go/internal/port"
)

// noopRSC implements io.ReadSeekCloser with no-op Close.
type noopRSC struct{ io.ReadSeeker }

func (noopRSC) Close() error { return nil }

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	GetOut      io.ReadSeeker
	ExistsOut   bool

	// captured inputs
	Bucket      string
	ObjectKey   string
	ContentType string
	SavedBytes  []byte

	// errors
	InitBucketErr error
	StatErr       error
	RemoveErr     error
	GetErr        error
	SaveErr       error
	FileExistsErr error

	// call flags
	InitBucketCalled bool
	StatCalled       bool
	RemoveCalled     bool
	GetCalled        bool
	SaveCalled       bool
	FileExistsCalled bool
}

var _ port.Storage = (*Storage)(nil)

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, contentType string) error {
	m.SaveCalled = true
	m.Bucket = bucket
	m.ObjectKey = fileKey
	m.ContentType = contentType
	if reader != nil {
		data, _ := io.ReadAll(reader)
		m.SavedBytes = data
	}
	return m.SaveErr
}

func (m *Storage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.GetOut != nil {
		return noopRSC{m.GetOut}, nil
	}
	return noopRSC{bytes.NewReader([]byte("dummy"))}, nil
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	return m.RemoveErr
}

func (m *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Storage) PublicURL(bucket, fileKey string) string {
	return "http://minio.local/" + bucket + "/" + fileKey
}
