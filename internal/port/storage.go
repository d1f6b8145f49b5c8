package port

import (
	"context"
	"io"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage defines object-store operations for result media. Object keys are
// deterministic, so saving the same key twice overwrites.
type Storage interface {
	InitBucket(bucket string) error
	SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, contentType string) error
	GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error)
	StatFile(ctx context.Context, bucket, fileKey string) (FileInfo, error)
	RemoveFile(ctx context.Context, bucket, fileKey string) error
	FileExists(ctx context.Context, bucket, fileKey string) (bool, error)
	// PublicURL returns the durable, publicly resolvable URL of a stored key.
	PublicURL(bucket, fileKey string) string
}
