package storage

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	// ErrWrite wraps any upload failure. Terminal for the current job
	// attempt; retry is the job runner's call, never the adapter's.
	ErrWrite = errors.New("storage: write failed")
	ErrInternal = errors.New("storage: internal error")
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return ErrObjectNotFound
	case "NoSuchBucket":
		return ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
