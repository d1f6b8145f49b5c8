package port

import "errors"

var (
	// ErrNotFound means the referenced entity does not exist. Fatal for a
	// job, never retried.
	ErrNotFound = errors.New("entity not found")
	// ErrVersionConflict means a concurrent edit claimed the same version
	// number of a lineage. The ledger retries the insert with a fresh
	// version.
	ErrVersionConflict = errors.New("lineage version already taken")
)
