package blob

import (
	"errors"
	"fmt"
)

// Common blob store error types
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
	ErrInvalidData    = errors.New("invalid object data")
)

// BlobError represents a blob operation error with additional context
type BlobError struct {
	Op  string // Operation that failed (e.g., "Put", "Get")
	Key string // Object key involved in the operation
	Err error
}

func (e *BlobError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("blob %s operation failed for key '%s': %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("blob %s operation failed: %v", e.Op, e.Err)
}

func (e *BlobError) Unwrap() error {
	return e.Err
}

// NewBlobError creates a new BlobError
func NewBlobError(op, key string, err error) *BlobError {
	return &BlobError{Op: op, Key: key, Err: err}
}

// IsNotFound returns true if the error indicates a missing object
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}
