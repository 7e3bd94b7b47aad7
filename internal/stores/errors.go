package stores

import (
	"errors"
	"fmt"
)

// Common store errors
var (
	// ErrRecordNotFound is returned when no record exists under a key
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidKey is returned when an empty key is provided
	ErrInvalidKey = errors.New("invalid record key")
)

// StoreError wraps a store operation failure with its context
type StoreError struct {
	Op    string // Operation that failed (e.g., "scan", "put")
	Table string // Logical table involved
	Key   string // Record key, if the operation targets one
	Err   error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s on %s failed for key '%s': %v", e.Op, e.Table, e.Key, e.Err)
	}
	return fmt.Sprintf("store %s on %s failed: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError
func NewStoreError(op, table, key string, err error) *StoreError {
	return &StoreError{Op: op, Table: table, Key: key, Err: err}
}

// IsNotFound returns true if the error indicates a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
