package database

import (
	"errors"
	"fmt"

	"github.com/sidquark/minikv/internal/persistence"
	"github.com/sidquark/minikv/internal/storage"
)

// Common database errors
var (
	ErrKeyNotFound     = storage.ErrNotFound
	ErrInvalidKey      = storage.ErrInvalidKey
	ErrInvalidArgument = storage.ErrInvalidArgument
	ErrIO              = persistence.ErrIO
	ErrDatabaseClosed  = errors.New("database is closed")
	ErrNoDataFile      = errors.New("no data file configured")
)

// DatabaseError wraps database-specific errors with context
type DatabaseError struct {
	Operation string
	Key       string
	Err       error
}

// Error implements the error interface
func (e *DatabaseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s operation failed for key '%s': %v", e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error
func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation, key string, err error) *DatabaseError {
	return &DatabaseError{
		Operation: operation,
		Key:       key,
		Err:       err,
	}
}
