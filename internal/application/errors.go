package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoSuchReference  = errors.New("no such reference")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReferenceError means a local index still resolved to nothing after one
// silent refresh from the remote service. At that point the number is a
// genuine user error, not a stale cache.
type ReferenceError struct {
	Index int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("no task or list found for #%d", e.Index)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrNoSuchReference
}
