package ports

import (
	"errors"

	"github.com/dwaring87/rtm-api/internal/domain"
)

// ErrRefNotFound is returned by ReferenceStore.Lookup when the user has no
// table or the index is absent. Callers are expected to refresh from the
// remote service and retry the lookup once before treating it as a user error.
var ErrRefNotFound = errors.New("reference not found")

// ReferenceStore assigns small stable per-user integers to remote identifier
// triples and resolves them back. Implementations persist assignments across
// process restarts via Save; mutations are in-memory until then.
//
// This is the only surface other layers may use; nothing else touches the
// backing file.
type ReferenceStore interface {
	// Resolve returns the existing index for ref if one is assigned, or
	// mints the smallest free positive integer for it. It never fails.
	Resolve(userID int64, ref domain.Ref) int

	// Lookup returns the ref stored under index, or ErrRefNotFound.
	Lookup(userID int64, index int) (domain.Ref, error)

	// Refs returns a copy of the user's full index table.
	Refs(userID int64) map[int]domain.Ref

	// Save writes the whole table to disk, overwriting the backing file.
	// Call it after a batch of Resolve calls, not per mutation.
	Save() error

	// Clear drops the user's entire table and persists immediately.
	Clear(userID int64) error
}
