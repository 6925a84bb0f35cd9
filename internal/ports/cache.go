package ports

import (
	"time"

	"github.com/dwaring87/rtm-api/internal/domain"
)

// TaskCache keeps the last successfully fetched task set per user so the CLI
// and TUI can render without a round-trip. It is a snapshot of parsed tasks,
// replaced wholesale after each fetch, never a response-body cache.
type TaskCache interface {
	// Replace swaps the user's cached snapshot for tasks.
	Replace(userID int64, tasks []domain.Task) error

	// Tasks returns the cached snapshot, oldest first. An empty slice means
	// no snapshot exists yet.
	Tasks(userID int64) ([]domain.Task, error)

	// LastSync returns when the user's snapshot was last replaced, or the
	// zero time if never.
	LastSync(userID int64) (time.Time, error)

	Close() error
}
