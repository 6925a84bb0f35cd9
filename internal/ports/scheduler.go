package ports

import "context"

// Scheduler spaces outbound requests per user so the remote service's rate
// limit is never tripped. Calls for one user fire in FIFO order, each at
// least the configured interval after the previous one's slot; different
// users never delay each other.
type Scheduler interface {
	// Wait blocks until the caller's slot arrives, or until ctx is done.
	// The slot is reserved either way; there is no cancellation of the
	// reservation itself.
	Wait(ctx context.Context, userID int64) error

	// Schedule invokes fn exactly once after the user's next slot arrives.
	Schedule(userID int64, fn func())
}
