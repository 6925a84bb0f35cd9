// Package throttle spaces outbound API calls per user so the remote
// service's rate limit is never tripped. Policy: a single next-allowed
// timestamp per user with a fixed minimum interval between slots. Burst
// windows and cooldowns are a possible future refinement, not implemented.
package throttle

import (
	"context"
	"sync"
	"time"

	"github.com/dwaring87/rtm-api/internal/ports"
)

// DefaultInterval matches the remote service's enforced average of roughly
// one request per second per key.
const DefaultInterval = time.Second

// Scheduler hands out per-user time slots. State is in-memory only and never
// shared across processes.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	next     map[int64]time.Time
	now      func() time.Time
}

var _ ports.Scheduler = (*Scheduler)(nil)

// New creates a scheduler enforcing the given minimum spacing between calls
// for the same user. Non-positive intervals fall back to DefaultInterval.
func New(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		next:     make(map[int64]time.Time),
		now:      time.Now,
	}
}

// reserve claims the user's next slot and returns how long the caller must
// wait for it. Slots stack: N reservations made back to back get delays of
// 0, interval, 2*interval, ... regardless of when each caller actually wakes
// up, which keeps per-user dispatch FIFO and evenly spaced.
func (s *Scheduler) reserve(userID int64) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	slot, ok := s.next[userID]
	if !ok || slot.Before(now) {
		slot = now
	}
	s.next[userID] = slot.Add(s.interval)
	return slot.Sub(now)
}

// Wait blocks until the caller's slot arrives. If ctx is done first, Wait
// returns its error, but the reservation stands either way; a scheduled slot
// is never handed back.
func (s *Scheduler) Wait(ctx context.Context, userID int64) error {
	delay := s.reserve(userID)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Schedule invokes fn exactly once when the user's next slot arrives. There
// is no cancellation: once scheduled, the call fires, and any failure of the
// work itself is the caller's to surface.
func (s *Scheduler) Schedule(userID int64, fn func()) {
	delay := s.reserve(userID)
	time.AfterFunc(delay, fn)
}
