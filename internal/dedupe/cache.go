package dedupe

import (
	"context"
	"time"
)

// Cache records the last time a key was seen. It backs the duplicate
// submission window and the webhook idempotency window, so the request
// path needs only timestamps, not full values.
//
// SetIfAbsent is the reservation primitive: it must atomically check for a
// live entry and write one, so two near-simultaneous requests for the same
// key cannot both reserve the outbound call.
type Cache interface {
	// Get returns the recorded timestamp and whether one is live.
	Get(ctx context.Context, key string) (time.Time, bool, error)

	// Set records now for key unconditionally.
	Set(ctx context.Context, key string, now time.Time) error

	// SetIfAbsent records now for key only if no live entry exists.
	// It reports whether the reservation was won.
	SetIfAbsent(ctx context.Context, key string, now time.Time) (bool, error)

	// Delete removes the entry for key, if any.
	Delete(ctx context.Context, key string) error

	// Sweep drops entries older than the cache window. Implementations
	// with native TTL may treat this as a no-op.
	Sweep(ctx context.Context, now time.Time) error
}
