package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindow bounds calls to the downstream webhook with a single
// global bucket: an ordered list of recent call timestamps, pruned on
// every check. Process-local: under horizontal scale-out each instance
// enforces its own budget.
type SlidingWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	calls  []time.Time
}

// NewSlidingWindow creates a limiter allowing limit calls per window.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &SlidingWindow{
		limit:  limit,
		window: window,
	}
}

// Allow records the call and returns true if it fits in the window.
// When the window is full it returns false and the seconds until the
// oldest recorded call expires, rounded up, never negative.
func (s *SlidingWindow) Allow(now time.Time) (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.window)
	kept := s.calls[:0]
	for _, ts := range s.calls {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	s.calls = kept

	if len(s.calls) >= s.limit {
		retryAfter := s.calls[0].Add(s.window).Sub(now)
		seconds := int((retryAfter + time.Second - 1) / time.Second)
		if seconds < 0 {
			seconds = 0
		}
		return false, seconds
	}

	s.calls = append(s.calls, now)
	// Cap the slice to the most recent limit entries so the bucket can
	// never grow past its budget.
	if len(s.calls) > s.limit {
		s.calls = s.calls[len(s.calls)-s.limit:]
	}
	return true, 0
}
