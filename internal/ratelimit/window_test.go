package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	limiter := NewSlidingWindow(2, time.Second)
	now := time.Now()

	if ok, _ := limiter.Allow(now); !ok {
		t.Fatal("first call should be allowed")
	}
	if ok, _ := limiter.Allow(now.Add(100 * time.Millisecond)); !ok {
		t.Fatal("second call should be allowed")
	}
}

func TestRejectsWhenFull(t *testing.T) {
	limiter := NewSlidingWindow(2, time.Second)
	now := time.Now()

	limiter.Allow(now)
	limiter.Allow(now.Add(100 * time.Millisecond))

	ok, retryAfter := limiter.Allow(now.Add(200 * time.Millisecond))
	if ok {
		t.Fatal("third call within the window should be rejected")
	}
	if retryAfter < 0 {
		t.Errorf("retryAfter must be non-negative, got %d", retryAfter)
	}
	if retryAfter > 1 {
		t.Errorf("retryAfter cannot exceed the window, got %d", retryAfter)
	}
}

func TestWindowSlides(t *testing.T) {
	limiter := NewSlidingWindow(2, time.Second)
	now := time.Now()

	limiter.Allow(now)
	limiter.Allow(now)

	// After the window passes both entries have expired.
	ok, _ := limiter.Allow(now.Add(1100 * time.Millisecond))
	if !ok {
		t.Fatal("call after the window should be allowed")
	}
}

func TestRetryAfterTracksOldestEntry(t *testing.T) {
	limiter := NewSlidingWindow(1, 10*time.Second)
	now := time.Now()

	limiter.Allow(now)
	_, retryAfter := limiter.Allow(now.Add(2 * time.Second))
	if retryAfter != 8 {
		t.Errorf("expected retryAfter 8, got %d", retryAfter)
	}
}

func TestZeroConfigFallsBackToDefaults(t *testing.T) {
	limiter := NewSlidingWindow(0, 0)
	if ok, _ := limiter.Allow(time.Now()); !ok {
		t.Fatal("limiter with corrected defaults should allow one call")
	}
}
