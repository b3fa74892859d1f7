package dedupe

import (
	"context"
	"sync"
	"time"
)

// Memory is the process-local Cache used by default. Entries expire after
// the window; when the map exceeds maxSize the oldest entries are swept
// first. Correctness holds only within one process, which is the accepted
// trade-off for single-instance deployments.
type Memory struct {
	mu      sync.Mutex
	entries map[string]time.Time
	window  time.Duration
	maxSize int
}

// NewMemory creates an in-memory cache with the given expiry window and
// size cap. A maxSize of zero or less disables the cap.
func NewMemory(window time.Duration, maxSize int) *Memory {
	return &Memory{
		entries: make(map[string]time.Time),
		window:  window,
		maxSize: maxSize,
	}
}

// Get returns the recorded timestamp for key if it is still within the window.
func (m *Memory) Get(_ context.Context, key string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts, ok := m.entries[key]
	if !ok {
		return time.Time{}, false, nil
	}
	if time.Since(ts) >= m.window {
		delete(m.entries, key)
		return time.Time{}, false, nil
	}
	return ts, true, nil
}

// Set records now for key unconditionally.
func (m *Memory) Set(_ context.Context, key string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictLocked(now)
	m.entries[key] = now
	return nil
}

// SetIfAbsent records now for key only if no live entry exists.
func (m *Memory) SetIfAbsent(_ context.Context, key string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ts, ok := m.entries[key]; ok && now.Sub(ts) < m.window {
		return false, nil
	}
	m.evictLocked(now)
	m.entries[key] = now
	return true, nil
}

// Delete removes the entry for key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Sweep drops expired entries.
func (m *Memory) Sweep(_ context.Context, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, ts := range m.entries {
		if now.Sub(ts) >= m.window {
			delete(m.entries, key)
		}
	}
	return nil
}

// Len reports the number of entries, live or not. Used by tests and the
// periodic sweep log line.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// evictLocked drops expired entries, then enforces the size cap by
// removing oldest-first until one slot is free. Not strict LRU: reads do
// not refresh entries.
func (m *Memory) evictLocked(now time.Time) {
	for key, ts := range m.entries {
		if now.Sub(ts) >= m.window {
			delete(m.entries, key)
		}
	}
	if m.maxSize <= 0 {
		return
	}
	for len(m.entries) >= m.maxSize {
		oldestKey := ""
		var oldest time.Time
		for key, ts := range m.entries {
			if oldestKey == "" || ts.Before(oldest) {
				oldestKey, oldest = key, ts
			}
		}
		delete(m.entries, oldestKey)
	}
}
