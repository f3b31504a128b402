package engine

import (
	"sync"
	"time"
)

// Clock is the time source for session timestamps
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current time with monotonic reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a manually advanced clock for tests
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockClock creates a mock clock starting at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now returns the mocked time
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
