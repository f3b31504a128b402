// Package vision provides hand-position sources for the tick loop: a WebSocket
// feed fed by a landmark sidecar, the terminal pointer, and scripted samples.
package vision

import (
	"errors"
	"sync"
	"time"
)

// ErrInputUnavailable means the camera side is gone; the session cannot continue
var ErrInputUnavailable = errors.New("input unavailable")

// slot is the mutex-guarded latest sample handed from a producer goroutine to the tick
type slot struct {
	mu       sync.Mutex
	x        float64
	detected bool
	at       time.Time
	failure  error
}

func (s *slot) store(x float64, detected bool, at time.Time) {
	s.mu.Lock()
	s.x, s.detected, s.at = x, detected, at
	s.mu.Unlock()
}

func (s *slot) fail(err error) {
	s.mu.Lock()
	if s.failure == nil {
		s.failure = err
	}
	s.mu.Unlock()
}

// read returns the sample if it is younger than maxAge
func (s *slot) read(now time.Time, maxAge time.Duration) (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return 0, false, s.failure
	}
	if !s.detected || now.Sub(s.at) > maxAge {
		return 0, false, nil
	}
	return s.x, true, nil
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
