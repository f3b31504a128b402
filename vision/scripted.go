package vision

import (
	"context"
	"fmt"
	"sync"
)

// Reading is one scripted poll result
type Reading struct {
	X        float64
	Detected bool
}

// Seen is a detected reading at x
func Seen(x float64) Reading { return Reading{X: x, Detected: true} }

// Unseen is a reading without a hand
func Unseen() Reading { return Reading{} }

// ScriptedSource replays a fixed sequence of readings, one per poll
// After the script runs out the last reading repeats; an empty script reads as no hand
type ScriptedSource struct {
	mu     sync.Mutex
	script []Reading
	failAt int // 1-based poll number that fails; 0 never fails
	polls  int
}

// NewScriptedSource replays readings in order
func NewScriptedSource(readings ...Reading) *ScriptedSource {
	return &ScriptedSource{script: readings}
}

// FailAt makes the n-th poll, and every poll after it, report ErrInputUnavailable
func (s *ScriptedSource) FailAt(n int) *ScriptedSource {
	s.mu.Lock()
	s.failAt = n
	s.mu.Unlock()
	return s
}

// Polls reports how many times the source was polled
func (s *ScriptedSource) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

// PollHandPosition implements engine.HandSource
func (s *ScriptedSource) PollHandPosition() (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	if s.failAt > 0 && s.polls >= s.failAt {
		return 0, false, fmt.Errorf("%w: scripted failure at poll %d", ErrInputUnavailable, s.polls)
	}
	if len(s.script) == 0 {
		return 0, false, nil
	}
	i := s.polls - 1
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	r := s.script[i]
	if !r.Detected {
		return 0, false, nil
	}
	return clampUnit(r.X), true, nil
}

// Name implements service.Service
func (s *ScriptedSource) Name() string { return "vision" }

// Dependencies implements service.Service
func (s *ScriptedSource) Dependencies() []string { return nil }

// Start implements service.Service
func (s *ScriptedSource) Start(context.Context) error { return nil }

// Stop implements service.Service
func (s *ScriptedSource) Stop() error { return nil }
