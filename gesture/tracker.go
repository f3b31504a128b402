// Package gesture maps hand positions reported by the vision collaborator to
// horizontal paddle displacement.
package gesture

import (
	"fmt"
	"math"
)

// DropoutPolicy selects what the tracker does with its memory while no hand is seen
type DropoutPolicy int

const (
	// DropoutHold keeps the last seen position across a dropout
	// Reacquiring the hand far from where it was lost yields one large delta
	DropoutHold DropoutPolicy = iota

	// DropoutReset forgets the last position, reacquisition starts from a fresh first sample
	DropoutReset
)

func (p DropoutPolicy) String() string {
	switch p {
	case DropoutHold:
		return "hold"
	case DropoutReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ParseDropoutPolicy resolves a config value
func ParseDropoutPolicy(s string) (DropoutPolicy, error) {
	switch s {
	case "", "hold":
		return DropoutHold, nil
	case "reset":
		return DropoutReset, nil
	default:
		return DropoutHold, fmt.Errorf("unknown dropout policy %q", s)
	}
}

// Sample is one tick's reading from the vision collaborator
type Sample struct {
	X        float64 // normalized horizontal position in [0,1]
	Detected bool
}

// Present builds a sample for a detected hand
func Present(x float64) Sample {
	return Sample{X: x, Detected: true}
}

// Absent is the sample for a tick without a detected hand
var Absent = Sample{}

// Tracker turns consecutive normalized hand positions into paddle deltas
// Single-goroutine use only
type Tracker struct {
	width  int
	policy DropoutPolicy

	previous float64
	primed   bool
}

// NewTracker creates a tracker scaling motion to a playfield of the given width
func NewTracker(playfieldWidth int, policy DropoutPolicy) *Tracker {
	return &Tracker{
		width:  playfieldWidth,
		policy: policy,
	}
}

// ComputeDelta returns the paddle displacement for this tick
// First sample after construction or reset primes the memory and returns 0
func (t *Tracker) ComputeDelta(s Sample) int {
	if !s.Detected {
		if t.policy == DropoutReset {
			t.primed = false
		}
		return 0
	}

	current := clampUnit(s.X)
	if !t.primed {
		t.previous = current
		t.primed = true
		return 0
	}

	delta := int(math.Round((current - t.previous) * float64(t.width)))
	t.previous = current
	return delta
}

// Reset forgets the previous position
func (t *Tracker) Reset() {
	t.previous = 0
	t.primed = false
}

// Previous returns the remembered position and whether one is held
func (t *Tracker) Previous() (float64, bool) {
	return t.previous, t.primed
}

// Policy returns the configured dropout policy
func (t *Tracker) Policy() DropoutPolicy {
	return t.policy
}

func clampUnit(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
