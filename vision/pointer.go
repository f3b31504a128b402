package vision

import (
	"context"
	"math"
	"sync/atomic"
	"time"
)

// PointerSource steers with the terminal pointer instead of a camera
// The input layer reports the pointer column; anything outside the playfield reads as no hand
type PointerSource struct {
	latest  slot
	columns atomic.Int64
}

// NewPointerSource maps columns [0, columns) of the playfield onto [0,1]
func NewPointerSource(columns int) *PointerSource {
	p := &PointerSource{}
	p.SetColumns(columns)
	return p
}

// SetColumns updates the playfield width in columns, for example after a terminal resize
func (p *PointerSource) SetColumns(columns int) {
	p.columns.Store(int64(max(columns, 1)))
}

// Move records the pointer column; negative or out-of-range columns clear the hand
func (p *PointerSource) Move(column int) {
	columns := int(p.columns.Load())
	if column < 0 || column >= columns {
		p.latest.store(0, false, time.Time{})
		return
	}
	x := 0.5
	if columns > 1 {
		x = float64(column) / float64(columns-1)
	}
	p.latest.store(x, true, time.Time{})
}

// Leave clears the hand, for example when the pointer exits the terminal
func (p *PointerSource) Leave() {
	p.latest.store(0, false, time.Time{})
}

// PollHandPosition implements engine.HandSource
// Pointer samples never go stale
func (p *PointerSource) PollHandPosition() (float64, bool, error) {
	return p.latest.read(time.Time{}, math.MaxInt64)
}

// Name implements service.Service
func (p *PointerSource) Name() string { return "vision" }

// Dependencies implements service.Service
func (p *PointerSource) Dependencies() []string { return nil }

// Start implements service.Service
func (p *PointerSource) Start(context.Context) error { return nil }

// Stop implements service.Service
func (p *PointerSource) Stop() error { return nil }
