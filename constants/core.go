package constants

import "time"

// Game Loop Timing
const (
	// TickRate is the default simulation rate in ticks per second
	TickRate = 60

	// TickInterval is the fixed simulation step (~60 Hz)
	TickInterval = time.Second / TickRate
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 64

	// EventBufferMask is the bitmask for fast modulo operations (64 - 1)
	EventBufferMask = EventQueueSize - 1

	// InputEventBuffer is the channel capacity between the terminal poller and the tick loop
	InputEventBuffer = 256
)

// Narration Limits
const (
	// NarrationQueueSize bounds pending narration lines, extra lines are dropped
	NarrationQueueSize = 16

	// NarrationLineTimeout caps a single blocking speech call
	NarrationLineTimeout = 10 * time.Second
)
