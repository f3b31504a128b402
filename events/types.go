// Package events carries the out-of-band notifications a tick produces:
// narration cues, sound cues, scoreboard records and lifecycle changes.
package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

// Zero is reserved for the FSM tick pseudo-event
const (
	// EventSessionStarted marks the first entry into Playing
	// Trigger: Controller.Start | Payload: *SessionPayload
	EventSessionStarted EventType = iota + 1

	// EventNarration requests a spoken line
	// Trigger: state machine actions | Consumer: narration handler
	// Payload: *NarrationPayload
	EventNarration

	// EventWallBounce reports a side or top wall reflection
	// Consumer: audio | Payload: nil
	EventWallBounce

	// EventPaddleHit reports a scored paddle contact
	// Consumer: audio | Payload: *TallyPayload
	EventPaddleHit

	// EventLevelUp reports a difficulty increase
	// Consumer: audio | Payload: *TallyPayload
	EventLevelUp

	// EventMiss reports the ball leaving past the paddle
	// Consumer: audio, state machine (Playing -> GameOver when no lives are left)
	// Payload: *TallyPayload
	EventMiss

	// EventGameOver carries the final tally of a finished game
	// Consumer: scoreboard, audio | Payload: *GameOverPayload
	EventGameOver

	// EventRestartRequest is the Restart button or key
	// Consumer: state machine (GameOver -> Playing) | Payload: nil
	EventRestartRequest

	// EventQuitRequest is the Quit button or key
	// Consumer: state machine (GameOver -> Terminated) | Payload: nil
	EventQuitRequest

	// EventWindowClosed is Esc, Ctrl-C or a closed terminal
	// Consumer: state machine (any -> Terminated) | Payload: nil
	EventWindowClosed

	// EventSessionRestarted marks a fresh game after restart
	// Consumer: scoreboard | Payload: *SessionPayload
	EventSessionRestarted
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64
	Timestamp time.Time
}

// String returns the registered name of the event type
func (et EventType) String() string {
	if name := GetEventName(et); name != "" {
		return name
	}
	return "Unknown"
}
