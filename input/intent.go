// Package input turns terminal key and mouse events into per-tick commands.
package input

import "github.com/lixenwraith/gesture-pong/engine"

// IntentType discriminates what a key asks for
type IntentType uint8

const (
	IntentNone       IntentType = iota // Unbound key
	IntentQuit                         // Esc, Ctrl+C: close the window
	IntentRestart                      // r: Restart control
	IntentLeave                        // q: Quit control
	IntentToggleMute                   // m: audio cues on or off
)

// command maps an intent to the engine command it issues
func (i IntentType) command() engine.Command {
	switch i {
	case IntentQuit:
		return engine.CommandQuit
	case IntentRestart:
		return engine.CommandRestartClick
	case IntentLeave:
		return engine.CommandQuitClick
	default:
		return engine.CommandNone
	}
}

// priority orders commands when several arrive in one tick; higher wins
func priority(c engine.Command) int {
	switch c {
	case engine.CommandQuit:
		return 3
	case engine.CommandQuitClick:
		return 2
	case engine.CommandRestartClick:
		return 1
	default:
		return 0
	}
}
