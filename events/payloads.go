package events

import (
	"fmt"
	"time"
)

// NarrationCue names the narrated moment so consumers can pick a sound or voice
type NarrationCue int

const (
	CueStart NarrationCue = iota
	CueRestarting
	CueQuitting
	CueFinalScore
	CueGameOver
)

var cueNames = [...]string{"start", "restarting", "quitting", "final_score", "game_over"}

func (c NarrationCue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// UnmarshalText accepts the cue names used in the FSM graph
func (c *NarrationCue) UnmarshalText(text []byte) error {
	for i, name := range cueNames {
		if name == string(text) {
			*c = NarrationCue(i)
			return nil
		}
	}
	return fmt.Errorf("unknown narration cue %q", text)
}

// NarrationPayload is one line for the narrator
type NarrationPayload struct {
	Cue  NarrationCue
	Text string
}

// TallyPayload is the score state right after a physics event
type TallyPayload struct {
	Score int
	Lives int
	Level int
}

// GameOverPayload describes a finished game
type GameOverPayload struct {
	Score   int
	Level   int
	Ticks   int64
	Started time.Time
	Ended   time.Time
}

// SessionPayload marks the start of a game
type SessionPayload struct {
	Started time.Time
}
