package engine

import (
	"github.com/lixenwraith/gesture-pong/constants"
	"github.com/lixenwraith/gesture-pong/physics"
)

// Phase is the session phase owned by the state machine
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
	PhaseTerminated
)

// State names in the session graph
const (
	StatePlaying    = "Playing"
	StateGameOver   = "GameOver"
	StateTerminated = "Terminated"
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return StatePlaying
	case PhaseGameOver:
		return StateGameOver
	case PhaseTerminated:
		return StateTerminated
	default:
		return "Unknown"
	}
}

// Command is the per-tick player intent
type Command int

const (
	CommandNone Command = iota
	CommandQuit         // window closed, Esc, Ctrl-C
	CommandRestartClick // meaningful in GameOver only
	CommandQuitClick    // meaningful in GameOver only
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandQuit:
		return "Quit"
	case CommandRestartClick:
		return "RestartClick"
	case CommandQuitClick:
		return "QuitClick"
	default:
		return "Unknown"
	}
}

// Control is a clickable element of the game-over screen
type Control int

const (
	ControlNone Control = iota
	ControlRestart
	ControlQuit
)

// Command returns the command a click on the control issues
func (c Control) Command() Command {
	switch c {
	case ControlRestart:
		return CommandRestartClick
	case ControlQuit:
		return CommandQuitClick
	default:
		return CommandNone
	}
}

// Size is a logical extent
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned logical rectangle
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point lies inside; right and bottom edges are outside
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Button is a labeled control region in logical window coordinates
type Button struct {
	Control Control
	Label   string
	Rect    Rect
}

// GameOverButtons lays out Restart and Quit centered horizontally below the window middle
func GameOverButtons(window Size) []Button {
	cx, cy := window.Width/2, window.Height/2
	at := func(offsetY int) Rect {
		return Rect{
			X:      cx - constants.ButtonWidth/2,
			Y:      cy + offsetY - constants.ButtonHeight/2,
			Width:  constants.ButtonWidth,
			Height: constants.ButtonHeight,
		}
	}
	return []Button{
		{Control: ControlRestart, Label: constants.LabelRestart, Rect: at(constants.RestartButtonOffsetY)},
		{Control: ControlQuit, Label: constants.LabelQuit, Rect: at(constants.QuitButtonOffsetY)},
	}
}

// HandReading is the last polled hand position, for the preview panel
type HandReading struct {
	Detected bool
	X        float64 // normalized, valid when Detected
}

// Frame is everything the presenter needs for one tick
type Frame struct {
	Tick    int64
	Window  Size
	Field   physics.Playfield
	Phase   Phase
	Paddle  physics.Paddle
	Ball    physics.Ball
	Tally   physics.Tally
	Best    int
	Hand    HandReading
	Buttons []Button // GameOver only
}

// HandSource reports the normalized hand x each tick
// ok == false means no hand; a non-nil error is fatal for the session
type HandSource interface {
	PollHandPosition() (x float64, ok bool, err error)
}

// Presenter draws a frame
type Presenter interface {
	Present(Frame)
}

// InputSource yields at most one command per tick
type InputSource interface {
	Poll() Command
}
