package render

import "github.com/lixenwraith/gesture-pong/engine"

// Context is the per-frame input shared by all renderers
type Context struct {
	Frame  engine.Frame
	Layout Layout
	Hover  engine.Control // control under the pointer, GameOver only
}

// GameOver reports whether the frame shows the game-over screen
func (c Context) GameOver() bool { return c.Frame.Phase == engine.PhaseGameOver }
