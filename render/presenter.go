package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gesture-pong/engine"
)

// Presenter draws engine frames on a tcell screen and resolves pointer positions to controls
// All methods run on the tick goroutine
type Presenter struct {
	screen       tcell.Screen
	orchestrator *Orchestrator
	layout       Layout
	last         engine.Frame
	pointerX     int
	pointerY     int
	hasPointer   bool
}

// NewPresenter builds the standard layer stack for screen
func NewPresenter(screen tcell.Screen) *Presenter {
	cols, rows := screen.Size()
	p := &Presenter{
		screen:       screen,
		orchestrator: NewOrchestrator(screen, cols, rows),
	}
	p.layout.Cols, p.layout.Rows = cols, rows

	p.orchestrator.Register(panelRenderer{}, PriorityField)
	p.orchestrator.Register(paddleRenderer{}, PriorityEntities)
	p.orchestrator.Register(ballRenderer{}, PriorityEntities)
	p.orchestrator.Register(previewRenderer{}, PriorityPanel)
	p.orchestrator.Register(hudRenderer{}, PriorityUI)
	p.orchestrator.Register(gameOverRenderer{}, PriorityOverlay)
	return p
}

// Present implements engine.Presenter
func (p *Presenter) Present(f engine.Frame) {
	p.last = f
	cols, rows := p.screen.Size()
	if cols != p.layout.Cols || rows != p.layout.Rows {
		p.orchestrator.Resize(cols, rows)
	}
	p.layout = NewLayout(cols, rows, f.Window, f.Field)

	p.orchestrator.RenderFrame(Context{
		Frame:  f,
		Layout: p.layout,
		Hover:  p.hover(),
	})
}

// Layout is the mapping used for the last frame
func (p *Presenter) Layout() Layout { return p.layout }

// SetPointer records the pointer cell for hover highlighting
func (p *Presenter) SetPointer(cx, cy int) {
	p.pointerX, p.pointerY, p.hasPointer = cx, cy, true
}

// ClearPointer forgets the pointer, for example after it leaves the terminal
func (p *Presenter) ClearPointer() { p.hasPointer = false }

func (p *Presenter) hover() engine.Control {
	if !p.hasPointer {
		return engine.ControlNone
	}
	return p.ControlAt(p.pointerX, p.pointerY)
}

// ControlAt returns the control drawn at cell (cx, cy) in the last frame
// Controls exist only on the game-over screen
func (p *Presenter) ControlAt(cx, cy int) engine.Control {
	if p.last.Phase != engine.PhaseGameOver {
		return engine.ControlNone
	}
	for _, b := range p.last.Buttons {
		x0, y0, x1, y1 := p.layout.CellRect(b.Rect)
		if cx >= x0 && cx < x1 && cy >= y0 && cy < y1 {
			return b.Control
		}
	}
	return engine.ControlNone
}
