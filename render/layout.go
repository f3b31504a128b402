package render

import (
	"github.com/lixenwraith/gesture-pong/engine"
	"github.com/lixenwraith/gesture-pong/physics"
)

// hudRows is the number of terminal rows above the scaled window area
const hudRows = 1

// Layout maps logical window coordinates onto terminal cells
// Row 0 holds the HUD; the logical window is scaled into the rows below it
type Layout struct {
	Cols, Rows int
	Window     engine.Size
	Field      physics.Playfield
}

// NewLayout builds the mapping for a screen of cols x rows cells
func NewLayout(cols, rows int, window engine.Size, field physics.Playfield) Layout {
	return Layout{Cols: cols, Rows: rows, Window: window, Field: field}
}

func (l Layout) areaRows() int { return max(l.Rows-hudRows, 1) }

// CellX maps a logical x to a column
func (l Layout) CellX(lx int) int {
	if l.Window.Width <= 0 {
		return 0
	}
	return lx * l.Cols / l.Window.Width
}

// CellY maps a logical y to a row
func (l Layout) CellY(ly int) int {
	if l.Window.Height <= 0 {
		return hudRows
	}
	return hudRows + ly*l.areaRows()/l.Window.Height
}

// CellRect maps a logical rectangle to the half-open cell rectangle covering it
// The result is at least one cell in each direction so small shapes stay visible
func (l Layout) CellRect(r engine.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = l.CellX(r.X), l.CellY(r.Y)
	x1, y1 = l.CellX(r.X+r.Width), l.CellY(r.Y+r.Height)
	return x0, y0, max(x1, x0+1), max(y1, y0+1)
}

// FieldColumns is the number of columns the playfield occupies, starting at column 0
func (l Layout) FieldColumns() int {
	return max(l.CellX(l.Field.Width), 1)
}

// InField reports whether a cell lies over the playfield
func (l Layout) InField(cx, cy int) bool {
	return cx >= 0 && cx < l.FieldColumns() && cy >= hudRows && cy < l.Rows
}

// PanelColumns returns the half-open column range of the preview panel, right of the border
func (l Layout) PanelColumns() (x0, x1 int) {
	return l.FieldColumns() + 1, l.Cols
}
