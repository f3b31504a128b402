package render

import "github.com/gdamore/tcell/v2"

// Cell is one terminal cell; Rune 0 renders as a blank
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Buffer is a cell compositor flushed to the screen once per frame
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to the background using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Style: StyleBackground}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Bounds returns the buffer dimensions
func (b *Buffer) Bounds() (int, int) { return b.width, b.height }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes one cell; out-of-bounds writes are dropped
func (b *Buffer) Set(x, y int, r rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// Get returns the cell at x, y or a zero cell outside the buffer
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Fill paints the half-open cell rectangle [x0,x1)x[y0,y1)
func (b *Buffer) Fill(x0, y0, x1, y1 int, r rune, style tcell.Style) {
	for y := max(y0, 0); y < min(y1, b.height); y++ {
		for x := max(x0, 0); x < min(x1, b.width); x++ {
			b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
		}
	}
}

// Text writes s left to right starting at x, clipped to the buffer
func (b *Buffer) Text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		b.Set(x, y, r, style)
		x++
	}
}

// TextCentered writes s centered on column cx
func (b *Buffer) TextCentered(cx, y int, s string, style tcell.Style) {
	b.Text(cx-len([]rune(s))/2, y, s, style)
}

// Flush copies the buffer to the screen and shows it
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			screen.SetContent(x, y, r, nil, c.Style)
		}
	}
	screen.Show()
}
