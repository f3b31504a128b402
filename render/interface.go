// Package render draws engine frames onto a tcell screen through a
// priority-ordered pipeline of renderers sharing one cell buffer.
package render

// Renderer draws one layer of the frame
type Renderer interface {
	Render(ctx Context, buf *Buffer)
}

// VisibilityToggle is optionally implemented to skip a layer for a frame
type VisibilityToggle interface {
	IsVisible(ctx Context) bool
}
