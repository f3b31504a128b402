package render

import "github.com/gdamore/tcell/v2"

type rendererEntry struct {
	renderer Renderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the render pipeline
type Orchestrator struct {
	screen    tcell.Screen
	buffer    *Buffer
	renderers []rendererEntry
	regCount  int
}

// NewOrchestrator creates an orchestrator drawing to screen at the given size
func NewOrchestrator(screen tcell.Screen, width, height int) *Orchestrator {
	return &Orchestrator{
		screen:    screen,
		buffer:    NewBuffer(width, height),
		renderers: make([]rendererEntry, 0, 8),
	}
}

// Register adds a renderer at the specified priority, keeping the list sorted by insertion
func (o *Orchestrator) Register(r Renderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Resize updates buffer dimensions and syncs the screen
func (o *Orchestrator) Resize(width, height int) {
	o.buffer.Resize(width, height)
	o.screen.Sync()
}

// Buffer exposes the compositor, for tests
func (o *Orchestrator) Buffer() *Buffer { return o.buffer }

// RenderFrame clears the buffer, runs every visible renderer in order and flushes
func (o *Orchestrator) RenderFrame(ctx Context) {
	o.buffer.Clear()
	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible(ctx) {
			continue
		}
		entry.renderer.Render(ctx, o.buffer)
	}
	o.buffer.Flush(o.screen)
}
