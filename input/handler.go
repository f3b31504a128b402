package input

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gesture-pong/constants"
	"github.com/lixenwraith/gesture-pong/engine"
	"github.com/lixenwraith/gesture-pong/render"
)

// ControlResolver resolves pointer cells against what was last drawn
type ControlResolver interface {
	ControlAt(cx, cy int) engine.Control
	SetPointer(cx, cy int)
	ClearPointer()
	Layout() render.Layout
}

// PointerSink receives the pointer column when the pointer steers the paddle
type PointerSink interface {
	SetColumns(columns int)
	Move(column int)
	Leave()
}

// Muter toggles audio cues
type Muter interface {
	ToggleMute() bool
}

// Handler collects terminal events from a poller goroutine and yields one command per tick
type Handler struct {
	screen   tcell.Screen
	keys     *KeyTable
	controls ControlResolver
	pointer  PointerSink // nil unless the pointer steers
	muter    Muter       // nil when audio is off
	events   chan tcell.Event

	button1 bool // button-1 state of the previous mouse event, for press edges
	started atomic.Bool
	dropped atomic.Int64
}

// NewHandler creates a handler; pointer and muter may be nil
func NewHandler(screen tcell.Screen, controls ControlResolver, pointer PointerSink, muter Muter) *Handler {
	return &Handler{
		screen:   screen,
		keys:     DefaultKeyTable(),
		controls: controls,
		pointer:  pointer,
		muter:    muter,
		events:   make(chan tcell.Event, constants.InputEventBuffer),
	}
}

// Name implements service.Service
func (h *Handler) Name() string { return "input" }

// Dependencies implements service.Service
func (h *Handler) Dependencies() []string { return nil }

// Start implements service.Service, launching the event poller
// The poller ends when the screen is finalized and PollEvent returns nil
func (h *Handler) Start(ctx context.Context) error {
	if !h.started.CompareAndSwap(false, true) {
		return nil
	}
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			if !h.Push(ev) {
				log.Printf("input: event buffer full, dropped %T", ev)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
	return nil
}

// Stop implements service.Service; the poller exits with the screen
func (h *Handler) Stop() error { return nil }

// Push hands an event to the tick without blocking
func (h *Handler) Push(ev tcell.Event) bool {
	select {
	case h.events <- ev:
		return true
	default:
		h.dropped.Add(1)
		return false
	}
}

// Poll implements engine.InputSource
// It drains every pending event; when several commands arrive in one tick the strongest wins
func (h *Handler) Poll() engine.Command {
	cmd := engine.CommandNone
	for {
		select {
		case ev := <-h.events:
			if c := h.handle(ev); priority(c) > priority(cmd) {
				cmd = c
			}
		default:
			return cmd
		}
	}
}

func (h *Handler) handle(ev tcell.Event) engine.Command {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		intent := h.keys.Lookup(ev)
		if intent == IntentToggleMute {
			if h.muter != nil {
				h.muter.ToggleMute()
			}
			return engine.CommandNone
		}
		return intent.command()

	case *tcell.EventMouse:
		return h.handleMouse(ev)

	case *tcell.EventFocus:
		if !ev.Focused {
			h.leave()
		}
	}
	return engine.CommandNone
}

// leave forgets the pointer for hover and steering
func (h *Handler) leave() {
	h.controls.ClearPointer()
	if h.pointer != nil {
		h.pointer.Leave()
	}
}

func (h *Handler) handleMouse(ev *tcell.EventMouse) engine.Command {
	x, y := ev.Position()
	layout := h.controls.Layout()
	if x < 0 || y < 0 || x >= layout.Cols || y >= layout.Rows {
		h.leave()
		h.button1 = false
		return engine.CommandNone
	}
	h.controls.SetPointer(x, y)

	if h.pointer != nil {
		h.pointer.SetColumns(layout.FieldColumns())
		if layout.InField(x, y) {
			h.pointer.Move(x)
		} else {
			h.pointer.Leave()
		}
	}

	down := ev.Buttons()&tcell.Button1 != 0
	pressed := down && !h.button1
	h.button1 = down
	if !pressed {
		return engine.CommandNone
	}
	return h.controls.ControlAt(x, y).Command()
}

// Dropped counts events lost to a full buffer
func (h *Handler) Dropped() int64 { return h.dropped.Load() }
