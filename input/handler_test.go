package input

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gesture-pong/engine"
	"github.com/lixenwraith/gesture-pong/physics"
	"github.com/lixenwraith/gesture-pong/render"
)

type fakePointer struct {
	columns int
	column  int
	inside  bool
}

func (p *fakePointer) SetColumns(n int) { p.columns = n }
func (p *fakePointer) Move(c int)       { p.column, p.inside = c, true }
func (p *fakePointer) Leave()           { p.inside = false }

type fakeMuter struct{ muted bool }

func (m *fakeMuter) ToggleMute() bool {
	m.muted = !m.muted
	return m.muted
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)
	return screen
}

// gameOverPresenter draws a game-over frame so controls resolve like in play
func gameOverPresenter(t *testing.T, screen tcell.Screen, phase engine.Phase) *render.Presenter {
	t.Helper()
	window := engine.Size{Width: 1920, Height: 1080}
	field := physics.Playfield{Width: 1440, Height: 1080}
	st := physics.NewState(field, physics.DefaultGeometry(), physics.DefaultRules())
	f := engine.Frame{Window: window, Field: field, Phase: phase, Paddle: st.Paddle, Ball: st.Ball, Tally: st.Tally}
	if phase == engine.PhaseGameOver {
		f.Buttons = engine.GameOverButtons(window)
	}
	p := render.NewPresenter(screen)
	p.Present(f)
	return p
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }
func runeKey(r rune) *tcell.EventKey  { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }
func mouse(x, y int, b tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, b, tcell.ModNone)
}

func TestKeysMapToCommands(t *testing.T) {
	screen := newScreen(t)
	h := NewHandler(screen, gameOverPresenter(t, screen, engine.PhaseGameOver), nil, nil)

	tests := []struct {
		name string
		ev   tcell.Event
		want engine.Command
	}{
		{"escape", key(tcell.KeyEscape), engine.CommandQuit},
		{"ctrl-c", key(tcell.KeyCtrlC), engine.CommandQuit},
		{"r", runeKey('r'), engine.CommandRestartClick},
		{"q", runeKey('q'), engine.CommandQuitClick},
		{"unbound", runeKey('x'), engine.CommandNone},
		{"enter", key(tcell.KeyEnter), engine.CommandNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.Push(tt.ev)
			if got := h.Poll(); got != tt.want {
				t.Errorf("Poll = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPollWithoutEvents(t *testing.T) {
	screen := newScreen(t)
	h := NewHandler(screen, gameOverPresenter(t, screen, engine.PhasePlaying), nil, nil)
	if got := h.Poll(); got != engine.CommandNone {
		t.Errorf("Poll = %v, want None", got)
	}
}

func TestStrongestCommandWins(t *testing.T) {
	screen := newScreen(t)
	h := NewHandler(screen, gameOverPresenter(t, screen, engine.PhaseGameOver), nil, nil)

	h.Push(runeKey('r'))
	h.Push(key(tcell.KeyEscape))
	h.Push(runeKey('q'))
	if got := h.Poll(); got != engine.CommandQuit {
		t.Errorf("Poll = %v, want Quit", got)
	}
	if got := h.Poll(); got != engine.CommandNone {
		t.Errorf("second Poll = %v, want None", got)
	}
}

func TestClickOnControls(t *testing.T) {
	screen := newScreen(t)
	h := NewHandler(screen, gameOverPresenter(t, screen, engine.PhaseGameOver), nil, nil)

	h.Push(mouse(40, 14, tcell.Button1))
	h.Push(mouse(40, 14, tcell.ButtonNone))
	if got := h.Poll(); got != engine.CommandRestartClick {
		t.Fatalf("click on Restart = %v", got)
	}

	h.Push(mouse(40, 15, tcell.Button1))
	if got := h.Poll(); got != engine.CommandQuitClick {
		t.Fatalf("click on Quit = %v", got)
	}

	// Holding the button while dragging is not a new press
	h.Push(mouse(40, 14, tcell.Button1))
	if got := h.Poll(); got != engine.CommandNone {
		t.Errorf("drag = %v, want None", got)
	}

	h.Push(mouse(2, 2, tcell.ButtonNone))
	h.Push(mouse(2, 2, tcell.Button1))
	if got := h.Poll(); got != engine.CommandNone {
		t.Errorf("click on empty space = %v", got)
	}
}

func TestClickWhilePlayingIsNothing(t *testing.T) {
	screen := newScreen(t)
	h := NewHandler(screen, gameOverPresenter(t, screen, engine.PhasePlaying), nil, nil)
	h.Push(mouse(40, 14, tcell.Button1))
	if got := h.Poll(); got != engine.CommandNone {
		t.Errorf("Poll = %v, want None", got)
	}
}

func TestMouseMotionFeedsPointer(t *testing.T) {
	screen := newScreen(t)
	ptr := &fakePointer{}
	h := NewHandler(screen, gameOverPresenter(t, screen, engine.PhasePlaying), ptr, nil)

	h.Push(mouse(30, 10, tcell.ButtonNone))
	h.Poll()
	if !ptr.inside || ptr.column != 30 || ptr.columns != 60 {
		t.Errorf("pointer = %+v, want column 30 of 60", ptr)
	}

	h.Push(mouse(70, 10, tcell.ButtonNone))
	h.Poll()
	if ptr.inside {
		t.Error("pointer over the preview panel still steers")
	}
}

// trackingControls records pointer bookkeeping on top of a real presenter
type trackingControls struct {
	*render.Presenter
	cleared int
}

func (c *trackingControls) ClearPointer() {
	c.cleared++
	c.Presenter.ClearPointer()
}

func TestPointerLeavingClearsHover(t *testing.T) {
	screen := newScreen(t)
	controls := &trackingControls{Presenter: gameOverPresenter(t, screen, engine.PhaseGameOver)}
	ptr := &fakePointer{}
	h := NewHandler(screen, controls, ptr, nil)

	h.Push(mouse(30, 14, tcell.ButtonNone))
	h.Poll()
	if controls.cleared != 0 || !ptr.inside {
		t.Fatalf("cleared = %d, pointer = %+v", controls.cleared, ptr)
	}

	h.Push(tcell.NewEventFocus(false))
	if got := h.Poll(); got != engine.CommandNone {
		t.Errorf("focus loss = %v, want None", got)
	}
	if controls.cleared != 1 || ptr.inside {
		t.Errorf("after focus loss: cleared = %d, pointer = %+v", controls.cleared, ptr)
	}

	h.Push(mouse(30, 14, tcell.ButtonNone))
	h.Push(mouse(-1, -1, tcell.ButtonNone))
	h.Poll()
	if controls.cleared != 2 || ptr.inside {
		t.Errorf("after leaving the screen: cleared = %d, pointer = %+v", controls.cleared, ptr)
	}

	h.Push(tcell.NewEventFocus(true))
	h.Poll()
	if controls.cleared != 2 {
		t.Errorf("focus gain cleared the pointer")
	}
}

func TestMuteKey(t *testing.T) {
	screen := newScreen(t)
	m := &fakeMuter{}
	h := NewHandler(screen, gameOverPresenter(t, screen, engine.PhasePlaying), nil, m)

	h.Push(runeKey('m'))
	if got := h.Poll(); got != engine.CommandNone {
		t.Errorf("mute key issued %v", got)
	}
	if !m.muted {
		t.Error("mute not toggled")
	}

	// Without a muter the key is ignored
	h = NewHandler(screen, gameOverPresenter(t, screen, engine.PhasePlaying), nil, nil)
	h.Push(runeKey('m'))
	h.Poll()
}

func TestPushNeverBlocks(t *testing.T) {
	screen := newScreen(t)
	h := NewHandler(screen, gameOverPresenter(t, screen, engine.PhasePlaying), nil, nil)
	for i := 0; i < cap(h.events)+5; i++ {
		h.Push(runeKey('x'))
	}
	if h.Dropped() != 5 {
		t.Errorf("dropped = %d, want 5", h.Dropped())
	}
}

func TestPollerDeliversScreenEvents(t *testing.T) {
	screen := newScreen(t)
	h := NewHandler(screen, gameOverPresenter(t, screen, engine.PhasePlaying), nil, nil)
	if err := h.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Poll() == engine.CommandQuit {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("injected Escape never reached Poll")
}
