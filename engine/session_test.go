package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/gesture-pong/asset"
	"github.com/lixenwraith/gesture-pong/engine/fsm"
	"github.com/lixenwraith/gesture-pong/events"
	"github.com/lixenwraith/gesture-pong/physics"
)

func newTestSession() *Session {
	return NewSession(physics.Playfield{Width: 1440, Height: 1080}, physics.DefaultGeometry(), physics.DefaultRules())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Session)
		ok     bool
	}{
		{"fresh", func(s *Session) {}, true},
		{"paddle left of field", func(s *Session) { s.Paddle.X = -1 }, false},
		{"paddle right of field", func(s *Session) { s.Paddle.X = s.MaxPaddleX() + 1 }, false},
		{"stalled ball", func(s *Session) { s.Ball.DY = 0 }, false},
		{"negative score", func(s *Session) { s.Tally.Score = -1 }, false},
		{"too many lives", func(s *Session) { s.Tally.Lives = 4 }, false},
		{"level zero", func(s *Session) { s.Tally.Level = 0 }, false},
		{"playing without lives", func(s *Session) { s.Tally.Lives = 0 }, false},
		{"game over without lives", func(s *Session) { s.Tally.Lives = 0; s.Phase = PhaseGameOver }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			tt.mutate(s)
			err := s.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvariant) {
				t.Errorf("Validate = %v, want ErrInvariant", err)
			}
		})
	}
}

func TestStateMachineRequiresSessionStates(t *testing.T) {
	graph := []byte("initial = \"Playing\"\n[states.Playing]\n[states.GameOver]\n")
	_, err := NewStateMachine(newTestSession(), events.NewQueue(), SystemClock{}, graph)
	if !errors.Is(err, fsm.ErrUnknownState) {
		t.Errorf("NewStateMachine = %v, want ErrUnknownState", err)
	}
}

func TestStateMachineMissGuard(t *testing.T) {
	s := newTestSession()
	q := events.NewQueue()
	sm, err := NewStateMachine(s, q, NewMockClock(time.Unix(0, 0)), nil)
	if err == nil {
		t.Fatal("nil graph should not load")
	}

	sm, err = NewStateMachine(s, q, NewMockClock(time.Unix(0, 0)), asset.SessionFSM)
	if err != nil {
		t.Fatalf("NewStateMachine: %v", err)
	}
	if err := sm.Start(); err != nil {
		t.Fatal(err)
	}
	q.Drain()

	s.Tally.Lives = 1
	sm.Observe(physics.Miss)
	if sm.Phase() != PhasePlaying {
		t.Errorf("phase = %s with a life left", sm.Phase())
	}

	s.Tally.Lives = 0
	sm.Observe(physics.Miss | physics.WallBounce)
	if sm.Phase() != PhaseGameOver {
		t.Errorf("phase = %s, want GameOver", sm.Phase())
	}

	var got []events.EventType
	for _, ev := range q.Drain() {
		got = append(got, ev.Type)
	}
	want := []events.EventType{
		events.EventMiss,
		events.EventWallBounce, events.EventMiss,
		events.EventNarration, events.EventNarration, events.EventGameOver,
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGameOverButtonsHitTest(t *testing.T) {
	buttons := GameOverButtons(Size{Width: 1920, Height: 1080})
	if len(buttons) != 2 {
		t.Fatalf("buttons = %d", len(buttons))
	}
	restart, quit := buttons[0], buttons[1]
	if !restart.Rect.Contains(960, 620) || restart.Control != ControlRestart {
		t.Errorf("restart = %+v", restart)
	}
	if !quit.Rect.Contains(960, 700) || quit.Control != ControlQuit {
		t.Errorf("quit = %+v", quit)
	}
	if restart.Rect.Contains(960, 540) {
		t.Error("window center is not a button")
	}
	if ControlQuit.Command() != CommandQuitClick || ControlNone.Command() != CommandNone {
		t.Error("control command mapping")
	}
}
