package engine

import (
	"fmt"

	"github.com/lixenwraith/gesture-pong/constants"
	"github.com/lixenwraith/gesture-pong/engine/fsm"
	"github.com/lixenwraith/gesture-pong/events"
	"github.com/lixenwraith/gesture-pong/physics"
)

// StateMachine drives the session phase from a TOML graph
// Guards and actions close over the session; output goes to the event queue
type StateMachine struct {
	machine *fsm.Machine[*Session]
	session *Session
	queue   *events.Queue
	clock   Clock
}

type narrateArgs struct {
	Cue events.NarrationCue `toml:"cue"`
}

type beginArgs struct {
	Restart bool `toml:"restart"`
}

// NewStateMachine compiles graph against the session's guards and actions
// The graph must define Playing, GameOver and Terminated
func NewStateMachine(s *Session, q *events.Queue, clock Clock, graph []byte) (*StateMachine, error) {
	return newStateMachine(s, q, clock, func(m *fsm.Machine[*Session]) error {
		return m.LoadConfig(graph)
	})
}

// NewStateMachineFile is NewStateMachine with the graph read from path
func NewStateMachineFile(s *Session, q *events.Queue, clock Clock, path string) (*StateMachine, error) {
	return newStateMachine(s, q, clock, func(m *fsm.Machine[*Session]) error {
		return m.LoadFile(path)
	})
}

func newStateMachine(s *Session, q *events.Queue, clock Clock, load func(*fsm.Machine[*Session]) error) (*StateMachine, error) {
	events.InitRegistry()

	sm := &StateMachine{
		machine: fsm.NewMachine[*Session](),
		session: s,
		queue:   q,
		clock:   clock,
	}
	sm.register()

	if err := load(sm.machine); err != nil {
		return nil, fmt.Errorf("load session graph: %w", err)
	}
	for _, name := range []string{StatePlaying, StateGameOver, StateTerminated} {
		if _, ok := sm.machine.GetStateID(name); !ok {
			return nil, fmt.Errorf("session graph lacks state '%s': %w", name, fsm.ErrUnknownState)
		}
	}
	return sm, nil
}

func (sm *StateMachine) register() {
	m := sm.machine

	m.RegisterGuard("LivesExhausted", func(s *Session) bool {
		return s.Tally.Lives == 0
	})

	m.RegisterAction(fsm.EmitEvent, func(s *Session, args any) {
		a := args.(*fsm.EmitEventArgs)
		sm.queue.Emit(a.Type, a.Payload, s.Tick)
	})

	m.RegisterActionArgs("Narrate", func(s *Session, args any) {
		cue := args.(*narrateArgs).Cue
		sm.queue.Emit(events.EventNarration, &events.NarrationPayload{
			Cue:  cue,
			Text: narrationText(cue, s.Tally.Score),
		}, s.Tick)
	}, func() any { return &narrateArgs{} })

	m.RegisterActionArgs("BeginGame", func(s *Session, args any) {
		s.Started = sm.clock.Now()
		s.GameTicks = 0
		et := events.EventSessionStarted
		if args.(*beginArgs).Restart {
			et = events.EventSessionRestarted
		}
		sm.queue.Emit(et, &events.SessionPayload{Started: s.Started}, s.Tick)
	}, func() any { return &beginArgs{} })

	// Paddle keeps its position across restart
	m.RegisterAction("ResetSession", func(s *Session, _ any) {
		s.ResetTally()
		s.ResetBall()
	})

	m.RegisterAction("RecordGameOver", func(s *Session, _ any) {
		if s.Tally.Score > s.Best {
			s.Best = s.Tally.Score
		}
		sm.queue.Emit(events.EventGameOver, &events.GameOverPayload{
			Score:   s.Tally.Score,
			Level:   s.Tally.Level,
			Ticks:   s.GameTicks,
			Started: s.Started,
			Ended:   sm.clock.Now(),
		}, s.Tick)
	})
}

// Start enters the initial state, running the graph's start actions
func (sm *StateMachine) Start() error {
	if err := sm.machine.Init(sm.session); err != nil {
		return err
	}
	sm.sync()
	return nil
}

// Observe forwards one step's physics events to the queue and the graph
func (sm *StateMachine) Observe(ev physics.Events) {
	if ev == physics.None {
		return
	}
	t := sm.session.Tally
	tally := func() *events.TallyPayload {
		return &events.TallyPayload{Score: t.Score, Lives: t.Lives, Level: t.Level}
	}

	if ev.Has(physics.WallBounce) {
		sm.queue.Emit(events.EventWallBounce, nil, sm.session.Tick)
	}
	if ev.Has(physics.PaddleHit) {
		sm.queue.Emit(events.EventPaddleHit, tally(), sm.session.Tick)
	}
	if ev.Has(physics.LevelUp) {
		sm.queue.Emit(events.EventLevelUp, tally(), sm.session.Tick)
	}
	if ev.Has(physics.Miss) {
		sm.queue.Emit(events.EventMiss, tally(), sm.session.Tick)
		sm.handle(events.EventMiss)
	}
}

// Apply feeds a player command; commands with no transition in the current phase are ignored
func (sm *StateMachine) Apply(cmd Command) bool {
	switch cmd {
	case CommandQuit:
		return sm.handle(events.EventWindowClosed)
	case CommandRestartClick:
		return sm.handle(events.EventRestartRequest)
	case CommandQuitClick:
		return sm.handle(events.EventQuitRequest)
	}
	return false
}

// Phase returns the current session phase
func (sm *StateMachine) Phase() Phase {
	return sm.session.Phase
}

func (sm *StateMachine) handle(et events.EventType) bool {
	fired := sm.machine.HandleEvent(sm.session, et)
	if fired {
		sm.sync()
	}
	return fired
}

func (sm *StateMachine) sync() {
	switch {
	case sm.machine.InState(StateTerminated):
		sm.session.Phase = PhaseTerminated
	case sm.machine.InState(StateGameOver):
		sm.session.Phase = PhaseGameOver
	default:
		sm.session.Phase = PhasePlaying
	}
}

func narrationText(cue events.NarrationCue, score int) string {
	switch cue {
	case events.CueStart:
		return constants.NarrationStart
	case events.CueRestarting:
		return constants.NarrationRestarting
	case events.CueQuitting:
		return constants.NarrationQuitting
	case events.CueFinalScore:
		return fmt.Sprintf(constants.NarrationFinalScoreFormat, score)
	case events.CueGameOver:
		return constants.NarrationGameOver
	}
	return ""
}
