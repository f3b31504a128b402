package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/gesture-pong/asset"
	"github.com/lixenwraith/gesture-pong/constants"
	"github.com/lixenwraith/gesture-pong/events"
	"github.com/lixenwraith/gesture-pong/gesture"
	"github.com/lixenwraith/gesture-pong/physics"
	"github.com/lixenwraith/gesture-pong/status"
)

// ErrNotStarted is returned by Step before Start
var ErrNotStarted = errors.New("controller not started")

// Options configures a Controller; zero fields take defaults
type Options struct {
	Window       Size
	Field        physics.Playfield
	Geometry     physics.Geometry
	Rules        physics.Rules
	Dropout      gesture.DropoutPolicy
	TickInterval time.Duration
	Graph        []byte // session FSM TOML, embedded default when nil
	GraphPath    string // session FSM TOML file, overrides Graph
	Best         int    // best score loaded from the scoreboard

	Hand      HandSource // required
	Input     InputSource
	Presenter Presenter
	Clock     Clock
	Status    *status.Registry
}

// Controller runs the fixed per-tick order:
// command -> hand poll -> gesture -> physics -> state machine -> events -> present
type Controller struct {
	session   *Session
	sm        *StateMachine
	tracker   *gesture.Tracker
	queue     *events.Queue
	router    *events.Router[*Session]
	hand      HandSource
	input     InputSource
	presenter Presenter
	window    Size
	interval  time.Duration
	status    *status.Registry
	started   bool
}

// NewController wires a session, its state machine and the tick collaborators
func NewController(opts Options) (*Controller, error) {
	if opts.Hand == nil {
		return nil, errors.New("controller: hand source required")
	}
	if opts.Window == (Size{}) {
		opts.Window = Size{Width: constants.WindowWidth, Height: constants.WindowHeight}
	}
	if opts.Field == (physics.Playfield{}) {
		opts.Field = physics.Playfield{
			Width:  opts.Window.Width * constants.PlayfieldNumerator / constants.PlayfieldDenominator,
			Height: opts.Window.Height,
		}
	}
	if opts.Geometry == (physics.Geometry{}) {
		opts.Geometry = physics.DefaultGeometry()
	}
	if opts.Rules == (physics.Rules{}) {
		opts.Rules = physics.DefaultRules()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = constants.TickInterval
	}
	if opts.Graph == nil {
		opts.Graph = asset.SessionFSM
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}

	session := NewSession(opts.Field, opts.Geometry, opts.Rules)
	session.Best = opts.Best

	queue := events.NewQueue()
	var sm *StateMachine
	var err error
	if opts.GraphPath != "" {
		sm, err = NewStateMachineFile(session, queue, opts.Clock, opts.GraphPath)
	} else {
		sm, err = NewStateMachine(session, queue, opts.Clock, opts.Graph)
	}
	if err != nil {
		return nil, err
	}

	c := &Controller{
		session:   session,
		sm:        sm,
		tracker:   gesture.NewTracker(opts.Field.Width, opts.Dropout),
		queue:     queue,
		router:    events.NewRouter[*Session](queue),
		hand:      opts.Hand,
		input:     opts.Input,
		presenter: opts.Presenter,
		window:    opts.Window,
		interval:  opts.TickInterval,
		status:    opts.Status,
	}
	c.router.Register(newMetricsHandler(opts.Status))
	return c, nil
}

// Register adds an output event handler; call before Start
func (c *Controller) Register(h events.Handler[*Session]) {
	c.router.Register(h)
}

// Start enters Playing, emits the start narration and presents the first frame
func (c *Controller) Start() error {
	if c.started {
		return nil
	}
	if err := c.sm.Start(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	c.started = true
	c.router.DispatchAll(c.session)
	c.present()
	return nil
}

// Tick polls the input source and runs one step
func (c *Controller) Tick() error {
	cmd := CommandNone
	if c.input != nil {
		cmd = c.input.Poll()
	}
	return c.Step(cmd)
}

// Step runs one tick with the given command
// A hand source error ends the session and is returned wrapped
func (c *Controller) Step(cmd Command) error {
	if !c.started {
		return ErrNotStarted
	}
	if c.session.Phase == PhaseTerminated {
		return nil
	}
	begin := time.Now()
	c.session.Tick++

	if cmd != CommandNone {
		if c.sm.Apply(cmd) {
			log.Printf("command %s -> %s", cmd, c.session.Phase)
		}
	}
	if c.session.Phase == PhaseTerminated {
		c.finishTick(begin)
		return nil
	}

	x, ok, err := c.hand.PollHandPosition()
	if err != nil {
		return fmt.Errorf("poll hand position: %w", err)
	}
	c.session.Hand = HandReading{Detected: ok, X: x}

	if c.session.Phase == PhasePlaying {
		sample := gesture.Absent
		if ok {
			sample = gesture.Present(x)
		}
		delta := c.tracker.ComputeDelta(sample)
		ev := physics.Step(c.session.State, delta)
		c.session.GameTicks++
		c.sm.Observe(ev)

		if err := c.session.Validate(); err != nil {
			panic(err)
		}
	}

	c.finishTick(begin)
	return nil
}

func (c *Controller) finishTick(begin time.Time) {
	c.router.DispatchAll(c.session)
	c.present()

	c.status.Ints.Get(status.KeyTicks).Store(c.session.Tick)
	c.status.Strings.Get(status.KeyPhase).Store(c.session.Phase.String())
	c.status.Bools.Get(status.KeyHandDetected).Store(c.session.Hand.Detected)
	c.status.Floats.Get(status.KeyTickMillis).Set(float64(time.Since(begin).Microseconds()) / 1000)
}

// Run ticks at the configured rate until Terminated, ctx cancellation or a hand source failure
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Start(); err != nil {
		return err
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for c.session.Phase != PhaseTerminated {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.Tick(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Frame builds the presentation snapshot of the current tick
func (c *Controller) Frame() Frame {
	s := c.session
	f := Frame{
		Tick:   s.Tick,
		Window: c.window,
		Field:  s.Field,
		Phase:  s.Phase,
		Paddle: s.Paddle,
		Ball:   s.Ball,
		Tally:  s.Tally,
		Best:   s.Best,
		Hand:   s.Hand,
	}
	if s.Phase == PhaseGameOver {
		f.Buttons = GameOverButtons(c.window)
	}
	return f
}

func (c *Controller) present() {
	if c.presenter != nil {
		c.presenter.Present(c.Frame())
	}
}

// Session exposes the aggregate, read-only outside the tick
func (c *Controller) Session() *Session { return c.session }

// Phase returns the current session phase
func (c *Controller) Phase() Phase { return c.session.Phase }

// Terminated reports whether the session has ended
func (c *Controller) Terminated() bool { return c.session.Phase == PhaseTerminated }

// Tracker exposes the gesture tracker for inspection; callers must not feed it
func (c *Controller) Tracker() *gesture.Tracker { return c.tracker }
