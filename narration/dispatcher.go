package narration

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/gesture-pong/constants"
	"github.com/lixenwraith/gesture-pong/engine"
	"github.com/lixenwraith/gesture-pong/events"
	"github.com/lixenwraith/gesture-pong/status"
)

// Dispatcher queues lines for a single worker so speech never blocks the tick
// Lines are spoken in submission order; lines beyond capacity are dropped
type Dispatcher struct {
	narrator Narrator
	timeout  time.Duration
	lines    chan string
	quit     chan struct{}
	wg       sync.WaitGroup

	started atomic.Bool
	stopped atomic.Bool

	spoken  *atomic.Int64
	dropped *atomic.Int64
	failed  *atomic.Int64
}

// NewDispatcher creates a stopped dispatcher; reg may be nil
func NewDispatcher(n Narrator, queueSize int, timeout time.Duration, reg *status.Registry) *Dispatcher {
	if queueSize <= 0 {
		queueSize = constants.NarrationQueueSize
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Dispatcher{
		narrator: n,
		timeout:  timeout,
		lines:    make(chan string, queueSize),
		quit:     make(chan struct{}),
		spoken:   reg.Ints.Get(status.KeyNarrationSpoken),
		dropped:  reg.Ints.Get(status.KeyNarrationDropped),
		failed:   reg.Ints.Get(status.KeyNarrationFailed),
	}
}

// Say enqueues a line without blocking, reporting whether it was accepted
func (d *Dispatcher) Say(text string) bool {
	if d.stopped.Load() {
		d.dropped.Add(1)
		return false
	}
	select {
	case d.lines <- text:
		return true
	default:
		d.dropped.Add(1)
		return false
	}
}

// Pending is the number of queued lines, for inspection; the worker does not consult it
func (d *Dispatcher) Pending() int { return len(d.lines) }

// Name implements service.Service
func (d *Dispatcher) Name() string { return "narration" }

// Dependencies implements service.Service
func (d *Dispatcher) Dependencies() []string { return nil }

// Start implements service.Service, launching the worker
func (d *Dispatcher) Start(ctx context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return nil
	}
	d.wg.Add(1)
	go d.worker(ctx)
	return nil
}

// Stop implements service.Service
// Lines already queued are still spoken, so the quitting line is heard before exit
func (d *Dispatcher) Stop() error {
	if !d.stopped.CompareAndSwap(false, true) {
		return nil
	}
	close(d.quit)
	d.wg.Wait()
	return nil
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case text := <-d.lines:
			d.speak(ctx, text)
		case <-d.quit:
			for {
				select {
				case text := <-d.lines:
					d.speak(context.WithoutCancel(ctx), text)
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) speak(parent context.Context, text string) {
	ctx, cancel := lineContext(parent, d.timeout)
	defer cancel()
	if err := d.narrator.Speak(ctx, text); err != nil {
		d.failed.Add(1)
		log.Printf("narration: %q: %v", text, err)
		return
	}
	d.spoken.Add(1)
}

// EventTypes implements events.Handler
func (d *Dispatcher) EventTypes() []events.EventType {
	return []events.EventType{events.EventNarration}
}

// HandleEvent implements events.Handler
func (d *Dispatcher) HandleEvent(_ *engine.Session, ev events.GameEvent) {
	if p, ok := ev.Payload.(*events.NarrationPayload); ok && p.Text != "" {
		d.Say(p.Text)
	}
}
