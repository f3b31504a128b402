package scoreboard

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/gesture-pong/engine"
	"github.com/lixenwraith/gesture-pong/events"
	"github.com/lixenwraith/gesture-pong/status"
)

const writeTimeout = 2 * time.Second

// Recorder writes each finished game to the store
// It runs on the tick goroutine; write errors are logged and never reach game state
type Recorder struct {
	store    *Store
	gameID   string
	lastID   string
	recorded *atomic.Int64
}

// NewRecorder attaches a recorder to store; reg may be nil
func NewRecorder(store *Store, reg *status.Registry) *Recorder {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Recorder{
		store:    store,
		gameID:   uuid.NewString(),
		recorded: reg.Ints.Get(status.KeyGamesRecorded),
	}
}

// LastID is the id of the most recently recorded game
func (r *Recorder) LastID() string { return r.lastID }

// GameID is the id the current game will be recorded under
func (r *Recorder) GameID() string { return r.gameID }

// EventTypes implements events.Handler
func (r *Recorder) EventTypes() []events.EventType {
	return []events.EventType{events.EventGameOver, events.EventSessionRestarted}
}

// HandleEvent implements events.Handler
func (r *Recorder) HandleEvent(_ *engine.Session, ev events.GameEvent) {
	switch ev.Type {
	case events.EventSessionRestarted:
		r.gameID = uuid.NewString()

	case events.EventGameOver:
		p, ok := ev.Payload.(*events.GameOverPayload)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		id, err := r.store.Record(ctx, Game{
			ID:        r.gameID,
			StartedAt: p.Started,
			EndedAt:   p.Ended,
			Score:     p.Score,
			Level:     p.Level,
			Ticks:     p.Ticks,
		})
		if err != nil {
			log.Printf("scoreboard: %v", err)
			return
		}
		r.lastID = id
		r.recorded.Add(1)
	}
}

// Name implements service.Service
func (r *Recorder) Name() string { return "scoreboard" }

// Dependencies implements service.Service
func (r *Recorder) Dependencies() []string { return nil }

// Start implements service.Service; the store is migrated on Open
func (r *Recorder) Start(context.Context) error { return nil }

// Stop implements service.Service
func (r *Recorder) Stop() error { return r.store.Close() }
