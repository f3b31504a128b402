package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/gesture-pong/physics"
)

// ErrInvariant marks a session state no correct tick can produce
var ErrInvariant = errors.New("session invariant violated")

// Session is the explicit game aggregate passed through the tick
type Session struct {
	*physics.State

	Phase     Phase
	Started   time.Time // start of the current game
	GameTicks int64     // ticks played in the current game
	Tick      int64     // ticks since Start, across games
	Best      int       // best final score known to this process
	Hand      HandReading
}

// NewSession builds a session in Playing with a fresh physics state
func NewSession(field physics.Playfield, geo physics.Geometry, rules physics.Rules) *Session {
	return &Session{
		State: physics.NewState(field, geo, rules),
		Phase: PhasePlaying,
	}
}

// Validate checks the invariants that hold after every tick
func (s *Session) Validate() error {
	p, b, t := s.Paddle, s.Ball, s.Tally
	switch {
	case p.X < 0 || p.X > s.MaxPaddleX():
		return fmt.Errorf("%w: paddle x %d outside [0,%d]", ErrInvariant, p.X, s.MaxPaddleX())
	case b.DX == 0 || b.DY == 0:
		return fmt.Errorf("%w: zero ball velocity (%d,%d)", ErrInvariant, b.DX, b.DY)
	case t.Score < 0:
		return fmt.Errorf("%w: negative score %d", ErrInvariant, t.Score)
	case t.Lives < 0 || t.Lives > s.Rules.StartingLives:
		return fmt.Errorf("%w: lives %d outside [0,%d]", ErrInvariant, t.Lives, s.Rules.StartingLives)
	case t.Level < s.Rules.StartingLevel:
		return fmt.Errorf("%w: level %d below %d", ErrInvariant, t.Level, s.Rules.StartingLevel)
	case s.Phase == PhasePlaying && t.Lives == 0:
		return fmt.Errorf("%w: playing with no lives", ErrInvariant)
	}
	return nil
}
