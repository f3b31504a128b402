// Package physics advances the ball and paddle by one fixed tick and reports
// what happened during the step.
package physics

import "github.com/lixenwraith/gesture-pong/constants"

// Playfield is the rectangle in which ball and paddle move
// Origin is top-left, y grows downward
type Playfield struct {
	Width  int
	Height int
}

// Paddle is the player-controlled bar; Y is fixed for the session
type Paddle struct {
	X, Y          int
	Width, Height int
	Speed         int // nominal speed bound, informational
}

// Ball is the bouncing ball with integer position and velocity
type Ball struct {
	X, Y   int
	DX, DY int
	Radius int
}

// Tally is the scoring state mutated by the step
type Tally struct {
	Score int
	Lives int
	Level int
}

// Rules holds the tunables of a session
type Rules struct {
	BallSpeed      int
	StartingLives  int
	StartingLevel  int
	PointsPerLevel int
}

// DefaultRules returns the classic rule set
func DefaultRules() Rules {
	return Rules{
		BallSpeed:      constants.BallSpeed,
		StartingLives:  constants.StartingLives,
		StartingLevel:  constants.StartingLevel,
		PointsPerLevel: constants.PointsPerLevel,
	}
}

// State is everything the physics step reads and writes
type State struct {
	Field  Playfield
	Rules  Rules
	Paddle Paddle
	Ball   Ball
	Tally  Tally
}

// Geometry describes paddle and ball dimensions
type Geometry struct {
	PaddleWidth        int
	PaddleHeight       int
	PaddleBottomMargin int
	PaddleSpeed        int
	BallRadius         int
}

// DefaultGeometry returns the classic dimensions
func DefaultGeometry() Geometry {
	return Geometry{
		PaddleWidth:        constants.PaddleWidth,
		PaddleHeight:       constants.PaddleHeight,
		PaddleBottomMargin: constants.PaddleBottomMargin,
		PaddleSpeed:        constants.PaddleSpeed,
		BallRadius:         constants.BallRadius,
	}
}

// NewState builds a fresh session state: paddle centered at the bottom, ball
// at center with canonical velocity, full lives
func NewState(field Playfield, geo Geometry, rules Rules) *State {
	s := &State{
		Field: field,
		Rules: rules,
		Paddle: Paddle{
			X:      field.Width/2 - geo.PaddleWidth/2,
			Y:      field.Height - geo.PaddleHeight - geo.PaddleBottomMargin,
			Width:  geo.PaddleWidth,
			Height: geo.PaddleHeight,
			Speed:  geo.PaddleSpeed,
		},
		Ball: Ball{Radius: geo.BallRadius},
	}
	s.ResetTally()
	s.ResetBall()
	return s
}

// ResetBall puts the ball at the playfield center with the canonical launch velocity
func (s *State) ResetBall() {
	s.Ball.X = s.Field.Width / 2
	s.Ball.Y = s.Field.Height / 2
	s.Ball.DX = s.Rules.BallSpeed
	s.Ball.DY = -s.Rules.BallSpeed
}

// ResetTally restores score, lives and level to their starting values
func (s *State) ResetTally() {
	s.Tally = Tally{
		Score: 0,
		Lives: s.Rules.StartingLives,
		Level: s.Rules.StartingLevel,
	}
}

// MaxPaddleX is the right-most legal paddle x
func (s *State) MaxPaddleX() int {
	return s.Field.Width - s.Paddle.Width
}
