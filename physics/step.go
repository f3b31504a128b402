package physics

// Step advances the state by one tick with the given paddle displacement
// Order: paddle move and clamp, ball advance, walls, paddle, level ramp, miss
func Step(s *State, paddleDeltaX int) Events {
	var ev Events

	s.Paddle.X = clamp(s.Paddle.X+paddleDeltaX, 0, s.MaxPaddleX())

	b := &s.Ball
	b.X += b.DX
	b.Y += b.DY

	if b.X <= 0 || b.X >= s.Field.Width-b.Radius {
		b.DX = -b.DX
		ev |= WallBounce
	}
	// Top edge counts once the ball's rim touches it
	if b.Y-b.Radius <= 0 {
		b.DY = -b.DY
		ev |= WallBounce
	}

	// Coarse test: center x within paddle span, bottom rim within paddle band
	p := s.Paddle
	bottom := b.Y + b.Radius
	if p.X <= b.X && b.X <= p.X+p.Width && p.Y <= bottom && bottom <= p.Y+p.Height {
		b.DY = -b.DY
		s.Tally.Score++
		ev |= PaddleHit

		if s.Rules.PointsPerLevel > 0 && s.Tally.Score%s.Rules.PointsPerLevel == 0 {
			s.Tally.Level++
			b.DX = grow(b.DX)
			b.DY = grow(b.DY)
			ev |= LevelUp
		}
	}

	if b.Y > s.Field.Height {
		ev |= Miss
		if s.Tally.Lives > 0 {
			s.Tally.Lives--
		}
		s.ResetBall()
	}

	return ev
}

// grow adds one unit of magnitude, keeping the sign
func grow(v int) int {
	if v > 0 {
		return v + 1
	}
	return v - 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
