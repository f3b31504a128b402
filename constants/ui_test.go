package constants

import "testing"

func TestPlayfieldFraction(t *testing.T) {
	w := WindowWidth * PlayfieldNumerator / PlayfieldDenominator
	if w != 1440 {
		t.Errorf("playfield width = %d, want 1440", w)
	}
	if PaddleWidth >= w {
		t.Errorf("paddle width %d does not fit playfield %d", PaddleWidth, w)
	}
}

func TestEventBufferMask(t *testing.T) {
	if EventQueueSize&(EventQueueSize-1) != 0 {
		t.Fatalf("EventQueueSize %d must be a power of two", EventQueueSize)
	}
	if EventBufferMask != EventQueueSize-1 {
		t.Errorf("EventBufferMask = %d, want %d", EventBufferMask, EventQueueSize-1)
	}
}

func TestCanonicalLaunchIsNonZero(t *testing.T) {
	if BallSpeed <= 0 {
		t.Fatalf("BallSpeed must be positive, got %d", BallSpeed)
	}
	if PointsPerLevel <= 0 {
		t.Fatalf("PointsPerLevel must be positive, got %d", PointsPerLevel)
	}
}
