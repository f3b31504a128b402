package protocol

import "errors"

// Hand landmark indices, MediaPipe convention
const (
	Wrist        = 0
	ThumbTip     = 4
	IndexMCP     = 5
	IndexTip     = 8
	MiddleMCP    = 9
	MiddleTip    = 12
	RingTip      = 16
	PinkyTip     = 20
	NumLandmarks = 21
)

// ErrNoHand is returned by selection when no hand qualifies
var ErrNoHand = errors.New("no qualifying hand")

// Point3D is a normalized landmark; x and y are in [0,1] image space
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is one detected hand
type Hand struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// PointerX is the horizontal position that steers the paddle: the index finger tip
func (h Hand) PointerX() float64 {
	return h.Points[IndexTip].X
}

// Selector picks the steering hand out of a frame
type Selector struct {
	Handedness    string // "" or "any" accepts either
	MinConfidence float64
}

// Select returns the highest-scoring hand that passes the filter; ties keep the earlier hand
func (s Selector) Select(frame Landmarks) (Hand, error) {
	best := -1
	for i, h := range frame.Hands {
		if h.Score < s.MinConfidence {
			continue
		}
		if s.Handedness != "" && s.Handedness != "any" && h.Handedness != s.Handedness {
			continue
		}
		if best < 0 || h.Score > frame.Hands[best].Score {
			best = i
		}
	}
	if best < 0 {
		return Hand{}, ErrNoHand
	}
	return frame.Hands[best], nil
}
