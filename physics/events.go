package physics

import "strings"

// Events is the set of things that happened during one step
type Events uint8

const (
	WallBounce Events = 1 << iota
	PaddleHit
	LevelUp
	Miss
)

// None is the empty event set
const None Events = 0

// Has reports whether every event in e is present
func (ev Events) Has(e Events) bool {
	return ev&e == e
}

func (ev Events) String() string {
	if ev == None {
		return "None"
	}
	var parts []string
	if ev.Has(WallBounce) {
		parts = append(parts, "WallBounce")
	}
	if ev.Has(PaddleHit) {
		parts = append(parts, "PaddleHit")
	}
	if ev.Has(LevelUp) {
		parts = append(parts, "LevelUp")
	}
	if ev.Has(Miss) {
		parts = append(parts, "Miss")
	}
	return strings.Join(parts, "|")
}
