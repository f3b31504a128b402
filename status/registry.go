// Package status holds lock-free runtime metrics shared between the tick loop
// and observers such as the vision feed's /status route.
package status

import "sync/atomic"

// Well-known metric keys
const (
	KeyTicks            = "engine.ticks"
	KeyTickMillis       = "engine.tick_ms"
	KeyPhase            = "session.phase"
	KeyPaddleHits       = "physics.paddle_hits"
	KeyWallBounces      = "physics.wall_bounces"
	KeyMisses           = "physics.misses"
	KeyLevelUps         = "physics.level_ups"
	KeyHandDetected     = "vision.hand_detected"
	KeyFeedMessages     = "vision.feed_messages"
	KeyFeedClients      = "vision.feed_clients"
	KeyNarrationSpoken  = "narration.spoken"
	KeyNarrationDropped = "narration.dropped"
	KeyNarrationFailed  = "narration.failed"
	KeyGamesRecorded    = "scoreboard.games"
)

// Registry is the central metrics facade
// Components cache pointers during init and write atomics directly afterwards
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Snapshot copies every metric into a plain map, suitable for JSON encoding
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Bools.Count()+r.Ints.Count()+r.Floats.Count()+r.Strings.Count())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
