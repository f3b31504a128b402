package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/gesture-pong/events"
	"github.com/lixenwraith/gesture-pong/status"
)

// metricsHandler counts physics events into the status registry
type metricsHandler struct {
	hits, bounces, misses, levelUps *atomic.Int64
}

func newMetricsHandler(reg *status.Registry) *metricsHandler {
	return &metricsHandler{
		hits:     reg.Ints.Get(status.KeyPaddleHits),
		bounces:  reg.Ints.Get(status.KeyWallBounces),
		misses:   reg.Ints.Get(status.KeyMisses),
		levelUps: reg.Ints.Get(status.KeyLevelUps),
	}
}

func (h *metricsHandler) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventPaddleHit,
		events.EventWallBounce,
		events.EventMiss,
		events.EventLevelUp,
	}
}

func (h *metricsHandler) HandleEvent(_ *Session, ev events.GameEvent) {
	switch ev.Type {
	case events.EventPaddleHit:
		h.hits.Add(1)
	case events.EventWallBounce:
		h.bounces.Add(1)
	case events.EventMiss:
		h.misses.Add(1)
	case events.EventLevelUp:
		h.levelUps.Add(1)
	}
}
