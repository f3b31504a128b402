package events

import (
	"sync/atomic"

	"github.com/lixenwraith/gesture-pong/constants"
)

// Queue is a lock-free MPSC ring of game events
// Push may be called from any goroutine; Drain only from the tick goroutine.
// A slot is readable once its published flag is set.
// When full the oldest unread events are overwritten and counted in Overwritten.
type Queue struct {
	events    [constants.EventQueueSize]GameEvent
	published [constants.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // next read
	tail      atomic.Uint64 // next write
	lost      atomic.Uint64
}

// NewQueue returns an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event, claiming a slot with CAS
func (q *Queue) Push(ev GameEvent) {
	for {
		tail := q.tail.Load()
		next := tail + 1
		if !q.tail.CompareAndSwap(tail, next) {
			continue
		}

		idx := tail & constants.EventBufferMask
		q.events[idx] = ev
		q.published[idx].Store(true) // after the write

		head := q.head.Load()
		if next-head > constants.EventQueueSize {
			if q.head.CompareAndSwap(head, next-constants.EventQueueSize) {
				q.lost.Add(next - constants.EventQueueSize - head)
			}
		}
		return
	}
}

// Emit is Push with the type and payload filled in
func (q *Queue) Emit(et EventType, payload any, frame int64) {
	q.Push(GameEvent{Type: et, Payload: payload, Frame: frame})
}

// Drain returns pending events in FIFO order, stopping at the first slot a writer
// has claimed but not yet published
func (q *Queue) Drain() []GameEvent {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail == head {
			return nil
		}

		n := tail - head
		if n > constants.EventQueueSize {
			n = constants.EventQueueSize
			head = tail - constants.EventQueueSize
		}

		out := make([]GameEvent, 0, n)
		for i := uint64(0); i < n; i++ {
			idx := (head + i) & constants.EventBufferMask
			if !q.published[idx].Load() {
				break
			}
			out = append(out, q.events[idx])
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len is the number of unread events
func (q *Queue) Len() int {
	n := q.tail.Load() - q.head.Load()
	if n > constants.EventQueueSize {
		n = constants.EventQueueSize
	}
	return int(n)
}

// Overwritten counts events lost to overflow
func (q *Queue) Overwritten() uint64 {
	return q.lost.Load()
}
