package events

// Handler processes routed events within a context T
type Handler[T any] interface {
	// HandleEvent is called synchronously on the tick goroutine
	HandleEvent(ctx T, event GameEvent)

	// EventTypes lists the types the handler wants
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for a fixed type list
type HandlerFunc[T any] struct {
	Types []EventType
	Fn    func(ctx T, event GameEvent)
}

func (h HandlerFunc[T]) HandleEvent(ctx T, event GameEvent) { h.Fn(ctx, event) }
func (h HandlerFunc[T]) EventTypes() []EventType             { return h.Types }

// Router drains a queue and fans events out to handlers
// Handlers registered for the same type run in registration order
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
	queue    *Queue
}

// NewRouter creates a router attached to the given queue
func NewRouter[T any](queue *Queue) *Router[T] {
	return &Router[T]{
		handlers: make(map[EventType][]Handler[T]),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll drains the queue and routes each event, returning how many were drained
func (r *Router[T]) DispatchAll(ctx T) int {
	evs := r.queue.Drain()
	for _, ev := range evs {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ctx, ev)
		}
	}
	return len(evs)
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
