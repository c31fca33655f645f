package ecs

// The event queue is a single per-tick buffer. Events added during tick N are
// readable by every system scheduled after the emitter in tick N, and the
// buffer is emptied when the tick ends. Events added between ticks (input,
// loaders) are read by the next tick.

// AddEvent appends ev to the current tick's queue.
func (w *World) AddEvent(ev any) {
	w.events = append(w.events, ev)
}

// EventCount returns the number of events queued so far.
func (w *World) EventCount() int { return len(w.events) }

// AllEvents returns a copy of the queue in emission order.
func (w *World) AllEvents() []any {
	out := make([]any, len(w.events))
	copy(out, w.events)
	return out
}

// clearEvents drops every queued event.
func (w *World) clearEvents() {
	clear(w.events)
	w.events = w.events[:0]
}

// Events returns a snapshot of the queued events of type T.
func Events[T any](w *World) []T {
	var out []T
	for _, ev := range w.events {
		if t, ok := ev.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// EachEvent calls fn for every queued event of type T in emission order.
// Events appended while iterating, including by fn itself, are visited too.
func EachEvent[T any](w *World, fn func(T)) {
	for i := 0; i < len(w.events); i++ {
		if t, ok := w.events[i].(T); ok {
			fn(t)
		}
	}
}
