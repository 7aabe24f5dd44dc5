package vtterm

import "sync"

// Subscription is a disposable handle returned by EventEmitter.On. Calling
// Dispose removes the associated listener; it is safe to call more than
// once and safe to call from within the listener itself.
type Subscription struct {
	dispose func()
}

// Dispose removes the listener this subscription was created for.
func (s Subscription) Dispose() {
	if s.dispose != nil {
		s.dispose()
	}
}

type listenerEntry[T any] struct {
	id int
	fn func(T)
}

// EventEmitter is a minimal pub/sub primitive: a list of (id, callback)
// pairs behind a mutex, dispatched by Fire over a snapshot of the current
// listeners so that a listener added or removed during dispatch never
// races with, or is skipped by, the in-progress Fire call.
type EventEmitter[T any] struct {
	mu        sync.Mutex
	listeners []listenerEntry[T]
	nextID    int
}

// On registers fn to be called on every future Fire, returning a
// Subscription that unregisters it.
func (e *EventEmitter[T]) On(fn func(T)) Subscription {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners = append(e.listeners, listenerEntry[T]{id: id, fn: fn})
	e.mu.Unlock()

	return Subscription{dispose: func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				break
			}
		}
	}}
}

// Fire invokes every currently registered listener with value. Listeners
// are snapshotted before invocation.
func (e *EventEmitter[T]) Fire(value T) {
	e.mu.Lock()
	snapshot := make([]listenerEntry[T], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, l := range snapshot {
		l.fn(value)
	}
}

// Len reports the current listener count, mainly for tests.
func (e *EventEmitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
