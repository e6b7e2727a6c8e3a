package cell

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrUnsubscribe is returned by a listener to remove its own registration.
var ErrUnsubscribe = errors.New("cell: unsubscribe")

type ListenerFunc[T any] func(oldValue, newValue T) error

// Listener is the identity a callback is registered and removed under.
// The same Listener may be registered more than once, on one or many cells.
type Listener[T any] struct {
	id uint64
	fn ListenerFunc[T]
}

var listenerIDs atomic.Uint64

func NewListener[T any](fn ListenerFunc[T]) *Listener[T] {
	return &Listener[T]{
		id: listenerIDs.Add(1),
		fn: fn,
	}
}

func (l *Listener[T]) ID() uint64 {
	return l.id
}

// ListenerError wraps an error returned by a listener other than ErrUnsubscribe.
type ListenerError[T any] struct {
	Listener *Listener[T]
	Err      error
}

func (e *ListenerError[T]) Error() string {
	return fmt.Sprintf("cell: listener %d: %v", e.Listener.id, e.Err)
}

func (e *ListenerError[T]) Unwrap() error {
	return e.Err
}

type registration[T any] struct {
	listener *Listener[T]
	debounce *debouncer[T] // nil for synchronous registrations
	removed  bool
}
