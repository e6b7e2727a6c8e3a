// Package cell provides an observable value whose listeners are notified
// either inline or debounced, each on its own delay.
//
//	c, _ := cell.New(1, cell.NoClone[int])
//	c.OnChange(func(oldValue, newValue int) error {
//		log.Printf("%d -> %d", oldValue, newValue)
//		return nil
//	})
//	c.OnChangeDebounced(func(oldValue, newValue int) error {
//		render(newValue)
//		return nil
//	}, 300*time.Millisecond)
//	c.FireChanged(2)
//
// A Cell is driven from one goroutine at a time. Its lock is never held while
// a listener runs, so listeners may add or remove listeners and fire changes.
package cell

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
)

var ErrNilClone = errors.New("cell: nil clone func")

type Cell[T any] struct {
	mu            sync.Mutex
	value         T
	clone         CloneFunc[T]
	registrations []*registration[T]
	opts          options
}

// New returns a cell holding a clone of initial. The clone strategy is used
// for every committed value.
func New[T any](initial T, clone CloneFunc[T], opts ...Option) (*Cell[T], error) {
	if clone == nil {
		return nil, ErrNilClone
	}
	value, err := clone(initial)
	if err != nil {
		return nil, fmt.Errorf("cell: cloning initial value: %w", err)
	}

	c := &Cell[T]{
		value: value,
		clone: clone,
		opts:  defaultOptions(),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c, nil
}

// Value returns the committed value. It is owned by the cell and must not be
// mutated; use Snapshot for a private copy.
func (c *Cell[T]) Value() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *Cell[T]) Snapshot() (T, error) {
	return c.clone(c.Value())
}

// AddListener registers l to be called inline by every FireChanged.
func (c *Cell[T]) AddListener(l *Listener[T]) {
	c.add(&registration[T]{listener: l})
}

// AddAsyncListener registers l to be called at most once per delay. Changes
// that arrive while a notification is pending restart the delay and are
// coalesced into it: l sees the value from before the first of them and the
// value of the last. A delay of zero still goes through a timer.
func (c *Cell[T]) AddAsyncListener(l *Listener[T], delay time.Duration) {
	c.add(&registration[T]{
		listener: l,
		debounce: newDebouncer[T](delay),
	})
}

func (c *Cell[T]) OnChange(fn ListenerFunc[T]) *Listener[T] {
	l := NewListener(fn)
	c.AddListener(l)
	return l
}

func (c *Cell[T]) OnChangeDebounced(fn ListenerFunc[T], delay time.Duration) *Listener[T] {
	l := NewListener(fn)
	c.AddAsyncListener(l, delay)
	return l
}

func (c *Cell[T]) add(r *registration[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registrations = append(c.registrations, r)
}

// RemoveListener removes every registration of l and cancels their pending
// notifications. Removing an unknown listener is a no-op.
func (c *Cell[T]) RemoveListener(l *Listener[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachWhere(func(r *registration[T]) bool {
		return r.listener == l
	})
}

func (c *Cell[T]) RemoveListeners(ls ...*Listener[T]) {
	set := mapset.NewThreadUnsafeSet(ls...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachWhere(func(r *registration[T]) bool {
		return set.Contains(r.listener)
	})
}

// Close removes all listeners and cancels their pending notifications.
func (c *Cell[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachWhere(func(*registration[T]) bool {
		return true
	})
}

// Len returns the number of registrations.
func (c *Cell[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.registrations)
}

// Pending returns the number of debounced registrations waiting on a timer.
func (c *Cell[T]) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.registrations {
		if r.debounce != nil && r.debounce.pending() {
			n++
		}
	}
	return n
}

// FireChanged notifies listeners of a change from the committed value to
// newValue, then commits a clone of newValue.
//
// Synchronous listeners run before FireChanged returns, in registration
// order. The first error other than ErrUnsubscribe stops the pass and is
// returned as a *ListenerError; the committed value is then left as is.
func (c *Cell[T]) FireChanged(newValue T) error {
	c.mu.Lock()
	oldValue := c.value
	pass := slices.Clone(c.registrations)
	c.mu.Unlock()

	for _, r := range pass {
		if r.debounce != nil {
			c.schedule(r, oldValue, newValue)
			continue
		}
		if c.isRemoved(r) {
			continue
		}
		if err := r.listener.fn(oldValue, newValue); err != nil {
			if errors.Is(err, ErrUnsubscribe) {
				c.detach(r)
				continue
			}
			return &ListenerError[T]{Listener: r.listener, Err: err}
		}
	}

	committed, err := c.clone(newValue)
	if err != nil {
		return fmt.Errorf("cell: cloning new value: %w", err)
	}
	c.mu.Lock()
	c.value = committed
	c.mu.Unlock()
	return nil
}

func (c *Cell[T]) schedule(r *registration[T], oldValue, newValue T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r.removed {
		return
	}
	opened := r.debounce.trigger(c.opts.clock, oldValue, newValue, func(seq uint64) {
		c.expire(r, seq)
	})
	if opened {
		c.opts.log.Debug("debounce window opened",
			zap.Uint64("listener", r.listener.id),
			zap.Duration("delay", r.debounce.delay),
		)
	} else {
		c.opts.log.Debug("debounce window extended",
			zap.Uint64("listener", r.listener.id),
			zap.Uint64("seq", r.debounce.seq),
		)
	}
}

func (c *Cell[T]) expire(r *registration[T], seq uint64) {
	c.mu.Lock()
	if r.removed {
		c.mu.Unlock()
		return
	}
	w, ok := r.debounce.expire(seq)
	c.mu.Unlock()
	if !ok {
		c.opts.log.Debug("stale debounce timer", zap.Uint64("listener", r.listener.id), zap.Uint64("seq", seq))
		return
	}

	c.opts.dispatch(func() {
		c.deliver(r, w.oldValue, w.newValue)
	})
}

func (c *Cell[T]) deliver(r *registration[T], oldValue, newValue T) {
	// the listener may have been removed while the delivery was queued
	if c.isRemoved(r) {
		return
	}
	c.opts.log.Debug("debounced notification", zap.Uint64("listener", r.listener.id))

	err := r.listener.fn(oldValue, newValue)
	switch {
	case err == nil:
	case errors.Is(err, ErrUnsubscribe):
		c.detach(r)
	default:
		c.opts.onError(&ListenerError[T]{Listener: r.listener, Err: err})
	}
}

func (c *Cell[T]) isRemoved(r *registration[T]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return r.removed
}

func (c *Cell[T]) detach(r *registration[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachWhere(func(other *registration[T]) bool {
		return other == r
	})
}

// detachWhere must be called with mu held.
func (c *Cell[T]) detachWhere(match func(*registration[T]) bool) {
	c.registrations = slices.DeleteFunc(c.registrations, func(r *registration[T]) bool {
		if !match(r) {
			return false
		}
		r.removed = true
		if r.debounce != nil && r.debounce.cancel() {
			c.opts.log.Debug("debounce window cancelled", zap.Uint64("listener", r.listener.id))
		}
		return true
	})
}
