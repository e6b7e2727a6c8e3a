package cell

import (
	"time"

	"github.com/benbjohnson/clock"
)

// window is an open coalescing window of a debounced registration.
type window[T any] struct {
	oldValue T // value in effect when the window opened
	newValue T // value of the latest trigger inside the window
	timer    *clock.Timer
}

// debouncer is Idle while window is nil and Pending otherwise.
// seq identifies the only timer allowed to close the current window; timers
// that were stopped after they had already fired carry an older seq.
type debouncer[T any] struct {
	delay  time.Duration
	window *window[T]
	seq    uint64
}

func newDebouncer[T any](delay time.Duration) *debouncer[T] {
	if delay < 0 {
		delay = 0
	}
	return &debouncer[T]{delay: delay}
}

// trigger opens a window, or restarts the timer of the pending one keeping
// its oldValue. fire is called with the seq of the started timer.
func (d *debouncer[T]) trigger(clk clock.Clock, oldValue, newValue T, fire func(seq uint64)) (opened bool) {
	if d.window == nil {
		d.window = &window[T]{oldValue: oldValue}
		opened = true
	} else {
		d.window.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.window.newValue = newValue
	d.window.timer = clk.AfterFunc(d.delay, func() {
		fire(seq)
	})
	return opened
}

// expire closes the window if seq belongs to its current timer.
func (d *debouncer[T]) expire(seq uint64) (w window[T], ok bool) {
	if d.window == nil || seq != d.seq {
		return w, false
	}
	w = *d.window
	d.window = nil
	return w, true
}

func (d *debouncer[T]) cancel() bool {
	if d.window == nil {
		return false
	}
	d.window.timer.Stop()
	d.window = nil
	d.seq++
	return true
}

func (d *debouncer[T]) pending() bool {
	return d.window != nil
}
