package cell

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

type options struct {
	clock    clock.Clock
	dispatch func(func())
	onError  func(error)
	log      *zap.Logger
}

type Option func(*options)

func defaultOptions() options {
	return options{
		clock: clock.New(),
		dispatch: func(fn func()) {
			fn()
		},
		onError: func(err error) {
			panic(fmt.Errorf("cell: unhandled debounced listener error: %w", err))
		},
		log: zap.NewNop(),
	}
}

// WithClock sets the clock debounce timers are scheduled on.
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		o.clock = clk
	}
}

// WithDispatcher hands every debounced delivery to dispatch, typically an
// event loop's queue, so listeners run on a single goroutine. By default
// deliveries run on the timer's goroutine.
func WithDispatcher(dispatch func(fn func())) Option {
	return func(o *options) {
		o.dispatch = dispatch
	}
}

// WithErrorHandler receives errors returned by debounced listeners, wrapped
// in a *ListenerError. Without one such an error panics.
func WithErrorHandler(fn func(err error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}
