package broadcast

import (
	"github.com/sirupsen/logrus"
)

// Emitter is the write side of a broadcast pair. It exclusively owns its
// Channel; the Channel holds no reference back.
type Emitter[T any] struct {
	ch *Channel[T]
}

// Broadcast delivers value to every listener currently registered on the
// paired Channel and records it in the channel's history per its Strategy.
// It never fails.
func (e *Emitter[T]) Broadcast(value T) {
	e.ch.broadcast(value)
}

type options struct {
	strategy Strategy
	logger   *logrus.Logger
}

// Option configures a broadcast pair at construction time.
type Option func(*options)

// WithStrategy sets the buffering strategy. Default is NoBuffering.
func WithStrategy(strategy Strategy) Option {
	return func(o *options) {
		o.strategy = strategy
	}
}

// WithLogger sets the logger used to report recovered listener panics.
// Default is the logrus standard logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates a bound Emitter/Channel pair.
func New[T any](opts ...Option) (*Emitter[T], *Channel[T]) {
	o := options{
		strategy: NoBuffering(),
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	ch := newChannel[T](o.strategy, o.logger)
	return &Emitter[T]{ch: ch}, ch
}
