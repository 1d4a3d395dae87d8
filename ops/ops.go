// Package ops derives new broadcast channels from existing ones. Every
// combinator builds a fresh Emitter/Channel pair carrying the source's
// buffering strategy (HotOnly excepted) and wires it to the source with a
// single Listen at construction time. Because the source replays its history
// through that same listener, the derived channel's own history is exactly
// what the combinator would have produced had it been attached from the
// beginning.
//
// The derived pair's emitter and its upstream subscription are owned by the
// wiring closure; they live as long as the source channel does.
package ops

import (
	"github.com/lumavpn/broadcast"
	"go.uber.org/atomic"
)

// derive creates the downstream pair for src, keeping its strategy.
func derive[T, U any](src *broadcast.Channel[T]) (*broadcast.Emitter[U], *broadcast.Channel[U]) {
	return broadcast.New[U](broadcast.WithStrategy(src.Strategy()))
}

// Map forwards f(value) for every value observed on src.
func Map[T, U any](src *broadcast.Channel[T], f func(T) U) *broadcast.Channel[U] {
	emitter, ch := derive[T, U](src)
	src.Listen(func(value T) {
		emitter.Broadcast(f(value))
	})
	return ch
}

// Filter forwards only the values for which p holds.
func Filter[T any](src *broadcast.Channel[T], p func(T) bool) *broadcast.Channel[T] {
	emitter, ch := derive[T, T](src)
	src.Listen(func(value T) {
		if p(value) {
			emitter.Broadcast(value)
		}
	})
	return ch
}

// SkipRepeats forwards a value only when it differs from the previously
// forwarded one. The first value is always forwarded.
func SkipRepeats[T comparable](src *broadcast.Channel[T]) *broadcast.Channel[T] {
	emitter, ch := derive[T, T](src)
	var last *T
	src.Listen(func(value T) {
		if last != nil && *last == value {
			return
		}
		v := value
		last = &v
		emitter.Broadcast(value)
	})
	return ch
}

// UniqueValues forwards a value only the first time this combinator instance
// sees it.
func UniqueValues[T comparable](src *broadcast.Channel[T]) *broadcast.Channel[T] {
	emitter, ch := derive[T, T](src)
	seen := make(map[T]struct{})
	src.Listen(func(value T) {
		if _, dup := seen[value]; dup {
			return
		}
		seen[value] = struct{}{}
		emitter.Broadcast(value)
	})
	return ch
}

// Transition pairs a value with the one forwarded before it.
type Transition[T any] struct {
	Previous *T // nil only for the first observed value
	Current  T
}

// WithPrevious forwards every value together with its predecessor.
func WithPrevious[T any](src *broadcast.Channel[T]) *broadcast.Channel[Transition[T]] {
	emitter, ch := derive[T, Transition[T]](src)
	var prev *T
	src.Listen(func(value T) {
		emitter.Broadcast(Transition[T]{Previous: prev, Current: value})
		v := value
		prev = &v
	})
	return ch
}

// Skip drops the first n values then forwards the rest. n <= 0 forwards
// everything.
func Skip[T any](src *broadcast.Channel[T], n int) *broadcast.Channel[T] {
	emitter, ch := derive[T, T](src)
	var dropped atomic.Int64
	src.Listen(func(value T) {
		if dropped.Inc() <= int64(n) {
			return
		}
		emitter.Broadcast(value)
	})
	return ch
}

// Take forwards only the first n values; afterwards the upstream listener
// stays registered but forwards nothing. n <= 0 forwards nothing.
func Take[T any](src *broadcast.Channel[T], n int) *broadcast.Channel[T] {
	emitter, ch := derive[T, T](src)
	var taken atomic.Int64
	src.Listen(func(value T) {
		if taken.Inc() > int64(n) {
			return
		}
		emitter.Broadcast(value)
	})
	return ch
}

// SkipNil drops nil pointers and forwards the pointed-to values.
func SkipNil[T any](src *broadcast.Channel[*T]) *broadcast.Channel[T] {
	emitter, ch := broadcast.New[T](broadcast.WithStrategy(src.Strategy()))
	src.Listen(func(value *T) {
		if value == nil {
			return
		}
		emitter.Broadcast(*value)
	})
	return ch
}

// HotOnly forwards every value but the derived channel never buffers, so a
// listener attached to it observes live values only, regardless of the
// source's strategy. The source's replay at wiring time is discarded by
// construction: it is broadcast into a channel that retains nothing and has
// no listeners yet.
func HotOnly[T any](src *broadcast.Channel[T]) *broadcast.Channel[T] {
	emitter, ch := broadcast.New[T](broadcast.WithStrategy(broadcast.NoBuffering()))
	src.Listen(func(value T) {
		emitter.Broadcast(value)
	})
	return ch
}
