package broadcast

import (
	list "github.com/bahlo/generic-list-go"
)

type strategyKind int

const (
	kindNoBuffering strategyKind = iota
	kindBoundedReplay
	kindUnboundedReplay
)

// Strategy controls which previously broadcast values a Channel retains and
// replays to a listener attached after the fact. It is immutable and fixed
// at construction time.
type Strategy struct {
	kind     strategyKind
	capacity int
}

// NoBuffering retains nothing. A new listener only observes values broadcast
// after it attached. This is the default.
func NoBuffering() Strategy {
	return Strategy{kind: kindNoBuffering}
}

// BoundedReplay retains the most recent capacity values. A capacity of zero
// or less retains nothing, same as NoBuffering.
func BoundedReplay(capacity int) Strategy {
	return Strategy{kind: kindBoundedReplay, capacity: capacity}
}

// UnboundedReplay retains every value ever broadcast.
func UnboundedReplay() Strategy {
	return Strategy{kind: kindUnboundedReplay}
}

func (s Strategy) String() string {
	switch s.kind {
	case kindBoundedReplay:
		return "bounded"
	case kindUnboundedReplay:
		return "unbounded"
	default:
		return "none"
	}
}

// retains reports whether the strategy keeps any history at all.
func (s Strategy) retains() bool {
	switch s.kind {
	case kindBoundedReplay:
		return s.capacity > 0
	case kindUnboundedReplay:
		return true
	default:
		return false
	}
}

// history is the ordered buffer of retained values. It is mutated only while
// the owning channel's delivery lock is held.
type history[T any] struct {
	strategy Strategy
	values   *list.List[T]
}

func newHistory[T any](strategy Strategy) *history[T] {
	return &history[T]{
		strategy: strategy,
		values:   list.New[T](),
	}
}

func (h *history[T]) append(value T) {
	if !h.strategy.retains() {
		return
	}
	h.values.PushBack(value)
	if h.strategy.kind == kindBoundedReplay {
		for h.values.Len() > h.strategy.capacity {
			h.values.Remove(h.values.Front())
		}
	}
}

// snapshot copies the retained values oldest first.
func (h *history[T]) snapshot() []T {
	if h.values.Len() == 0 {
		return nil
	}
	out := make([]T, 0, h.values.Len())
	for e := h.values.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value)
	}
	return out
}
