package broadcast

import (
	"go.uber.org/atomic"
)

// Subscription is the handle returned by Listen. Disposing it removes the
// listener from the channel; the channel itself is not kept alive or torn
// down by the handle.
type Subscription struct {
	disposed atomic.Bool
	remove   func()
}

func newSubscription(remove func()) *Subscription {
	return &Subscription{remove: remove}
}

// Dispose removes the listener so it receives no further deliveries, live or
// replay. Dispose is idempotent and never fails; it is safe to call from
// within a handler, including the handler being disposed. A delivery whose
// handler snapshot was taken just before Dispose completes may still reach
// the listener once.
func (s *Subscription) Dispose() {
	if s == nil {
		return
	}
	if !s.disposed.CompareAndSwap(false, true) {
		return
	}
	s.remove()
}

// Disposed reports whether Dispose has been called.
func (s *Subscription) Disposed() bool {
	return s != nil && s.disposed.Load()
}
