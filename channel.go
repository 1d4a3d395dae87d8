package broadcast

import (
	"runtime"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Handler consumes broadcast values. Handlers run synchronously on the
// goroutine that broadcasts (or, during replay, the goroutine that listens).
type Handler[T any] func(T)

// Channel is the read side of a broadcast pair. Listeners register with
// Listen; values are fed in through the paired Emitter. All methods are safe
// for concurrent use.
type Channel[T any] struct {
	strategy Strategy
	logger   *logrus.Logger

	// deliverMu serializes the delivery point: history mutation, handler
	// snapshot and handler invocation for broadcasts, plus registration and
	// replay for Listen. It is reentrant so handlers can call back in.
	deliverMu reentrantMutex

	history   *history[T]
	listeners *xsync.MapOf[uint64, Handler[T]]
	nextToken atomic.Uint64
}

func newChannel[T any](strategy Strategy, logger *logrus.Logger) *Channel[T] {
	return &Channel[T]{
		strategy:  strategy,
		logger:    logger,
		history:   newHistory[T](strategy),
		listeners: xsync.NewMapOf[uint64, Handler[T]](),
	}
}

// Strategy returns the buffering strategy the channel was created with.
func (c *Channel[T]) Strategy() Strategy {
	return c.strategy
}

// Listeners returns the number of currently registered listeners.
func (c *Channel[T]) Listeners() int {
	return c.listeners.Size()
}

// Listen registers handler and synchronously replays the retained history to
// it, oldest first, before returning. From that point on the handler receives
// every broadcast until the returned subscription is disposed. The replay and
// the registration are linearized against broadcasts: the handler observes
// history-at-registration followed by every later value, with no gap and no
// duplicate.
//
// Listen may be called from within a handler; the nested registration runs
// inline.
func (c *Channel[T]) Listen(handler Handler[T]) *Subscription {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	token := c.nextToken.Inc()
	c.listeners.Store(token, handler)
	for _, value := range c.history.snapshot() {
		c.invoke(handler, value)
	}
	return newSubscription(func() {
		c.listeners.Delete(token)
	})
}

// broadcast appends value to the history per the strategy, then delivers it
// to a snapshot of the registered handlers. Broadcasts on one channel are
// totally ordered; a broadcast made from within a handler is delivered inline.
func (c *Channel[T]) broadcast(value T) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.history.append(value)
	for _, handler := range c.snapshot() {
		c.invoke(handler, value)
	}
}

// snapshot copies the registered handlers out so none of them runs while the
// registry is being iterated. Listeners registered after the snapshot do not
// receive the in-flight value; listeners disposed after the snapshot may
// still receive it once.
func (c *Channel[T]) snapshot() []Handler[T] {
	handlers := make([]Handler[T], 0, c.listeners.Size())
	c.listeners.Range(func(_ uint64, handler Handler[T]) bool {
		handlers = append(handlers, handler)
		return true
	})
	return handlers
}

// invoke runs a single handler, containing panics so one misbehaving
// listener cannot starve the rest of the snapshot.
func (c *Channel[T]) invoke(handler Handler[T], value T) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 8<<10)
			n := runtime.Stack(buf, false)
			c.logger.Errorf("broadcast: recovered listener panic: %v\n%s", r, buf[:n])
		}
	}()
	handler(value)
}
