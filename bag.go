package broadcast

import (
	"sync"
)

// Bag aggregates subscriptions so they can be disposed together. The zero
// value is usable.
type Bag struct {
	mu   sync.Mutex
	subs []*Subscription
}

// NewBag creates an empty Bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add stores sub for later disposal. Nil subscriptions are ignored.
func (b *Bag) Add(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
}

// Len returns the number of held subscriptions.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// DisposeAll disposes every held subscription exactly once and empties the
// bag. The bag can be reused afterwards.
func (b *Bag) DisposeAll() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Dispose()
	}
}

// Scoped runs fn with a fresh Bag and disposes everything the bag holds when
// fn returns, on every exit path, panics included.
func Scoped(fn func(*Bag)) {
	bag := NewBag()
	defer bag.DisposeAll()
	fn(bag)
}
