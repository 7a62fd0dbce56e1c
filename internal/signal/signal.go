// Package signal provides a small observable value container used by the
// cart and wishlist stores to push state changes to subscribers.
//
// Subscribers are notified synchronously, in subscription order, while the
// value lock is NOT held, so a subscriber may call back into the owning
// store without deadlocking.
package signal

import (
	"sync"
)

// Subscriber receives the new value after every Set.
type Subscriber[T any] func(T)

// Unsubscribe removes a subscriber. Safe to call more than once.
type Unsubscribe func()

// Value holds a current value of type T and a subscriber list.
// The zero value is not usable; construct with New.
type Value[T any] struct {
	mu    sync.Mutex
	value T

	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn Subscriber[T]
}

// New returns a Value seeded with initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set replaces the current value and notifies every subscriber with it.
// Notification happens on the calling goroutine, in subscription order.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	subs := make([]subscription[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(value)
	}
}

// Update applies fn to the current value and stores the result, then
// notifies subscribers. The function runs under the lock, so it must not
// call back into this Value.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	v.value = fn(v.value)
	value := v.value
	subs := make([]subscription[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(value)
	}
}

// Subscribe registers fn and immediately invokes it with the current value,
// mirroring replay-on-subscribe semantics so new listeners never miss the
// latest state. The returned Unsubscribe removes the registration.
func (v *Value[T]) Subscribe(fn Subscriber[T]) Unsubscribe {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs = append(v.subs, subscription[T]{id: id, fn: fn})
	current := v.value
	v.mu.Unlock()

	fn(current)

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		for i, s := range v.subs {
			if s.id == id {
				v.subs = append(v.subs[:i], v.subs[i+1:]...)
				return
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (v *Value[T]) SubscriberCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}
