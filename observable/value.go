// Package observable holds small reactive state containers shared between the
// editor core and the UI layer.
package observable

import "sync"

// Value is a single value that notifies subscribers synchronously on change.
type Value[T comparable] struct {
	mu     sync.Mutex
	value  T
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T comparable] struct {
	id uint64
	fn func(old, new T)
}

// New returns a Value holding initial.
func New[T comparable](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set stores val and notifies subscribers in subscription order before
// returning. Setting the current value again is a no-op.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	old := v.value
	if old == val {
		v.mu.Unlock()
		return
	}
	v.value = val
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		if !v.subscribed(s.id) {
			continue
		}
		s.fn(old, val)
	}
}

// Subscribe registers fn for future changes. The returned func removes the
// subscription and may be called any number of times, including from inside fn.
func (v *Value[T]) Subscribe(fn func(old, new T)) func() {
	if fn == nil {
		return func() {}
	}
	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { v.unsubscribe(id) })
	}
}

// Subscribers returns the number of live subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

func (v *Value[T]) unsubscribe(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, s := range v.subs {
		if s.id == id {
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return
		}
	}
}

func (v *Value[T]) subscribed(id uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range v.subs {
		if s.id == id {
			return true
		}
	}
	return false
}
