package session

import "sync"

// Signal is a replay-last-value publish/subscribe container. New subscribers
// are immediately called with the current value, then with every subsequent
// value. It stands in for the rxjs BehaviorSubject the original client used.
type Signal[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int

	// delivery serializes the Subscribe replay with set notifications so no
	// subscriber observes an older value after a newer one.
	delivery sync.Mutex
}

// NewSignal creates a signal holding an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe registers fn and replays the current value to it before
// returning. The returned cancel func removes the subscription; calling it
// more than once is safe.
func (s *Signal[T]) Subscribe(fn func(T)) (cancel func()) {
	s.delivery.Lock()
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	current := s.value
	s.mu.Unlock()

	// Replay under the delivery lock: a concurrent set must not hand this
	// subscriber a newer value before the replayed one. Callbacks may read
	// the signal but must not mutate it.
	fn(current)
	s.delivery.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// set stores v and notifies every subscriber. Callbacks run outside the
// value lock but under the delivery lock; registration order is not
// guaranteed.
func (s *Signal[T]) set(v T) {
	s.delivery.Lock()
	defer s.delivery.Unlock()

	s.mu.Lock()
	s.value = v
	notify := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		notify = append(notify, fn)
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(v)
	}
}
