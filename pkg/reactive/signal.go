// Package reactive implements the signal runtime that generated view code
// targets. Signals are thread-safe reactive values; subscribers run
// synchronously on the goroutine that performed the write.
package reactive

import (
	"sync"
)

// Signal is a reactive value of type T.
type Signal[T any] struct {
	mu    sync.RWMutex
	value T
	subs  []func(T)
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies all subscribers.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	subs := s.subs
	s.mu.Unlock()

	// Notify outside the lock so subscribers may read the signal.
	for _, fn := range subs {
		fn(value)
	}
}

// Update atomically applies fn to the current value and notifies
// subscribers with the result.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	value := s.value
	subs := s.subs
	s.mu.Unlock()

	for _, sub := range subs {
		sub(value)
	}
}

// Subscribe registers fn to run after every write.
func (s *Signal[T]) Subscribe(fn func(T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Read returns the signal's current value. Generated view code calls this
// for every state binding.
func Read[T any](s *Signal[T]) T {
	return s.Get()
}

// Memo is a lazily computed value that caches its result until
// invalidated.
type Memo[T any] struct {
	mu      sync.Mutex
	compute func() T
	value   T
	valid   bool
}

// NewMemo creates a memo over compute. The function is not called until
// the first Get.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{compute: compute}
}

// Get returns the memoized value, recomputing if it was invalidated.
func (m *Memo[T]) Get() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid {
		m.value = m.compute()
		m.valid = true
	}
	return m.value
}

// Invalidate discards the cached value so the next Get recomputes.
func (m *Memo[T]) Invalidate() {
	m.mu.Lock()
	m.valid = false
	m.mu.Unlock()
}

// Store is a keyed registry of signals for application-wide state. Entries
// are held as any; GetSignal recovers the typed signal.
type Store struct {
	mu      sync.RWMutex
	signals map[string]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{signals: make(map[string]any)}
}

// Register adds a signal under key, replacing any previous entry.
func (s *Store) Register(key string, signal any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals[key] = signal
}

// Lookup returns the raw entry for key.
func (s *Store) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.signals[key]
	return v, ok
}

// GetSignal returns the typed signal registered under key, or nil if the
// key is absent or holds a different type.
func GetSignal[T any](s *Store, key string) *Signal[T] {
	v, ok := s.Lookup(key)
	if !ok {
		return nil
	}
	sig, _ := v.(*Signal[T])
	return sig
}
