// Package kv provides a generic insertion-ordered key-value store.
package kv

// Ordered is a key-value store that remembers the order in which keys were
// first set. Setting an existing key replaces its value in place.
//
// Ordered is not safe for concurrent use.
type Ordered[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

// New creates a new ordered key-value store.
func New[K comparable, V any]() *Ordered[K, V] {
	return &Ordered[K, V]{
		index: make(map[K]int),
	}
}

// Get retrieves a value by key.
func (s *Ordered[K, V]) Get(key K) (V, bool) {
	i, ok := s.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return s.vals[i], true
}

// Has reports whether key is present.
func (s *Ordered[K, V]) Has(key K) bool {
	_, ok := s.index[key]
	return ok
}

// Set stores a value by key. New keys are appended to the end of the order.
func (s *Ordered[K, V]) Set(key K, value V) {
	if i, ok := s.index[key]; ok {
		s.vals[i] = value
		return
	}
	s.index[key] = len(s.keys)
	s.keys = append(s.keys, key)
	s.vals = append(s.vals, value)
}

// Update applies fn to the value stored under key. It returns false and does
// nothing when the key is absent.
func (s *Ordered[K, V]) Update(key K, fn func(V) V) bool {
	i, ok := s.index[key]
	if !ok {
		return false
	}
	s.vals[i] = fn(s.vals[i])
	return true
}

// Len returns the number of items in the store.
func (s *Ordered[K, V]) Len() int {
	return len(s.keys)
}

// Keys returns all keys in insertion order.
func (s *Ordered[K, V]) Keys() []K {
	keys := make([]K, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Each calls fn for every entry in insertion order. Iteration stops when fn
// returns false.
func (s *Ordered[K, V]) Each(fn func(K, V) bool) {
	for i, k := range s.keys {
		if !fn(k, s.vals[i]) {
			return
		}
	}
}
