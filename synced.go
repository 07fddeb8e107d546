package bptree

import (
	"iter"
	"sync"
)

// Synced guards a Tree with a readers-writer lock. Reads share the lock
// unless the tree has a lookup cache, whose recency bookkeeping makes every
// Find a write.
//
// Iterators returned by All and Range hold the read lock until the loop
// ends; do not call writing methods from inside the loop body.
type Synced[K any, V any] struct {
	mu     sync.RWMutex
	tree   *Tree[K, V]
	shared bool // Find may run under RLock
}

// NewSynced wraps tree. The caller must not use tree directly afterwards.
func NewSynced[K any, V any](tree *Tree[K, V]) *Synced[K, V] {
	return &Synced[K, V]{
		tree:   tree,
		shared: tree.cache == nil,
	}
}

func (s *Synced[K, V]) rlock() func() {
	if s.shared {
		s.mu.RLock()
		return s.mu.RUnlock
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Find returns the value stored for key
func (s *Synced[K, V]) Find(key K) (V, error) {
	defer s.rlock()()
	return s.tree.Find(key)
}

// Has reports whether key is present
func (s *Synced[K, V]) Has(key K) bool {
	defer s.rlock()()
	return s.tree.Has(key)
}

// Insert stores value under key
func (s *Synced[K, V]) Insert(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Insert(key, value)
}

// Delete removes key
func (s *Synced[K, V]) Delete(key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Delete(key)
}

// Len returns the number of keys
func (s *Synced[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}

// Stats returns a snapshot of the tree counters
func (s *Synced[K, V]) Stats() Stats {
	defer s.rlock()()
	return s.tree.Stats()
}

// Verify checks the tree invariants
func (s *Synced[K, V]) Verify() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Verify()
}

// Clone returns an unsynchronized deep copy
func (s *Synced[K, V]) Clone() (*Tree[K, V], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Clone()
}

// All yields every pair in ascending key order under the read lock
func (s *Synced[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for k, v := range s.tree.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Range yields pairs with from <= key < to under the read lock
func (s *Synced[K, V]) Range(from, to K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for k, v := range s.tree.Range(from, to) {
			if !yield(k, v) {
				return
			}
		}
	}
}
