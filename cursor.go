package bptree

import (
	"iter"

	"bptree/internal/algo"
	"bptree/internal/base"
)

// Cursor provides ordered iteration over tree keys.
// A cursor is invalidated by any Insert or Delete on its tree.
type Cursor[K any, V any] struct {
	tree  *Tree[K, V]
	leaf  *base.Node[K, V] // Current leaf, nil when invalid
	index int              // Position within leaf
}

// Cursor creates a new cursor for this tree
// Cursor starts in invalid state - call First, Last or Seek to position it
func (t *Tree[K, V]) Cursor() *Cursor[K, V] {
	return &Cursor[K, V]{tree: t}
}

// First positions cursor at the smallest key
func (c *Cursor[K, V]) First() bool {
	c.leaf = nil
	if c.tree.root == nil {
		return false
	}
	c.leaf = algo.LeftmostLeaf(c.tree.root)
	c.index = 0
	return true
}

// Last positions cursor at the largest key
func (c *Cursor[K, V]) Last() bool {
	c.leaf = nil
	if c.tree.root == nil {
		return false
	}
	c.leaf = algo.RightmostLeaf(c.tree.root)
	c.index = len(c.leaf.Keys) - 1
	return true
}

// Seek positions cursor at the first key >= key
// Returns false if every key is smaller
func (c *Cursor[K, V]) Seek(key K) bool {
	leaf, err := c.tree.findLeaf(key)
	if err != nil {
		c.leaf = nil
		return false
	}

	pos, _ := algo.FindKey(leaf, key, c.tree.compare)
	c.leaf, c.index = leaf, pos
	if pos == len(leaf.Keys) {
		// Everything in this leaf is smaller; the successor starts above key
		c.leaf, c.index = leaf.Next, 0
	}
	return c.leaf != nil
}

// Next advances to the following key in ascending order
func (c *Cursor[K, V]) Next() bool {
	if c.leaf == nil {
		return false
	}

	c.index++
	if c.index >= len(c.leaf.Keys) {
		c.leaf, c.index = c.leaf.Next, 0
	}
	return c.leaf != nil
}

// Prev moves to the preceding key
func (c *Cursor[K, V]) Prev() bool {
	if c.leaf == nil {
		return false
	}

	c.index--
	if c.index < 0 {
		// The chain only links forward: find the previous leaf from the root
		c.leaf = c.tree.leafBefore(c.leaf.FirstKey())
		if c.leaf != nil {
			c.index = len(c.leaf.Keys) - 1
		}
	}
	return c.leaf != nil
}

// Valid returns true if cursor is positioned on a valid key
func (c *Cursor[K, V]) Valid() bool {
	return c.leaf != nil
}

// Key returns the key at the cursor position. The cursor must be valid.
func (c *Cursor[K, V]) Key() K {
	return c.leaf.Keys[c.index]
}

// Value returns the value at the cursor position. The cursor must be valid.
func (c *Cursor[K, V]) Value() V {
	return c.leaf.Values[c.index]
}

// leafBefore returns the leaf holding the greatest key below key, or nil.
// It relies on every separator equaling the minimum of its right subtree.
func (t *Tree[K, V]) leafBefore(key K) *base.Node[K, V] {
	if t.root == nil {
		return nil
	}

	n := t.root
	for !n.Leaf {
		n = n.Children[algo.FindLowerIndex(n, key, t.compare)]
	}

	if len(n.Keys) == 0 || t.compare(n.Keys[0], key) >= 0 {
		return nil
	}
	return n
}

// All implements iter.Seq2[K, V], iterating every pair in ascending key
// order along the leaf chain. Each call restarts from the leftmost leaf.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.root == nil {
			return
		}
		for leaf := algo.LeftmostLeaf(t.root); leaf != nil; leaf = leaf.Next {
			for i := range leaf.Keys {
				if !yield(leaf.Keys[i], leaf.Values[i]) {
					return
				}
			}
		}
	}
}

// Keys iterates every key in ascending order
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Ascend iterates pairs with keys >= from in ascending order
func (t *Tree[K, V]) Ascend(from K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c := t.Cursor()
		for ok := c.Seek(from); ok; ok = c.Next() {
			if !yield(c.Key(), c.Value()) {
				return
			}
		}
	}
}

// Range iterates pairs with from <= key < to in ascending order
func (t *Tree[K, V]) Range(from, to K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range t.Ascend(from) {
			if t.compare(k, to) >= 0 || !yield(k, v) {
				return
			}
		}
	}
}

// Backward iterates every pair in descending key order
func (t *Tree[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c := t.Cursor()
		for ok := c.Last(); ok; ok = c.Prev() {
			if !yield(c.Key(), c.Value()) {
				return
			}
		}
	}
}
