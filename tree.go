// Package bptree implements an in-memory B+ tree: an ordered index mapping
// each key to exactly one value, with point lookup, ordered iteration,
// insertion and deletion.
//
// Example usage:
//
//	tree, err := bptree.New[int, string](4)
//	if err != nil {
//		return err
//	}
//	tree.Insert(5, "five")
//	val, err := tree.Find(5) // val == "five"
//
//	for key, val := range tree.All() {
//		fmt.Println(key, val)
//	}
package bptree

import (
	"cmp"
	"fmt"

	"bptree/internal/algo"
	"bptree/internal/base"
	"bptree/internal/cache"
)

// MinDegree is the smallest degree accepted by New and NewFunc.
const MinDegree = int(base.MinOrder)

// Node is a tree node as returned by Root. It is exposed for diagnostics;
// callers must not modify it.
type Node[K any, V any] = base.Node[K, V]

// Tree is an in-memory B+ tree.
//
// Not thread-safe. Every Insert and Delete is a unit: a cascade of splits or
// merges mutates several nodes, so readers must not run concurrently with a
// writer. Wrap the tree in Synced for shared use.
type Tree[K any, V any] struct {
	order   base.Order
	compare func(a, b K) int
	root    *base.Node[K, V] // nil when empty
	size    int              // Number of live keys

	logger    Logger
	hash      func(K) uint64     // nil when keys are not hashable
	cacheSize int                // Requested lookup cache entries
	cache     *cache.Cache[K, V] // nil when disabled
	stats     Stats
}

// Stats counts structural events since the tree was created.
type Stats struct {
	LeafSplits      uint64
	BranchSplits    uint64
	Merges          uint64
	Redistributions uint64
	RootGrowths     uint64 // New root created above a split root
	RootCollapses   uint64 // Root replaced by its only child, or emptied

	CacheHits   uint64
	CacheMisses uint64
}

// frame is one level of a descent: an internal node and the index of the
// child that was taken.
type frame[K any, V any] struct {
	node  *base.Node[K, V]
	index int
}

// New creates an empty tree over an ordered key type. degree is the maximum
// number of children of an internal node; leaves hold up to degree-1 keys.
func New[K cmp.Ordered, V any](degree int, opts ...Option) (*Tree[K, V], error) {
	return newTree[K, V](degree, cmp.Compare[K], cache.HashOrdered[K], opts)
}

// NewFunc creates an empty tree ordered by compare, which must return a
// negative number, zero or a positive number as a is less than, equal to or
// greater than b.
//
// Keys are stored as given. Do not modify the underlying arrays of slice keys
// after calling Insert.
func NewFunc[K any, V any](degree int, compare func(a, b K) int, opts ...Option) (*Tree[K, V], error) {
	if compare == nil {
		return nil, fmt.Errorf("%w: nil compare function", ErrInvalidConfiguration)
	}
	return newTree[K, V](degree, compare, nil, opts)
}

func newTree[K any, V any](degree int, compare func(a, b K) int, hash func(K) uint64, opts []Option) (*Tree[K, V], error) {
	if degree < MinDegree {
		return nil, fmt.Errorf("%w: degree %d is below %d", ErrInvalidConfiguration, degree, MinDegree)
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	t := &Tree[K, V]{
		order:     base.Order(degree),
		compare:   compare,
		logger:    options.logger,
		hash:      hash,
		cacheSize: options.cacheSize,
	}

	if err := t.initCache(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Tree[K, V]) initCache() error {
	if t.cacheSize == 0 {
		return nil
	}
	if t.hash == nil {
		t.logger.Warn("lookup cache disabled: key type has no hash function", "entries", t.cacheSize)
		return nil
	}

	c, err := cache.New[K, V](t.cacheSize, t.hash, t.compare)
	if err != nil {
		return err
	}
	t.cache = c
	return nil
}

// Degree returns the maximum number of children of an internal node
func (t *Tree[K, V]) Degree() int {
	return int(t.order)
}

// Root returns the root node, or nil if the tree is empty
func (t *Tree[K, V]) Root() *Node[K, V] {
	return t.root
}

// Len returns the number of keys in the tree
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Height returns the number of levels, 0 for an empty tree
func (t *Tree[K, V]) Height() int {
	if t.root == nil {
		return 0
	}
	height := 1
	for n := t.root; !n.Leaf; n = n.Children[0] {
		height++
	}
	return height
}

// Stats returns structural and cache counters
func (t *Tree[K, V]) Stats() Stats {
	stats := t.stats
	if t.cache != nil {
		cs := t.cache.Stats()
		stats.CacheHits = cs.Hits
		stats.CacheMisses = cs.Misses
	}
	return stats
}

// Find returns the value stored for key.
// Returns ErrEmptyTree if the tree holds no keys and ErrKeyNotFound if key is
// absent.
func (t *Tree[K, V]) Find(key K) (V, error) {
	var zero V

	if t.cache != nil && t.root != nil {
		if val, ok := t.cache.Get(key); ok {
			return val, nil
		}
	}

	leaf, err := t.findLeaf(key)
	if err != nil {
		return zero, err
	}

	pos, found := algo.FindKey(leaf, key, t.compare)
	if !found {
		return zero, ErrKeyNotFound
	}

	val := leaf.Values[pos]
	if t.cache != nil {
		t.cache.Put(key, val)
	}
	return val, nil
}

// Has reports whether key is present
func (t *Tree[K, V]) Has(key K) bool {
	_, err := t.Find(key)
	return err == nil
}

// findLeaf returns the leaf responsible for key
func (t *Tree[K, V]) findLeaf(key K) (*base.Node[K, V], error) {
	if t.root == nil {
		return nil, ErrEmptyTree
	}

	n := t.root
	for !n.Leaf {
		n = n.Children[algo.FindChildIndex(n, key, t.compare)]
	}
	return n, nil
}

// descend returns the leaf responsible for key along with the internal nodes
// on the way, root first. The tree must not be empty.
func (t *Tree[K, V]) descend(key K) (*base.Node[K, V], []frame[K, V]) {
	var path []frame[K, V]

	n := t.root
	for !n.Leaf {
		i := algo.FindChildIndex(n, key, t.compare)
		path = append(path, frame[K, V]{node: n, index: i})
		n = n.Children[i]
	}
	return n, path
}

// findParent returns the internal node whose child is node, and the child's
// index, by routing node's first key from the root. Returns nil for the root.
func (t *Tree[K, V]) findParent(node *base.Node[K, V]) (*base.Node[K, V], int) {
	if t.root == nil || node == t.root || len(node.Keys) == 0 {
		return nil, -1
	}

	key := node.FirstKey()
	for p := t.root; !p.Leaf; {
		i := algo.FindChildIndex(p, key, t.compare)
		child := p.Children[i]
		if child == node {
			return p, i
		}
		p = child
	}
	return nil, -1
}

// Insert stores value under key, replacing the value of an existing key.
func (t *Tree[K, V]) Insert(key K, value V) {
	defer t.assertInvariants()

	if t.root == nil {
		leaf := base.NewLeaf[K, V](t.order)
		algo.ApplyLeafInsert(leaf, 0, key, value)
		t.root = leaf
		t.size = 1
		return
	}

	leaf, path := t.descend(key)

	pos, found := algo.FindKey(leaf, key, t.compare)
	if found {
		algo.ApplyLeafUpdate(leaf, pos, value)
		if t.cache != nil {
			t.cache.Update(key, value)
		}
		return
	}

	t.size++

	if leaf.HasRoom(t.order) {
		algo.ApplyLeafInsert(leaf, pos, key, value)
		return
	}

	sep, right := algo.SplitLeaf(leaf, pos, key, value, t.order)
	t.stats.LeafSplits++
	t.insertInParent(path, leaf, sep, right)
}

// insertInParent links right, split off left, into the tree under separator
// sep. path holds the ancestors of left; splits cascade up it.
func (t *Tree[K, V]) insertInParent(path []frame[K, V], left *base.Node[K, V], sep K, right *base.Node[K, V]) {
	for {
		if len(path) == 0 {
			// The root was split: grow the tree by one level
			t.root = base.NewBranch(
				append(make([]K, 0, t.order.MaxKeys()), sep),
				append(make([]*base.Node[K, V], 0, int(t.order)), left, right),
			)
			t.stats.RootGrowths++
			t.logger.Info("root split", "height", t.Height(), "keys", t.size)
			return
		}

		f := path[len(path)-1]
		path = path[:len(path)-1]
		parent := f.node

		if parent.HasRoom(t.order) {
			algo.ApplyChildSplit(parent, f.index, sep, right)
			return
		}

		sep, right = algo.SplitBranch(parent, f.index, sep, right, t.order)
		t.stats.BranchSplits++
		left = parent
	}
}

// Delete removes key from the tree.
// Returns ErrEmptyTree if the tree holds no keys and ErrKeyNotFound if key is
// absent; in both cases the tree is unchanged.
func (t *Tree[K, V]) Delete(key K) error {
	if t.root == nil {
		return ErrEmptyTree
	}

	leaf, path := t.descend(key)

	pos, found := algo.FindKey(leaf, key, t.compare)
	if !found {
		return ErrKeyNotFound
	}

	defer t.assertInvariants()

	algo.ApplyLeafDelete(leaf, pos)
	t.size--
	if t.cache != nil {
		t.cache.Delete(key)
	}

	t.rebalance(leaf, path)

	// A separator may still hold the removed key if it was a leaf minimum
	if pos == 0 && t.root != nil {
		t.refreshSeparator(key)
	}
	return nil
}

// rebalance resolves underflow of n, whose ancestors are path. Merges remove
// a separator from the parent, so the cascade continues there; a
// redistribution ends it.
func (t *Tree[K, V]) rebalance(n *base.Node[K, V], path []frame[K, V]) {
	for len(path) > 0 {
		if !n.IsUnderflow(t.order) {
			return
		}

		f := path[len(path)-1]
		path = path[:len(path)-1]
		parent := f.node

		// Prefer the left sibling; the leftmost child uses its right sibling
		var left, right *base.Node[K, V]
		var sepIdx int
		if f.index > 0 {
			sepIdx = f.index - 1
			left, right = parent.Children[sepIdx], n
		} else {
			sepIdx = f.index
			left, right = n, parent.Children[sepIdx+1]
		}

		if left.CanMerge(right, t.order) {
			algo.MergeNodes(left, right, parent.Keys[sepIdx])
			algo.ApplyBranchRemoveSeparator(parent, sepIdx)
			t.stats.Merges++
			n = parent
			continue
		}

		if n == right {
			algo.BorrowFromLeft(n, left, parent, sepIdx)
		} else {
			algo.BorrowFromRight(n, right, parent, sepIdx)
		}
		t.stats.Redistributions++
		return
	}

	t.shrinkRoot()
}

// shrinkRoot drops a root left with a single child, or an empty root leaf
func (t *Tree[K, V]) shrinkRoot() {
	root := t.root

	switch {
	case root.Leaf && len(root.Keys) == 0:
		t.root = nil
	case !root.Leaf && len(root.Children) == 1:
		t.root = root.Children[0]
		root.Clear()
	default:
		return
	}

	t.stats.RootCollapses++
	t.logger.Info("root collapsed", "height", t.Height(), "keys", t.size)
}

// refreshSeparator replaces the one separator equal to a deleted key with
// the minimum of the subtree to its right.
func (t *Tree[K, V]) refreshSeparator(key K) {
	for n := t.root; !n.Leaf; {
		if i, found := algo.FindKey(n, key, t.compare); found {
			n.Keys[i] = algo.MinKey(n.Children[i+1])
			return
		}
		n = n.Children[algo.FindChildIndex(n, key, t.compare)]
	}
}

// Min returns the smallest key and its value
func (t *Tree[K, V]) Min() (K, V, error) {
	var k K
	var v V
	if t.root == nil {
		return k, v, ErrEmptyTree
	}
	leaf := algo.LeftmostLeaf(t.root)
	return leaf.Keys[0], leaf.Values[0], nil
}

// Max returns the largest key and its value
func (t *Tree[K, V]) Max() (K, V, error) {
	var k K
	var v V
	if t.root == nil {
		return k, v, ErrEmptyTree
	}
	leaf := algo.RightmostLeaf(t.root)
	last := len(leaf.Keys) - 1
	return leaf.Keys[last], leaf.Values[last], nil
}

// Clear removes every key. Statistics are kept.
func (t *Tree[K, V]) Clear() {
	t.root = nil
	t.size = 0
	if t.cache != nil {
		t.cache.Purge()
	}
}

// Clone returns a deep copy of the tree structure with its own leaf chain.
// Keys and values are copied by assignment. The clone starts with zeroed
// statistics and an empty lookup cache of the same size.
func (t *Tree[K, V]) Clone() (*Tree[K, V], error) {
	cloned := &Tree[K, V]{
		order:     t.order,
		compare:   t.compare,
		size:      t.size,
		logger:    t.logger,
		hash:      t.hash,
		cacheSize: t.cacheSize,
	}

	if t.cache != nil {
		if err := cloned.initCache(); err != nil {
			return nil, fmt.Errorf("clone: %w", err)
		}
	}

	if t.root != nil {
		var prev *base.Node[K, V]
		cloned.root = cloneSubtree(t.root, &prev)
	}
	return cloned, nil
}

// cloneSubtree copies n and everything below it, chaining copied leaves in
// order after *prev.
func cloneSubtree[K any, V any](n *base.Node[K, V], prev **base.Node[K, V]) *base.Node[K, V] {
	cloned := n.Clone()

	if n.Leaf {
		if *prev != nil {
			(*prev).Next = cloned
		}
		*prev = cloned
		return cloned
	}

	for i, child := range n.Children {
		cloned.Children[i] = cloneSubtree(child, prev)
	}
	return cloned
}
