package bptree

import (
	"fmt"
	"strings"

	"bptree/internal/algo"
	"bptree/internal/base"
)

// Verify walks the whole tree and checks its structural invariants: key
// order, separator bounds, node occupancy, uniform leaf depth, the leaf chain
// and the key count. It returns an error wrapping ErrInvariantViolated
// describing the first violation found.
func (t *Tree[K, V]) Verify() error {
	err := t.verify()
	if err != nil {
		t.logger.Error("tree verification failed", "error", err)
	}
	return err
}

// verifier carries state across the recursive walk
type verifier[K any, V any] struct {
	t         *Tree[K, V]
	leafDepth int
	leaves    []*base.Node[K, V]
}

// bound is an optional separator limit
type bound[K any] struct {
	key K
	set bool
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolated, fmt.Sprintf(format, args...))
}

func (t *Tree[K, V]) verify() error {
	if t.root == nil {
		if t.size != 0 {
			return violation("empty tree reports %d keys", t.size)
		}
		return nil
	}

	if t.root.Leaf && len(t.root.Keys) == 0 {
		return violation("root leaf is empty")
	}
	if !t.root.Leaf && len(t.root.Children) < 2 {
		return violation("root has %d children", len(t.root.Children))
	}

	v := &verifier[K, V]{t: t, leafDepth: -1}
	if err := v.node(t.root, 0, bound[K]{}, bound[K]{}); err != nil {
		return err
	}

	// The chain must visit exactly the leaves found by the walk, in order
	count := 0
	for i, leaf := range v.leaves {
		var want *base.Node[K, V]
		if i+1 < len(v.leaves) {
			want = v.leaves[i+1]
		}
		if leaf.Next != want {
			return violation("leaf %d (first key %v) breaks the chain", i, leaf.Keys[0])
		}
		if i > 0 && t.compare(v.leaves[i-1].Keys[len(v.leaves[i-1].Keys)-1], leaf.Keys[0]) >= 0 {
			return violation("leaf %d overlaps its predecessor", i)
		}
		count += len(leaf.Keys)
	}

	if count != t.size {
		return violation("leaves hold %d keys, tree reports %d", count, t.size)
	}
	return nil
}

func (v *verifier[K, V]) node(n *base.Node[K, V], depth int, lo, hi bound[K]) error {
	t := v.t

	if n.IsOverflow(t.order) || len(n.Keys) > t.order.MaxKeys() {
		return violation("node at depth %d holds %d keys, max %d", depth, len(n.Keys), t.order.MaxKeys())
	}
	if n != t.root && n.IsUnderflow(t.order) {
		return violation("node at depth %d with first key %v underflows", depth, firstKeyOf(n))
	}

	for i, k := range n.Keys {
		if i > 0 && t.compare(n.Keys[i-1], k) >= 0 {
			return violation("keys %v and %v out of order at depth %d", n.Keys[i-1], k, depth)
		}
		if lo.set && t.compare(k, lo.key) < 0 {
			return violation("key %v below separator %v", k, lo.key)
		}
		if hi.set && t.compare(k, hi.key) >= 0 {
			return violation("key %v not below separator %v", k, hi.key)
		}
	}

	if n.Leaf {
		if len(n.Values) != len(n.Keys) {
			return violation("leaf holds %d keys and %d values", len(n.Keys), len(n.Values))
		}
		if len(n.Children) != 0 {
			return violation("leaf has children")
		}
		if v.leafDepth == -1 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return violation("leaves at depth %d and %d", v.leafDepth, depth)
		}
		v.leaves = append(v.leaves, n)
		return nil
	}

	if len(n.Children) != len(n.Keys)+1 {
		return violation("internal node holds %d keys and %d children", len(n.Keys), len(n.Children))
	}

	for i, child := range n.Children {
		childLo, childHi := lo, hi
		if i > 0 {
			childLo = bound[K]{key: n.Keys[i-1], set: true}
			if lowest := algo.MinKey(child); t.compare(lowest, n.Keys[i-1]) != 0 {
				return violation("separator %v differs from subtree minimum %v", n.Keys[i-1], lowest)
			}
		}
		if i < len(n.Keys) {
			childHi = bound[K]{key: n.Keys[i], set: true}
		}

		if err := v.node(child, depth+1, childLo, childHi); err != nil {
			return err
		}

		if parent, idx := t.findParent(child); parent != n || idx != i {
			return violation("parent lookup for child %d at depth %d disagrees with the walk", i, depth+1)
		}
	}
	return nil
}

func firstKeyOf[K any, V any](n *base.Node[K, V]) any {
	if len(n.Keys) == 0 {
		return "<empty>"
	}
	return n.FirstKey()
}

// String renders the tree one level per line, each node as [k1 k2 ...].
func (t *Tree[K, V]) String() string {
	var sb strings.Builder

	level := []*base.Node[K, V]{t.root}
	if t.root == nil {
		level = nil
	}

	for len(level) > 0 {
		var next []*base.Node[K, V]
		for i, n := range level {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%v", n.Keys)
			next = append(next, n.Children...)
		}
		sb.WriteByte('\n')
		level = next
	}
	return sb.String()
}
