package base

// Order is the degree of a tree: the maximum number of children an internal
// node may hold. A leaf holds at most Order-1 entries.
type Order int

// MinOrder is the smallest degree the split and merge arithmetic supports.
const MinOrder Order = 3

// MaxKeys is the key capacity of any node
func (o Order) MaxKeys() int {
	return int(o) - 1
}

// MinKeys is the minimum key count of a non-root node, ceil(d/2)-1
func (o Order) MinKeys() int {
	return o.Mid() - 1
}

// MinChildren is the minimum child count of a non-root internal node, ceil(d/2)
func (o Order) MinChildren() int {
	return o.Mid()
}

// Mid returns the split point ceil(d/2)
func (o Order) Mid() int {
	return (int(o) + 1) / 2
}

// Node is a B+ tree node. Leaf selects the variant: leaves carry Values and
// the Next link, internal nodes carry Children.
type Node[K any, V any] struct {
	Leaf bool

	Keys     []K
	Values   []V           // Leaf only, parallel to Keys
	Children []*Node[K, V] // Internal only, len(Keys)+1

	// Next is the successor leaf in key order. It does not own the leaf it
	// points at; the rightmost leaf has Next == nil.
	Next *Node[K, V]
}

// NewLeaf allocates an empty leaf with room for a full node
func NewLeaf[K any, V any](o Order) *Node[K, V] {
	return &Node[K, V]{
		Leaf:   true,
		Keys:   make([]K, 0, o.MaxKeys()),
		Values: make([]V, 0, o.MaxKeys()),
	}
}

// NewBranch allocates an internal node holding the given separators and
// children. It takes ownership of both slices.
func NewBranch[K any, V any](keys []K, children []*Node[K, V]) *Node[K, V] {
	return &Node[K, V]{
		Keys:     keys,
		Children: children,
	}
}

// IsLeaf returns true if this is a leaf node
func (n *Node[K, V]) IsLeaf() bool {
	return n.Leaf
}

// NumKeys returns the number of keys held by the node
func (n *Node[K, V]) NumKeys() int {
	return len(n.Keys)
}

// FirstKey returns the smallest key of the node. The node must not be empty.
func (n *Node[K, V]) FirstKey() K {
	return n.Keys[0]
}

// HasRoom reports whether one more key fits without a split
func (n *Node[K, V]) HasRoom(o Order) bool {
	return len(n.Keys) < o.MaxKeys()
}

// IsUnderflow checks if node has too few entries (doesn't apply to root)
func (n *Node[K, V]) IsUnderflow(o Order) bool {
	if n.Leaf {
		return len(n.Keys) < o.MinKeys()
	}
	return len(n.Children) < o.MinChildren()
}

// IsOverflow reports a node holding more than the order allows
func (n *Node[K, V]) IsOverflow(o Order) bool {
	if n.Leaf {
		return len(n.Keys) > o.MaxKeys()
	}
	return len(n.Children) > int(o)
}

// CanMerge reports whether n and sibling fit into a single node. Internal
// nodes count children, since a merge pulls the parent separator down.
func (n *Node[K, V]) CanMerge(sibling *Node[K, V], o Order) bool {
	if n.Leaf {
		return len(n.Keys)+len(sibling.Keys) <= o.MaxKeys()
	}
	return len(n.Children)+len(sibling.Children) <= int(o)
}

// Clear drops every entry and link so a node released by a merge or a root
// collapse no longer pins keys, values or subtrees.
func (n *Node[K, V]) Clear() {
	clear(n.Keys)
	clear(n.Values)
	clear(n.Children)
	n.Keys = n.Keys[:0]
	n.Values = n.Values[:0]
	n.Children = n.Children[:0]
	n.Next = nil
}

// Clone copies the node's own keys, values and child pointers. Children are
// shared and Next is left nil; deep copies are assembled by the caller.
func (n *Node[K, V]) Clone() *Node[K, V] {
	cloned := &Node[K, V]{
		Leaf: n.Leaf,
		Keys: append(make([]K, 0, cap(n.Keys)), n.Keys...),
	}
	if n.Leaf {
		cloned.Values = append(make([]V, 0, cap(n.Values)), n.Values...)
	} else {
		cloned.Children = append(make([]*Node[K, V], 0, cap(n.Children)), n.Children...)
	}
	return cloned
}
