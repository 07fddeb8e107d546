package algo

import (
	"bptree/internal/base"
)

// SplitLeaf inserts key/value at pos into a full leaf by splitting it.
//
// The d entries (existing plus new) are divided at m = ceil(d/2): leaf keeps
// [0,m), a new right leaf receives [m,d) and is linked into the leaf chain
// directly after leaf. The separator for the parent is the right leaf's first
// key, which stays in the right leaf.
func SplitLeaf[K any, V any](leaf *base.Node[K, V], pos int, key K, value V, o base.Order) (K, *base.Node[K, V]) {
	assertf(leaf.Leaf, "SplitLeaf: node is not a leaf")
	assertf(len(leaf.Keys) == o.MaxKeys(), "SplitLeaf: leaf holds %d keys, want %d", len(leaf.Keys), o.MaxKeys())

	d := int(o)
	keys := make([]K, 0, d)
	keys = append(keys, leaf.Keys[:pos]...)
	keys = append(keys, key)
	keys = append(keys, leaf.Keys[pos:]...)

	vals := make([]V, 0, d)
	vals = append(vals, leaf.Values[:pos]...)
	vals = append(vals, value)
	vals = append(vals, leaf.Values[pos:]...)

	m := o.Mid()

	right := base.NewLeaf[K, V](o)
	right.Keys = append(right.Keys, keys[m:]...)
	right.Values = append(right.Values, vals[m:]...)

	TruncateLeft(leaf, keys[:m], vals[:m], nil)

	// Chaining: leaf -> right -> leaf's old successor
	right.Next = leaf.Next
	leaf.Next = right

	return right.Keys[0], right
}

// SplitBranch inserts sep and child immediately after Children[childIdx] of a
// full internal node by splitting it.
//
// The d keys and d+1 children are divided at m = ceil(d/2): node keeps m-1
// keys and m children, a new right node receives keys [m,d) and children
// [m,d+1). Key m-1 is returned for the grandparent and kept by neither side.
func SplitBranch[K any, V any](node *base.Node[K, V], childIdx int, sep K, child *base.Node[K, V], o base.Order) (K, *base.Node[K, V]) {
	assertf(!node.Leaf, "SplitBranch: node is a leaf")
	assertf(len(node.Children) == int(o), "SplitBranch: node holds %d children, want %d", len(node.Children), int(o))

	d := int(o)
	keys := make([]K, 0, d)
	keys = append(keys, node.Keys[:childIdx]...)
	keys = append(keys, sep)
	keys = append(keys, node.Keys[childIdx:]...)

	children := make([]*base.Node[K, V], 0, d+1)
	children = append(children, node.Children[:childIdx+1]...)
	children = append(children, child)
	children = append(children, node.Children[childIdx+1:]...)

	m := o.Mid()
	promoted := keys[m-1]

	right := base.NewBranch(
		append(make([]K, 0, o.MaxKeys()), keys[m:]...),
		append(make([]*base.Node[K, V], 0, d), children[m:]...),
	)

	TruncateLeft(node, keys[:m-1], nil, children[:m])

	return promoted, right
}

// TruncateLeft overwrites node with the left portion of a split, releasing
// references held past the new length.
func TruncateLeft[K any, V any](node *base.Node[K, V], keys []K, vals []V, children []*base.Node[K, V]) {
	oldKeys := len(node.Keys)
	copy(node.Keys, keys)
	clear(node.Keys[len(keys):oldKeys])
	node.Keys = node.Keys[:len(keys)]

	if node.Leaf {
		oldVals := len(node.Values)
		copy(node.Values, vals)
		clear(node.Values[len(vals):oldVals])
		node.Values = node.Values[:len(vals)]
		return
	}

	oldChildren := len(node.Children)
	copy(node.Children, children)
	clear(node.Children[len(children):oldChildren])
	node.Children = node.Children[:len(children)]
}
