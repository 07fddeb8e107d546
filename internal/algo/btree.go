// Package algo contains algorithms used for traversing and editing a b+ tree.
package algo

import (
	"slices"
	"sort"

	"bptree/internal/base"
)

const searchThreshold = 32

// FindChildIndex returns the index of child pointer to follow for key: the
// first i with key < Keys[i], so keys equal to a separator go right.
func FindChildIndex[K any, V any](node *base.Node[K, V], key K, compare func(a, b K) int) int {
	keys := node.Keys

	if len(keys) < searchThreshold {
		i := 0
		for i < len(keys) && compare(key, keys[i]) >= 0 {
			i++
		}
		return i
	}

	return sort.Search(len(keys), func(i int) bool {
		return compare(key, keys[i]) < 0
	})
}

// FindKey returns the position of key in node and whether it is present.
// When absent, the position is where key would be inserted.
func FindKey[K any, V any](node *base.Node[K, V], key K, compare func(a, b K) int) (int, bool) {
	keys := node.Keys

	if len(keys) < searchThreshold {
		pos := 0
		for pos < len(keys) {
			c := compare(key, keys[pos])
			if c == 0 {
				return pos, true
			}
			if c < 0 {
				break
			}
			pos++
		}
		return pos, false
	}

	return slices.BinarySearchFunc(keys, key, compare)
}

// FindLowerIndex returns the number of keys in node strictly less than key.
// Descending by it reaches the leaf holding the greatest key below key.
func FindLowerIndex[K any, V any](node *base.Node[K, V], key K, compare func(a, b K) int) int {
	return sort.Search(len(node.Keys), func(i int) bool {
		return compare(node.Keys[i], key) >= 0
	})
}

// ApplyLeafUpdate replaces the value stored at pos
func ApplyLeafUpdate[K any, V any](node *base.Node[K, V], pos int, value V) {
	node.Values[pos] = value
}

// ApplyLeafInsert inserts new key-value at position
// Assumes node has space
func ApplyLeafInsert[K any, V any](node *base.Node[K, V], pos int, key K, value V) {
	node.Keys = slices.Insert(node.Keys, pos, key)
	node.Values = slices.Insert(node.Values, pos, value)
}

// ApplyLeafDelete removes key at position
func ApplyLeafDelete[K any, V any](node *base.Node[K, V], idx int) {
	node.Keys = slices.Delete(node.Keys, idx, idx+1)
	node.Values = slices.Delete(node.Values, idx, idx+1)
}

// ApplyChildSplit records that the child at childIdx was split: sep and the
// new right sibling are inserted immediately after it.
// Assumes parent has space
func ApplyChildSplit[K any, V any](parent *base.Node[K, V], childIdx int, sep K, right *base.Node[K, V]) {
	parent.Keys = slices.Insert(parent.Keys, childIdx, sep)
	parent.Children = slices.Insert(parent.Children, childIdx+1, right)
}

// ApplyBranchRemoveSeparator removes separator key and child after merge
// Removes the separator at sepIdx and the child at sepIdx+1
func ApplyBranchRemoveSeparator[K any, V any](node *base.Node[K, V], sepIdx int) {
	node.Keys = slices.Delete(node.Keys, sepIdx, sepIdx+1)
	node.Children = slices.Delete(node.Children, sepIdx+1, sepIdx+2)
}

// MinKey returns the smallest key reachable from node
func MinKey[K any, V any](node *base.Node[K, V]) K {
	for !node.Leaf {
		node = node.Children[0]
	}
	return node.Keys[0]
}

// LeftmostLeaf descends along first children
func LeftmostLeaf[K any, V any](node *base.Node[K, V]) *base.Node[K, V] {
	for !node.Leaf {
		node = node.Children[0]
	}
	return node
}

// RightmostLeaf descends along last children
func RightmostLeaf[K any, V any](node *base.Node[K, V]) *base.Node[K, V] {
	for !node.Leaf {
		node = node.Children[len(node.Children)-1]
	}
	return node
}
