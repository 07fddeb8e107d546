package algo

import (
	"slices"

	"bptree/internal/base"
)

// BorrowFromLeft moves last element from left sibling to beginning of node
// Updates parent separator key at parentKeyIdx, the separator between them
func BorrowFromLeft[K any, V any](node, leftSibling, parent *base.Node[K, V], parentKeyIdx int) {
	assertf(parent.Children[parentKeyIdx] == leftSibling && parent.Children[parentKeyIdx+1] == node,
		"BorrowFromLeft: separator %d does not split the pair", parentKeyIdx)

	last := len(leftSibling.Keys) - 1

	if node.Leaf {
		node.Keys = slices.Insert(node.Keys, 0, leftSibling.Keys[last])
		node.Values = slices.Insert(node.Values, 0, leftSibling.Values[last])

		leftSibling.Keys = slices.Delete(leftSibling.Keys, last, last+1)
		leftSibling.Values = slices.Delete(leftSibling.Values, last, last+1)

		// Separator is the first key of the right-hand leaf
		parent.Keys[parentKeyIdx] = node.Keys[0]
		return
	}

	// Branch borrow: rotate through the parent
	lastChild := len(leftSibling.Children) - 1

	node.Keys = slices.Insert(node.Keys, 0, parent.Keys[parentKeyIdx])
	node.Children = slices.Insert(node.Children, 0, leftSibling.Children[lastChild])
	parent.Keys[parentKeyIdx] = leftSibling.Keys[last]

	leftSibling.Keys = slices.Delete(leftSibling.Keys, last, last+1)
	leftSibling.Children = slices.Delete(leftSibling.Children, lastChild, lastChild+1)
}

// BorrowFromRight moves first element from right sibling to end of node
// Updates parent separator key at parentKeyIdx, the separator between them
func BorrowFromRight[K any, V any](node, rightSibling, parent *base.Node[K, V], parentKeyIdx int) {
	assertf(parent.Children[parentKeyIdx] == node && parent.Children[parentKeyIdx+1] == rightSibling,
		"BorrowFromRight: separator %d does not split the pair", parentKeyIdx)

	if node.Leaf {
		node.Keys = append(node.Keys, rightSibling.Keys[0])
		node.Values = append(node.Values, rightSibling.Values[0])

		rightSibling.Keys = slices.Delete(rightSibling.Keys, 0, 1)
		rightSibling.Values = slices.Delete(rightSibling.Values, 0, 1)

		// Separator is the new first key of the right sibling
		parent.Keys[parentKeyIdx] = rightSibling.Keys[0]
		return
	}

	// Branch borrow: rotate through the parent
	node.Keys = append(node.Keys, parent.Keys[parentKeyIdx])
	node.Children = append(node.Children, rightSibling.Children[0])
	parent.Keys[parentKeyIdx] = rightSibling.Keys[0]

	rightSibling.Keys = slices.Delete(rightSibling.Keys, 0, 1)
	rightSibling.Children = slices.Delete(rightSibling.Children, 0, 1)
}

// MergeNodes folds rightNode into leftNode, its immediate right sibling.
// For branch nodes the parent separator is pulled down between the two key
// sets; for leaves the chain skips rightNode. rightNode is cleared.
// Does NOT update parent - caller must call ApplyBranchRemoveSeparator
func MergeNodes[K any, V any](leftNode, rightNode *base.Node[K, V], separatorKey K) {
	assertf(leftNode.Leaf == rightNode.Leaf, "MergeNodes: mixed leaf and branch")

	if leftNode.Leaf {
		assertf(leftNode.Next == rightNode, "MergeNodes: leaves are not chained")

		leftNode.Keys = append(leftNode.Keys, rightNode.Keys...)
		leftNode.Values = append(leftNode.Values, rightNode.Values...)
		leftNode.Next = rightNode.Next
	} else {
		leftNode.Keys = append(leftNode.Keys, separatorKey)
		leftNode.Keys = append(leftNode.Keys, rightNode.Keys...)
		leftNode.Children = append(leftNode.Children, rightNode.Children...)
	}

	rightNode.Clear()
}
