package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bptree/internal/base"
)

func TestBorrowFromLeft(t *testing.T) {
	t.Run("leaf", func(t *testing.T) {
		left := makeLeafNode([]int{1, 2, 3}, []string{"a", "b", "c"})
		node := makeLeafNode([]int{8}, []string{"h"})
		left.Next = node
		parent := makeBranchNode([]int{7}, left, node)

		BorrowFromLeft(node, left, parent, 0)

		assert.Equal(t, []int{1, 2}, left.Keys)
		assert.Equal(t, []string{"a", "b"}, left.Values)
		assert.Equal(t, []int{3, 8}, node.Keys)
		assert.Equal(t, []string{"c", "h"}, node.Values)
		assert.Equal(t, []int{3}, parent.Keys, "separator becomes the first key of the right leaf")
	})

	t.Run("branch", func(t *testing.T) {
		c := []*base.Node[int, string]{
			makeLeafNode([]int{1}, nil), makeLeafNode([]int{10}, nil), makeLeafNode([]int{20}, nil),
			makeLeafNode([]int{50}, nil),
		}
		left := makeBranchNode([]int{10, 20}, c[0], c[1], c[2])
		node := makeBranchNode(nil, c[3])
		parent := makeBranchNode([]int{50}, left, node)

		BorrowFromLeft(node, left, parent, 0)

		assert.Equal(t, []int{10}, left.Keys)
		assert.Equal(t, []*base.Node[int, string]{c[0], c[1]}, left.Children)
		assert.Equal(t, []int{50}, node.Keys, "old separator moves down")
		assert.Equal(t, []*base.Node[int, string]{c[2], c[3]}, node.Children)
		assert.Equal(t, []int{20}, parent.Keys, "sibling's last key moves up")
	})
}

func TestBorrowFromRight(t *testing.T) {
	t.Run("leaf", func(t *testing.T) {
		node := makeLeafNode([]int{1}, []string{"a"})
		right := makeLeafNode([]int{5, 6, 7}, []string{"e", "f", "g"})
		node.Next = right
		parent := makeBranchNode([]int{5}, node, right)

		BorrowFromRight(node, right, parent, 0)

		assert.Equal(t, []int{1, 5}, node.Keys)
		assert.Equal(t, []string{"a", "e"}, node.Values)
		assert.Equal(t, []int{6, 7}, right.Keys)
		assert.Equal(t, []int{6}, parent.Keys)
	})

	t.Run("branch", func(t *testing.T) {
		c := []*base.Node[int, string]{
			makeLeafNode([]int{1}, nil),
			makeLeafNode([]int{10}, nil), makeLeafNode([]int{20}, nil), makeLeafNode([]int{30}, nil),
		}
		node := makeBranchNode(nil, c[0])
		right := makeBranchNode([]int{20, 30}, c[1], c[2], c[3])
		parent := makeBranchNode([]int{10}, node, right)

		BorrowFromRight(node, right, parent, 0)

		assert.Equal(t, []int{10}, node.Keys)
		assert.Equal(t, []*base.Node[int, string]{c[0], c[1]}, node.Children)
		assert.Equal(t, []int{30}, right.Keys)
		assert.Equal(t, []*base.Node[int, string]{c[2], c[3]}, right.Children)
		assert.Equal(t, []int{20}, parent.Keys)
	})
}

func TestMergeNodes(t *testing.T) {
	t.Run("leaf", func(t *testing.T) {
		left := makeLeafNode([]int{1, 2}, []string{"a", "b"})
		right := makeLeafNode([]int{5}, []string{"e"})
		tail := makeLeafNode([]int{9}, []string{"i"})
		left.Next = right
		right.Next = tail

		MergeNodes(left, right, 5)

		assert.Equal(t, []int{1, 2, 5}, left.Keys, "leaf merge does not pull the separator down")
		assert.Equal(t, []string{"a", "b", "e"}, left.Values)
		assert.Same(t, tail, left.Next, "chain skips the removed leaf")
		assert.Empty(t, right.Keys)
		assert.Nil(t, right.Next)
	})

	t.Run("branch", func(t *testing.T) {
		c := []*base.Node[int, string]{
			makeLeafNode([]int{1}, nil), makeLeafNode([]int{10}, nil),
			makeLeafNode([]int{20}, nil), makeLeafNode([]int{30}, nil),
		}
		left := makeBranchNode([]int{10}, c[0], c[1])
		right := makeBranchNode([]int{30}, c[2], c[3])

		MergeNodes(left, right, 20)

		assert.Equal(t, []int{10, 20, 30}, left.Keys, "separator sits between the two key sets")
		assert.Equal(t, c, left.Children)
		assert.Empty(t, right.Children)
	})
}
