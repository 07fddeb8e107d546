package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bptree/internal/base"
)

func fullLeaf(o base.Order, keys ...int) *base.Node[int, string] {
	leaf := base.NewLeaf[int, string](o)
	for _, k := range keys {
		leaf.Keys = append(leaf.Keys, k)
		leaf.Values = append(leaf.Values, string(rune('a'+k%26)))
	}
	return leaf
}

func TestSplitLeaf(t *testing.T) {
	tests := []struct {
		name      string
		order     base.Order
		keys      []int
		insertKey int
		insertPos int
		wantLeft  []int
		wantRight []int
	}{
		{
			name:      "degree_4_append",
			order:     4,
			keys:      []int{5, 10, 15},
			insertKey: 20,
			insertPos: 3,
			wantLeft:  []int{5, 10},
			wantRight: []int{15, 20},
		},
		{
			name:      "degree_5_prepend",
			order:     5,
			keys:      []int{1, 2, 3, 4},
			insertKey: 0,
			insertPos: 0,
			wantLeft:  []int{0, 1, 2},
			wantRight: []int{3, 4},
		},
		{
			name:      "degree_3_middle",
			order:     3,
			keys:      []int{1, 3},
			insertKey: 2,
			insertPos: 1,
			wantLeft:  []int{1, 2},
			wantRight: []int{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf := fullLeaf(tt.order, tt.keys...)
			successor := fullLeaf(tt.order, 100)
			leaf.Next = successor

			sep, right := SplitLeaf(leaf, tt.insertPos, tt.insertKey, "new", tt.order)

			assert.Equal(t, tt.wantLeft, leaf.Keys)
			assert.Equal(t, tt.wantRight, right.Keys)
			assert.Len(t, leaf.Values, len(leaf.Keys))
			assert.Len(t, right.Values, len(right.Keys))
			assert.Equal(t, right.Keys[0], sep, "leaf split duplicates the separator")
			assert.True(t, right.Leaf)

			// Chain: leaf -> right -> old successor
			assert.Same(t, right, leaf.Next)
			assert.Same(t, successor, right.Next)
		})
	}
}

func TestSplitLeafKeepsValuesAligned(t *testing.T) {
	leaf := fullLeaf(4, 5, 10, 15)

	_, right := SplitLeaf(leaf, 1, 7, "seven", 4)

	assert.Equal(t, []int{5, 7}, leaf.Keys)
	assert.Equal(t, []string{leafValue(5), "seven"}, leaf.Values)
	assert.Equal(t, []string{leafValue(10), leafValue(15)}, right.Values)
}

func leafValue(k int) string {
	return string(rune('a' + k%26))
}

func TestSplitBranch(t *testing.T) {
	children := func(n int) []*base.Node[int, string] {
		out := make([]*base.Node[int, string], n)
		for i := range out {
			out[i] = fullLeaf(4, i)
		}
		return out
	}

	t.Run("degree_4", func(t *testing.T) {
		c := children(4)
		node := makeBranchNode([]int{10, 20, 30}, c...)
		x := fullLeaf(4, 99)

		promoted, right := SplitBranch(node, 2, 25, x, 4)

		assert.Equal(t, 20, promoted)
		assert.Equal(t, []int{10}, node.Keys)
		assert.Equal(t, []*base.Node[int, string]{c[0], c[1]}, node.Children)
		assert.Equal(t, []int{25, 30}, right.Keys)
		assert.Equal(t, []*base.Node[int, string]{c[2], x, c[3]}, right.Children)
		assert.False(t, right.Leaf)
	})

	t.Run("degree_5_last_child", func(t *testing.T) {
		c := children(5)
		node := makeBranchNode([]int{10, 20, 30, 40}, c...)
		x := fullLeaf(5, 99)

		promoted, right := SplitBranch(node, 4, 45, x, 5)

		assert.Equal(t, 30, promoted)
		assert.Equal(t, []int{10, 20}, node.Keys)
		require.Len(t, node.Children, 3)
		assert.Equal(t, []int{40, 45}, right.Keys)
		assert.Equal(t, []*base.Node[int, string]{c[3], c[4], x}, right.Children)
	})

	t.Run("promoted_key_not_retained", func(t *testing.T) {
		node := makeBranchNode([]int{10, 20}, children(3)...)

		promoted, right := SplitBranch(node, 0, 5, fullLeaf(3, 7), 3)

		assert.Equal(t, 10, promoted)
		assert.NotContains(t, node.Keys, promoted)
		assert.NotContains(t, right.Keys, promoted)
		assert.Equal(t, len(node.Keys)+1, len(node.Children))
		assert.Equal(t, len(right.Keys)+1, len(right.Children))
	})
}
