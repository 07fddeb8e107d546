package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"bptree"
)

var (
	branchColor = color.New(color.FgCyan, color.Bold)
	leafColor   = color.New(color.FgGreen)
	levelColor  = color.New(color.Faint)
)

// Visualizer renders a tree level by level. Internal nodes and leaves are
// printed in distinct colors; leaves are joined by arrows following the leaf
// chain.
type Visualizer struct {
	Tree *bptree.Tree[string, string]
}

// Visualize returns the rendering, or "(empty)" for an empty tree
func (v *Visualizer) Visualize() string {
	root := v.Tree.Root()
	if root == nil {
		return "(empty)"
	}

	var sb strings.Builder
	level := []*bptree.Node[string, string]{root}

	for depth := 0; len(level) > 0; depth++ {
		sb.WriteString(levelColor.Sprintf("L%d ", depth))

		var next []*bptree.Node[string, string]
		for i, n := range level {
			if n.IsLeaf() {
				if i > 0 {
					sb.WriteString(" -> ")
				}
				sb.WriteString(leafColor.Sprint(formatKeys(n.Keys)))
				continue
			}
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(branchColor.Sprint(formatKeys(n.Keys)))
			next = append(next, n.Children...)
		}

		sb.WriteByte('\n')
		level = next
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func formatKeys(keys []string) string {
	return fmt.Sprintf("[%s]", strings.Join(keys, " "))
}
