// Package tree renders a label tree for debugging.
package tree

import (
	"fmt"

	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/xorg-choose-window/internal/labeltree"
	"github.com/atomicstack/xorg-choose-window/internal/theme"
)

const maxTitleWidth = 48

// Render draws frontier as an indented tree. Internal nodes show their
// character; leaves show character, window id and title.
func Render(frontier []labeltree.Node, styles *theme.Styles) string {
	if styles == nil {
		styles = theme.Default()
	}
	leaves := len(labeltree.Leaves(frontier))
	root := ltree.Root(fmt.Sprintf("%d window(s)", leaves)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(*styles.TreeBranch)
	addChildren(root, frontier, styles)
	return root.String() + "\n"
}

func addChildren(parent *ltree.Tree, nodes []labeltree.Node, styles *theme.Styles) {
	for _, n := range nodes {
		label := styles.TreeNode.Render(string(n.Label()))
		switch node := n.(type) {
		case *labeltree.Leaf:
			line := fmt.Sprintf("%s %s", label, styles.WindowID.Render(node.Window.ID.Hex()))
			if title := ansi.Truncate(node.Window.Title, maxTitleWidth, "…"); title != "" {
				line += " " + styles.Title.Render(title)
			}
			parent.Child(line)
		case *labeltree.Internal:
			sub := ltree.Root(label).
				Enumerator(ltree.RoundedEnumerator).
				EnumeratorStyle(*styles.TreeBranch)
			addChildren(sub, node.Children, styles)
			parent.Child(sub)
		}
	}
}
