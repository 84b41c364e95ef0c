package ui

import (
	"strings"

	"github.com/atomicstack/xorg-choose-window/internal/format/table"
	"github.com/atomicstack/xorg-choose-window/internal/labeltree"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	typed := m.machine.Typed()
	header := "type a label"
	if typed != "" {
		header += ": " + typed
	}
	if help := m.keys.Cancel.Help(); help.Key != "" {
		header += " (" + help.Key + " to " + help.Desc + ")"
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render(header))
	b.WriteByte('\n')
	for _, line := range table.Fit(m.rows(typed), m.width) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// rows lists every window reachable from the frontier with its full label.
func (m *Model) rows(typed string) []string {
	var cells [][]string
	labeltree.Walk(m.machine.Frontier(), func(path []rune, n labeltree.Node) bool {
		leaf, ok := n.(*labeltree.Leaf)
		if !ok {
			return true
		}
		label := styles.LabelPending.Render(string(path))
		if typed != "" {
			label = styles.LabelTyped.Render(typed) + label
		}
		name := styles.Title.Render(leaf.Window.Title)
		if leaf.Window.Class != "" {
			name += " " + styles.Class.Render("("+leaf.Window.Class+")")
		}
		cells = append(cells, []string{
			label,
			styles.WindowID.Render(leaf.Window.ID.Hex()),
			name,
		})
		return true
	})
	return table.Format(cells, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})
}
