package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared by the terminal chooser
// and the tree dump.
type Styles struct {
	Header       *lipgloss.Style
	LabelTyped   *lipgloss.Style
	LabelPending *lipgloss.Style
	WindowID     *lipgloss.Style
	Title        *lipgloss.Style
	Class        *lipgloss.Style
	Info         *lipgloss.Style
	Error        *lipgloss.Style
	TreeBranch   *lipgloss.Style
	TreeNode     *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	LabelTyped: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	LabelPending: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
	),
	WindowID: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	Class: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	TreeBranch: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	TreeNode: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
