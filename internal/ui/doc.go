// Package ui lists the selectable windows in the terminal and narrows them as
// labels are typed, as an alternative to drawing overlays on the X screen.
//
// The Model owns no selection logic of its own: every typed rune is handed to
// the selector.Machine and the view is re-rendered from the machine's
// frontier. Any key that is not a single plain rune, or that the machine does
// not recognise, ends the program without a match.
//
// Messages are routed through a typed handler registry, keeping Update small.
// Harness drives a Model synchronously so tests can exercise it without a
// terminal.
package ui
