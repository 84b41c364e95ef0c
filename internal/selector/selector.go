// Package selector narrows a label tree one keystroke at a time until a
// single window remains or the input stops matching.
package selector

import (
	"fmt"

	"github.com/atomicstack/xorg-choose-window/internal/alphabet"
	"github.com/atomicstack/xorg-choose-window/internal/labeltree"
	"github.com/atomicstack/xorg-choose-window/internal/logging/events"
	"github.com/atomicstack/xorg-choose-window/internal/window"
)

// State is the machine's position in the selection lifecycle.
type State int

const (
	Ready State = iota
	Matched
	NoMatch
	Empty
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Matched:
		return "matched"
	case NoMatch:
		return "nomatch"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further input will be consumed.
func (s State) Terminal() bool { return s != Ready }

// Presenter displays the frontier. typed is the prefix already consumed;
// every label under the frontier starts with it.
type Presenter interface {
	Present(frontier []labeltree.Node, typed string) error
	// Discard releases whatever was shown for n and its descendants.
	Discard(n labeltree.Node) error
}

// NopPresenter shows nothing.
type NopPresenter struct{}

func (NopPresenter) Present([]labeltree.Node, string) error { return nil }
func (NopPresenter) Discard(labeltree.Node) error           { return nil }

// Machine holds the frontier and consumes input.
type Machine struct {
	alphabet  alphabet.Alphabet
	presenter Presenter
	frontier  []labeltree.Node
	typed     []rune
	state     State
	match     window.Window
	started   bool
}

// New prepares a machine over an already-built frontier. A nil presenter is
// replaced by NopPresenter.
func New(frontier []labeltree.Node, alpha alphabet.Alphabet, p Presenter) *Machine {
	if p == nil {
		p = NopPresenter{}
	}
	return &Machine{alphabet: alpha, presenter: p, frontier: frontier}
}

// Start performs the initial transition: Empty for no windows, Matched for a
// lone leaf, otherwise Ready with the frontier presented.
func (m *Machine) Start() (State, error) {
	if m.started {
		return m.state, nil
	}
	m.started = true
	switch {
	case len(m.frontier) == 0:
		m.state = Empty
	case len(m.frontier) == 1:
		if leaf, ok := m.frontier[0].(*labeltree.Leaf); ok {
			m.state = Matched
			m.match = leaf.Window
		}
	}
	if m.state == Ready {
		if err := m.presenter.Present(m.frontier, ""); err != nil {
			return m.state, err
		}
	}
	events.Selection.Start(m.state.String(), len(m.frontier))
	if m.state == Matched {
		events.Selection.Match("", uint32(m.match.ID))
	}
	return m.state, nil
}

// HandleKeysym translates an input key through the alphabet and applies it.
// Keys outside the alphabet end the selection with NoMatch.
func (m *Machine) HandleKeysym(sym alphabet.Keysym) (State, error) {
	if err := m.ensureStarted(); err != nil {
		return m.state, err
	}
	if m.state.Terminal() {
		return m.state, nil
	}
	c, ok := m.alphabet.CharForKeysym(sym)
	events.Selection.Key(uint32(sym), string(c))
	if !ok {
		return m.fail(events.ReasonUnmapped), nil
	}
	return m.HandleChar(c)
}

// HandleChar applies one typed character.
func (m *Machine) HandleChar(c rune) (State, error) {
	if err := m.ensureStarted(); err != nil {
		return m.state, err
	}
	if m.state.Terminal() {
		return m.state, nil
	}
	if !m.alphabet.Contains(c) {
		return m.fail(events.ReasonUnmapped), nil
	}
	found, ok := labeltree.Find(m.frontier, c)
	if !ok {
		return m.fail(events.ReasonNoNode), nil
	}
	m.typed = append(m.typed, c)

	switch n := found.(type) {
	case *labeltree.Leaf:
		m.state = Matched
		m.match = n.Window
		events.Selection.Match(string(m.typed), uint32(n.Window.ID))
		return m.state, nil
	case *labeltree.Internal:
		for _, sibling := range m.frontier {
			if sibling == found {
				continue
			}
			if err := m.presenter.Discard(sibling); err != nil {
				return m.state, err
			}
		}
		m.frontier = n.Children
		events.Selection.Descend(string(m.typed), len(m.frontier))
		if err := m.presenter.Present(m.frontier, string(m.typed)); err != nil {
			return m.state, err
		}
	}
	return m.state, nil
}

func (m *Machine) ensureStarted() error {
	if m.started {
		return nil
	}
	_, err := m.Start()
	return err
}

// Cancel ends the selection without a match.
func (m *Machine) Cancel() State {
	if m.state.Terminal() {
		return m.state
	}
	return m.fail(events.ReasonEscape)
}

func (m *Machine) fail(reason events.NoMatchReason) State {
	m.state = NoMatch
	events.Selection.NoMatch(string(m.typed), reason)
	return m.state
}

// Redraw re-presents the current frontier, typically after an exposure.
func (m *Machine) Redraw() error {
	if m.state != Ready {
		return nil
	}
	return m.presenter.Present(m.frontier, string(m.typed))
}

// Close discards everything still on the frontier. It is safe to call more
// than once.
func (m *Machine) Close() error {
	var first error
	for _, n := range m.frontier {
		if err := m.presenter.Discard(n); err != nil && first == nil {
			first = err
		}
	}
	m.frontier = nil
	return first
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Match returns the chosen window once the machine is Matched.
func (m *Machine) Match() (window.Window, bool) {
	return m.match, m.state == Matched
}

// Frontier returns the nodes currently eligible for selection.
func (m *Machine) Frontier() []labeltree.Node { return m.frontier }

// Typed returns the characters consumed so far.
func (m *Machine) Typed() string { return string(m.typed) }
