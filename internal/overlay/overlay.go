// Package overlay keeps one labelled surface over every window that can still
// be selected.
//
// Surfaces are created lazily the first time a leaf is presented and are
// destroyed exactly once: when the leaf is pruned from the frontier or when
// the presenter is closed.
package overlay

import (
	"fmt"

	"github.com/atomicstack/xorg-choose-window/internal/labeltree"
	"github.com/atomicstack/xorg-choose-window/internal/logging"
	"github.com/atomicstack/xorg-choose-window/internal/logging/events"
	"github.com/atomicstack/xorg-choose-window/internal/window"
)

// MaxLabelLength is the longest label text a surface will render.
const MaxLabelLength = 255

// Label is the text drawn on a surface. Typed has already been entered;
// Pending is what remains to reach the window.
type Label struct {
	Typed   string
	Pending string
}

func (l Label) String() string { return l.Typed + l.Pending }

// Len counts characters, not bytes.
func (l Label) Len() int { return len([]rune(l.Typed)) + len([]rune(l.Pending)) }

// Surface is a visible overlay covering one window.
type Surface interface {
	Draw(Label) error
	Destroy() error
}

// Factory creates surfaces matching a window's captured geometry.
type Factory interface {
	CreateSurface(w window.Window) (Surface, error)
}

type entry struct {
	surface Surface
	label   Label
}

// Presenter implements the selector's presentation contract on top of a
// Factory.
type Presenter struct {
	factory  Factory
	maxLabel int
	entries  map[*labeltree.Leaf]*entry
}

// NewPresenter returns a presenter drawing through factory. maxLabel <= 0
// selects MaxLabelLength.
func NewPresenter(factory Factory, maxLabel int) *Presenter {
	if maxLabel <= 0 {
		maxLabel = MaxLabelLength
	}
	return &Presenter{
		factory:  factory,
		maxLabel: maxLabel,
		entries:  make(map[*labeltree.Leaf]*entry),
	}
}

// Present ensures every leaf under frontier has a surface showing its full
// label, then redraws all of them.
func (p *Presenter) Present(frontier []labeltree.Node, typed string) error {
	var err error
	labeltree.Walk(frontier, func(path []rune, n labeltree.Node) bool {
		if err != nil {
			return false
		}
		leaf, ok := n.(*labeltree.Leaf)
		if !ok {
			return true
		}
		err = p.draw(leaf, Label{Typed: typed, Pending: string(path)})
		return true
	})
	if err != nil {
		return err
	}
	events.Overlay.Redraw(len(p.entries))
	return nil
}

func (p *Presenter) draw(leaf *labeltree.Leaf, label Label) error {
	e, ok := p.entries[leaf]
	if !ok {
		surface, err := p.factory.CreateSurface(leaf.Window)
		if err != nil {
			return fmt.Errorf("create_window %s: %w", leaf.Window.ID.Hex(), err)
		}
		e = &entry{surface: surface}
		p.entries[leaf] = e
		events.Overlay.Create(uint32(leaf.Window.ID), label.String())
	}
	e.label = label
	if n := label.Len(); n > p.maxLabel {
		logging.Warn("refusing to render text longer than %d characters (got %d)", p.maxLabel, n)
		events.Overlay.Skip(uint32(leaf.Window.ID), n)
		return nil
	}
	if err := e.surface.Draw(label); err != nil {
		return fmt.Errorf("draw_text %s: %w", leaf.Window.ID.Hex(), err)
	}
	return nil
}

// Discard destroys the surfaces of every leaf under n.
func (p *Presenter) Discard(n labeltree.Node) error {
	var first error
	for _, leaf := range labeltree.Leaves([]labeltree.Node{n}) {
		if err := p.destroy(leaf); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (p *Presenter) destroy(leaf *labeltree.Leaf) error {
	e, ok := p.entries[leaf]
	if !ok {
		return nil
	}
	delete(p.entries, leaf)
	events.Overlay.Destroy(uint32(leaf.Window.ID))
	if err := e.surface.Destroy(); err != nil {
		return fmt.Errorf("destroy_window %s: %w", leaf.Window.ID.Hex(), err)
	}
	return nil
}

// Close destroys every remaining surface.
func (p *Presenter) Close() error {
	var first error
	for leaf := range p.entries {
		if err := p.destroy(leaf); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Visible returns the label currently shown for each window.
func (p *Presenter) Visible() map[window.ID]string {
	out := make(map[window.ID]string, len(p.entries))
	for leaf, e := range p.entries {
		out[leaf.Window.ID] = e.label.String()
	}
	return out
}
