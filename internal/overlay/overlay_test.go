package overlay

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/xorg-choose-window/internal/alphabet"
	"github.com/atomicstack/xorg-choose-window/internal/labeltree"
	"github.com/atomicstack/xorg-choose-window/internal/logging"
	"github.com/atomicstack/xorg-choose-window/internal/selector"
	"github.com/atomicstack/xorg-choose-window/internal/window"
)

type fakeSurface struct {
	id        window.ID
	drawn     []Label
	destroyed int
}

func (s *fakeSurface) Draw(l Label) error {
	s.drawn = append(s.drawn, l)
	return nil
}

func (s *fakeSurface) Destroy() error {
	s.destroyed++
	return nil
}

type fakeFactory struct {
	surfaces map[window.ID]*fakeSurface
	created  int
	err      error
}

func newFactory() *fakeFactory {
	return &fakeFactory{surfaces: map[window.ID]*fakeSurface{}}
}

func (f *fakeFactory) CreateSurface(w window.Window) (Surface, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created++
	s := &fakeSurface{id: w.ID}
	f.surfaces[w.ID] = s
	return s, nil
}

func build(chars string, n int) ([]labeltree.Node, alphabet.Alphabet) {
	alpha := alphabet.MustParse(chars)
	windows := make([]window.Window, n)
	for i := range windows {
		windows[i] = window.Window{ID: window.ID(i + 1)}
	}
	return labeltree.Build(windows, alpha.Chars()), alpha
}

func TestPresentIsIdempotent(t *testing.T) {
	frontier, _ := build("ab", 3)
	f := newFactory()
	p := NewPresenter(f, 0)
	if err := p.Present(frontier, ""); err != nil {
		t.Fatalf("present: %v", err)
	}
	first := p.Visible()
	if err := p.Present(frontier, ""); err != nil {
		t.Fatalf("present: %v", err)
	}
	if !reflect.DeepEqual(first, p.Visible()) {
		t.Fatalf("expected identical labels, got %v then %v", first, p.Visible())
	}
	if f.created != 3 {
		t.Fatalf("expected 3 surfaces created once, got %d", f.created)
	}
	want := map[window.ID]string{1: "aa", 2: "ab", 3: "b"}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("expected %v, got %v", want, first)
	}
}

func TestLabelsCarryTypedPrefix(t *testing.T) {
	frontier, alpha := build("ab", 3)
	f := newFactory()
	p := NewPresenter(f, 0)
	m := selector.New(frontier, alpha, p)
	if _, err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := m.HandleChar('a'); err != nil {
		t.Fatalf("handle: %v", err)
	}
	want := map[window.ID]string{1: "aa", 2: "ab"}
	if got := p.Visible(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	last := f.surfaces[2].drawn[len(f.surfaces[2].drawn)-1]
	if last.Typed != "a" || last.Pending != "b" {
		t.Fatalf("expected typed a pending b, got %+v", last)
	}
	if f.surfaces[3].destroyed != 1 {
		t.Fatalf("expected pruned surface destroyed once, got %d", f.surfaces[3].destroyed)
	}
}

func TestSurfacesDestroyedExactlyOnce(t *testing.T) {
	frontier, alpha := build("abc", 20)
	f := newFactory()
	p := NewPresenter(f, 0)
	m := selector.New(frontier, alpha, p)
	if _, err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := m.HandleChar('b'); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close machine: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close presenter: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if f.created != 20 {
		t.Fatalf("expected 20 surfaces, got %d", f.created)
	}
	for id, s := range f.surfaces {
		if s.destroyed != 1 {
			t.Fatalf("window %d: expected one destroy, got %d", id, s.destroyed)
		}
	}
	if len(p.Visible()) != 0 {
		t.Fatalf("expected no visible surfaces, got %v", p.Visible())
	}
}

func TestOverlongLabelWarns(t *testing.T) {
	frontier, _ := build("ab", 3)
	f := newFactory()
	p := NewPresenter(f, 1)
	var buf strings.Builder
	restore := logging.SetStderr(&buf)
	defer restore()

	if err := p.Present(frontier, ""); err != nil {
		t.Fatalf("expected warning instead of failure, got %v", err)
	}
	if len(f.surfaces[1].drawn) != 0 {
		t.Fatalf("expected overlong label to be skipped")
	}
	if len(f.surfaces[3].drawn) != 1 {
		t.Fatalf("expected short label to be drawn")
	}
	if !strings.Contains(buf.String(), "warning: refusing to render text longer than 1 characters") {
		t.Fatalf("expected warning, got %q", buf.String())
	}
}

func TestCreateFailureIsWrapped(t *testing.T) {
	frontier, _ := build("ab", 2)
	boom := errors.New("BadAlloc")
	f := newFactory()
	f.err = boom
	err := NewPresenter(f, 0).Present(frontier, "")
	if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "create_window 0x1") {
		t.Fatalf("expected wrapped create_window error, got %v", err)
	}
}
