package selector

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/xorg-choose-window/internal/alphabet"
	"github.com/atomicstack/xorg-choose-window/internal/labeltree"
	"github.com/atomicstack/xorg-choose-window/internal/window"
)

type recordingPresenter struct {
	presented []string
	discarded []rune
	err       error
}

func (r *recordingPresenter) Present(frontier []labeltree.Node, typed string) error {
	var b strings.Builder
	b.WriteString(typed)
	b.WriteByte(':')
	for _, n := range frontier {
		b.WriteRune(n.Label())
	}
	r.presented = append(r.presented, b.String())
	return r.err
}

func (r *recordingPresenter) Discard(n labeltree.Node) error {
	r.discarded = append(r.discarded, n.Label())
	return nil
}

func windows(ids ...window.ID) []window.Window {
	out := make([]window.Window, len(ids))
	for i, id := range ids {
		out[i] = window.Window{ID: id}
	}
	return out
}

func newMachine(t *testing.T, chars string, ids ...window.ID) (*Machine, *recordingPresenter) {
	t.Helper()
	alpha := alphabet.MustParse(chars)
	p := &recordingPresenter{}
	return New(labeltree.Build(windows(ids...), alpha.Chars()), alpha, p), p
}

func TestStartStates(t *testing.T) {
	m, p := newMachine(t, "xy")
	if state, err := m.Start(); err != nil || state != Empty {
		t.Fatalf("expected empty, got %v (%v)", state, err)
	}
	if len(p.presented) != 0 {
		t.Fatalf("expected nothing presented, got %v", p.presented)
	}

	m, p = newMachine(t, "xy", 42)
	if state, err := m.Start(); err != nil || state != Matched {
		t.Fatalf("expected matched, got %v (%v)", state, err)
	}
	if w, ok := m.Match(); !ok || w.ID != 42 {
		t.Fatalf("expected match 42, got %v/%v", w.ID, ok)
	}
	if len(p.presented) != 0 {
		t.Fatalf("expected nothing presented for a lone window, got %v", p.presented)
	}

	m, p = newMachine(t, "ab", 100, 200, 300)
	if state, err := m.Start(); err != nil || state != Ready {
		t.Fatalf("expected ready, got %v (%v)", state, err)
	}
	if len(p.presented) != 1 || p.presented[0] != ":ab" {
		t.Fatalf("expected initial frontier presented, got %v", p.presented)
	}
}

func TestThreeWindowScenario(t *testing.T) {
	cases := []struct {
		keys  string
		state State
		id    window.ID
	}{
		{"b", Matched, 300},
		{"aa", Matched, 100},
		{"ab", Matched, 200},
		{"c", NoMatch, 0},
	}
	for _, tc := range cases {
		m, _ := newMachine(t, "ab", 100, 200, 300)
		if _, err := m.Start(); err != nil {
			t.Fatalf("start: %v", err)
		}
		var state State
		for _, c := range tc.keys {
			var err error
			state, err = m.HandleKeysym(alphabet.Keysym(c))
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.keys, err)
			}
		}
		if state != tc.state {
			t.Fatalf("%s: expected %v, got %v", tc.keys, tc.state, state)
		}
		if w, ok := m.Match(); ok && w.ID != tc.id {
			t.Fatalf("%s: expected window %d, got %d", tc.keys, tc.id, w.ID)
		}
	}
}

func TestDescendDiscardsSiblingsAndPresents(t *testing.T) {
	m, p := newMachine(t, "ab", 100, 200, 300)
	if _, err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if state, err := m.HandleChar('a'); err != nil || state != Ready {
		t.Fatalf("expected ready after a, got %v (%v)", state, err)
	}
	if string(p.discarded) != "b" {
		t.Fatalf("expected sibling b discarded, got %q", string(p.discarded))
	}
	if got := p.presented[len(p.presented)-1]; got != "a:ab" {
		t.Fatalf("expected frontier a:ab presented, got %s", got)
	}
	if m.Typed() != "a" || len(m.Frontier()) != 2 {
		t.Fatalf("expected typed a with 2 frontier nodes, got %q/%d", m.Typed(), len(m.Frontier()))
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if string(p.discarded) != "bab" {
		t.Fatalf("expected remaining frontier discarded on close, got %q", string(p.discarded))
	}
	if err := m.Close(); err != nil || string(p.discarded) != "bab" {
		t.Fatalf("expected second close to be a no-op")
	}
}

func TestRoundTripEveryLeaf(t *testing.T) {
	for _, chars := range []string{"ab", "asdf", "0123456789"} {
		alpha := alphabet.MustParse(chars)
		ids := make([]window.ID, 57)
		for i := range ids {
			ids[i] = window.ID(i + 1)
		}
		paths := map[string]window.ID{}
		labeltree.Walk(labeltree.Build(windows(ids...), alpha.Chars()), func(path []rune, n labeltree.Node) bool {
			if leaf, ok := n.(*labeltree.Leaf); ok {
				paths[string(path)] = leaf.Window.ID
			}
			return true
		})
		if len(paths) != len(ids) {
			t.Fatalf("%s: expected %d leaves, got %d", chars, len(ids), len(paths))
		}
		for path, id := range paths {
			m := New(labeltree.Build(windows(ids...), alpha.Chars()), alpha, nil)
			state, err := m.Start()
			for _, c := range path {
				if err != nil {
					t.Fatalf("%s/%s: unexpected error %v", chars, path, err)
				}
				if state != Ready {
					t.Fatalf("%s/%s: expected ready before %c, got %v", chars, path, c, state)
				}
				state, err = m.HandleChar(c)
			}
			if w, ok := m.Match(); !ok || w.ID != id {
				t.Fatalf("%s/%s: expected match %d, got %v/%v", chars, path, id, w.ID, ok)
			}
		}
	}
}

func TestUnknownKeysYieldNoMatch(t *testing.T) {
	for _, sym := range []alphabet.Keysym{'c', 'A', 0xff1b, 0} {
		m, _ := newMachine(t, "ab", 1, 2, 3, 4, 5)
		if _, err := m.HandleKeysym('a'); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state, _ := m.HandleKeysym(sym); state != NoMatch {
			t.Fatalf("keysym %#x: expected nomatch, got %v", sym, state)
		}
		if state, _ := m.HandleKeysym('a'); state != NoMatch {
			t.Fatalf("expected terminal state to persist, got %v", state)
		}
	}
}

func TestAlphabetCharMissingFromFrontier(t *testing.T) {
	m, _ := newMachine(t, "abc", 1, 2)
	if state, _ := m.HandleChar('c'); state != NoMatch {
		t.Fatalf("expected nomatch for unused label, got %v", state)
	}
}

func TestCancel(t *testing.T) {
	m, _ := newMachine(t, "ab", 1, 2)
	if state := m.Cancel(); state != NoMatch {
		t.Fatalf("expected nomatch, got %v", state)
	}
	if _, ok := m.Match(); ok {
		t.Fatalf("expected no match after cancel")
	}
}

func TestPresenterFailurePropagates(t *testing.T) {
	boom := errors.New("create_window: boom")
	alpha := alphabet.MustParse("ab")
	m := New(labeltree.Build(windows(1, 2), alpha.Chars()), alpha, &recordingPresenter{err: boom})
	if _, err := m.Start(); !errors.Is(err, boom) {
		t.Fatalf("expected presenter error, got %v", err)
	}
}

func TestRedrawOnlyWhenReady(t *testing.T) {
	m, p := newMachine(t, "ab", 1, 2)
	if _, err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Redraw(); err != nil {
		t.Fatalf("redraw: %v", err)
	}
	if len(p.presented) != 2 || p.presented[0] != p.presented[1] {
		t.Fatalf("expected identical redraw, got %v", p.presented)
	}
	m.HandleChar('a')
	if err := m.Redraw(); err != nil || len(p.presented) != 2 {
		t.Fatalf("expected no redraw after match, got %v", p.presented)
	}
}
