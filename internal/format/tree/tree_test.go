package tree

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/xorg-choose-window/internal/labeltree"
	"github.com/atomicstack/xorg-choose-window/internal/window"
)

func TestRenderShowsLeavesAndBranches(t *testing.T) {
	windows := []window.Window{
		{ID: 100, Title: "xterm"},
		{ID: 200, Title: "htop"},
		{ID: 300, Title: strings.Repeat("long title ", 10)},
	}
	out := ansi.Strip(Render(labeltree.Build(windows, []rune("ab")), nil))

	for _, want := range []string{"3 window(s)", "a 0x64 xterm", "b 0xc8 htop", "b 0x12c long title"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("long title ", 10)) {
		t.Fatalf("expected long title to be truncated, got:\n%s", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	out := ansi.Strip(Render(nil, nil))
	if !strings.Contains(out, "0 window(s)") {
		t.Fatalf("expected window count, got %q", out)
	}
}
