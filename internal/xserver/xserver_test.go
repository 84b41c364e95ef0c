package xserver

import "testing"

func TestCentre(t *testing.T) {
	cases := []struct {
		outer, inner, want int
	}{
		{100, 20, 40},
		{101, 20, 40},
		{20, 20, 0},
		{10, 40, 0},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := centre(tc.outer, tc.inner); got != tc.want {
			t.Fatalf("centre(%d,%d): expected %d, got %d", tc.outer, tc.inner, tc.want, got)
		}
	}
}

func TestIsNormalType(t *testing.T) {
	cases := []struct {
		types []string
		want  bool
	}{
		{nil, true},
		{[]string{"_NET_WM_WINDOW_TYPE_NORMAL"}, true},
		{[]string{"_NET_WM_WINDOW_TYPE_DIALOG", "_NET_WM_WINDOW_TYPE_NORMAL"}, true},
		{[]string{"_NET_WM_WINDOW_TYPE_UTILITY"}, true},
		{[]string{"_NET_WM_WINDOW_TYPE_DOCK"}, false},
		{[]string{"_NET_WM_WINDOW_TYPE_DESKTOP", "_NET_WM_WINDOW_TYPE_NORMAL"}, false},
		{[]string{"_NET_WM_WINDOW_TYPE_NOTIFICATION"}, false},
	}
	for _, tc := range cases {
		if got := isNormalType(tc.types); got != tc.want {
			t.Fatalf("isNormalType(%v): expected %v, got %v", tc.types, tc.want, got)
		}
	}
}

func TestDefaultOverlayOptions(t *testing.T) {
	opts := DefaultOverlayOptions()
	if opts.Background != 0x333333 {
		t.Fatalf("expected background 0x333333, got %#x", opts.Background)
	}
	if opts.Instance != "overlay" || opts.Class != "xorg-choose-window" {
		t.Fatalf("unexpected WM_CLASS %s/%s", opts.Instance, opts.Class)
	}
	if opts.FontSize != DefaultFontSize || opts.FontPath != "" {
		t.Fatalf("expected bundled font at default size, got %v/%q", opts.FontSize, opts.FontPath)
	}
}
