// Package xserver talks to the X server: it enumerates windows, grabs the
// keyboard, draws overlay surfaces and runs the blocking event loop.
//
// Every request is synchronous. Replies that cannot be obtained are returned
// as errors naming the X request that failed.
package xserver

import (
	"bytes"
	"fmt"
	"image/color"
	"os"

	"github.com/BurntSushi/freetype-go/freetype/truetype"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"golang.org/x/image/font/gofont/gomonobold"
)

// DefaultFontSize is the label point size used when none is configured.
const DefaultFontSize = 72

// OverlayOptions is the immutable look of every overlay.
type OverlayOptions struct {
	Background   uint32
	TypedColor   color.RGBA
	PendingColor color.RGBA
	FontSize     float64
	// FontPath selects a TrueType file. Empty uses the bundled Go Mono Bold.
	FontPath string
	Instance string
	Class    string
}

// DefaultOverlayOptions returns the stock overlay appearance.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{
		Background:   0x333333,
		TypedColor:   color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
		PendingColor: color.RGBA{R: 0x0f, G: 0xff, B: 0x0f, A: 0xff},
		FontSize:     DefaultFontSize,
		Instance:     "overlay",
		Class:        "xorg-choose-window",
	}
}

// Conn is a live X connection plus the state the overlays share.
type Conn struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	opts OverlayOptions
	font *truetype.Font

	onExpose func() error
	loopErr  error
}

// Connect opens display ("" means $DISPLAY).
func Connect(display string, opts OverlayOptions) (*Conn, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	keybind.Initialize(xu)
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultFontSize
	}
	return &Conn{xu: xu, root: xu.RootWin(), opts: opts}, nil
}

// Close drops the connection; the server releases any remaining grab.
func (c *Conn) Close() {
	c.xu.Conn().Close()
}

// loadFont parses the overlay font on first use.
func (c *Conn) loadFont() (*truetype.Font, error) {
	if c.font != nil {
		return c.font, nil
	}
	data := gomonobold.TTF
	if c.opts.FontPath != "" {
		raw, err := os.ReadFile(c.opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("load_font: %w", err)
		}
		data = raw
	}
	font, err := xgraphics.ParseFont(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load_font: %w", err)
	}
	c.font = font
	return font, nil
}
