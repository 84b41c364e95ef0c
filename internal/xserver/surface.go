package xserver

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/atomicstack/xorg-choose-window/internal/overlay"
	"github.com/atomicstack/xorg-choose-window/internal/window"
)

// Surface is an override-redirect window covering one selectable window.
type Surface struct {
	conn   *Conn
	win    *xwindow.Window
	bounds window.Rect
	img    *xgraphics.Image
	label  overlay.Label
}

// CreateSurface creates and maps an overlay at w's geometry.
func (c *Conn) CreateSurface(w window.Window) (overlay.Surface, error) {
	win, err := xwindow.Generate(c.xu)
	if err != nil {
		return nil, err
	}
	bounds := w.Geometry
	if bounds.Width < 1 {
		bounds.Width = 1
	}
	if bounds.Height < 1 {
		bounds.Height = 1
	}
	mask := xproto.CwBackPixel | xproto.CwOverrideRedirect | xproto.CwSaveUnder | xproto.CwEventMask
	err = win.CreateChecked(c.root, bounds.X, bounds.Y, bounds.Width, bounds.Height, mask,
		c.opts.Background, 1, 1, uint32(xproto.EventMaskExposure|xproto.EventMaskKeyPress))
	if err != nil {
		return nil, err
	}
	if err := icccm.WmClassSet(c.xu, win.Id, &icccm.WmClass{Instance: c.opts.Instance, Class: c.opts.Class}); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("set WM_CLASS: %w", err)
	}
	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		c.expose(int(ev.Count))
	}).Connect(c.xu, win.Id)
	if err := xproto.MapWindowChecked(c.xu.Conn(), win.Id).Check(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("map_window: %w", err)
	}
	return &Surface{conn: c, win: win, bounds: bounds}, nil
}

// Draw renders label centred on the surface. Repeating the last label only
// repaints the existing pixmap.
func (s *Surface) Draw(label overlay.Label) error {
	if s.img != nil && label == s.label {
		s.img.XPaint(s.win.Id)
		return nil
	}
	font, err := s.conn.loadFont()
	if err != nil {
		return err
	}
	opts := s.conn.opts

	img := xgraphics.New(s.conn.xu, image.Rect(0, 0, s.bounds.Width, s.bounds.Height))
	bg := xgraphics.BGRA{
		R: uint8(opts.Background >> 16),
		G: uint8(opts.Background >> 8),
		B: uint8(opts.Background),
		A: 0xff,
	}
	img.For(func(int, int) xgraphics.BGRA { return bg })

	tw, th := xgraphics.Extents(font, opts.FontSize, label.String())
	x, y := centre(s.bounds.Width, tw), centre(s.bounds.Height, th)
	if label.Typed != "" {
		if x, _, err = img.Text(x, y, opts.TypedColor, opts.FontSize, font, label.Typed); err != nil {
			img.Destroy()
			return err
		}
	}
	if label.Pending != "" {
		if _, _, err = img.Text(x, y, opts.PendingColor, opts.FontSize, font, label.Pending); err != nil {
			img.Destroy()
			return err
		}
	}
	if err := img.XSurfaceSet(s.win.Id); err != nil {
		img.Destroy()
		return err
	}
	img.XDraw()
	img.XPaint(s.win.Id)

	if s.img != nil {
		s.img.Destroy()
	}
	s.img = img
	s.label = label
	return nil
}

// Destroy releases the pixmap and the window.
func (s *Surface) Destroy() error {
	if s.img != nil {
		s.img.Destroy()
		s.img = nil
	}
	xevent.Detach(s.conn.xu, s.win.Id)
	return xproto.DestroyWindowChecked(s.conn.xu.Conn(), s.win.Id).Check()
}

// centre returns the offset placing inner in the middle of outer, clamped so
// oversized content starts at the edge.
func centre(outer, inner int) int {
	if inner >= outer {
		return 0
	}
	return (outer - inner) / 2
}
