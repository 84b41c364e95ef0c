package xserver

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/atomicstack/xorg-choose-window/internal/window"
)

// normalWindowTypes are the EWMH types treated as persistent application
// windows.
var normalWindowTypes = map[string]struct{}{
	"_NET_WM_WINDOW_TYPE_TOOLBAR": {},
	"_NET_WM_WINDOW_TYPE_MENU":    {},
	"_NET_WM_WINDOW_TYPE_UTILITY": {},
	"_NET_WM_WINDOW_TYPE_SPLASH":  {},
	"_NET_WM_WINDOW_TYPE_DIALOG":  {},
	"_NET_WM_WINDOW_TYPE_NORMAL":  {},
}

// isNormalType inspects only the first (preferred) type. No type at all
// counts as normal.
func isNormalType(types []string) bool {
	if len(types) == 0 {
		return true
	}
	_, ok := normalWindowTypes[types[0]]
	return ok
}

func (c *Conn) getProperty(win xproto.Window, name string) (*xproto.GetPropertyReply, error) {
	atom, err := xprop.Atm(c.xu, name)
	if err != nil {
		return nil, fmt.Errorf("intern_atom %s: %w", name, err)
	}
	return xproto.GetProperty(c.xu.Conn(), false, win, atom, xproto.GetPropertyTypeAny, 0, (1<<32)-1).Reply()
}

func propertyUnset(reply *xproto.GetPropertyReply) bool {
	return reply == nil || reply.Format == 0 || reply.ValueLen == 0
}

// TopLevelWindows returns the root window's children bottom to top.
func (c *Conn) TopLevelWindows() ([]window.ID, error) {
	reply, err := xproto.QueryTree(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return nil, err
	}
	out := make([]window.ID, len(reply.Children))
	for i, child := range reply.Children {
		out[i] = window.ID(child)
	}
	return out, nil
}

// ManagedWindows reads _NET_CLIENT_LIST from the root window.
func (c *Conn) ManagedWindows() ([]window.ID, bool, error) {
	reply, err := c.getProperty(c.root, "_NET_CLIENT_LIST")
	if err != nil {
		return nil, false, err
	}
	if reply == nil || reply.Format == 0 {
		return nil, false, nil
	}
	wins, err := xprop.PropValWindows(reply, nil)
	if err != nil {
		return nil, true, err
	}
	out := make([]window.ID, len(wins))
	for i, w := range wins {
		out[i] = window.ID(w)
	}
	return out, true, nil
}

// IsViewable reports a mapped, viewable window that the window manager is
// allowed to manage.
func (c *Conn) IsViewable(id window.ID) (bool, error) {
	reply, err := xproto.GetWindowAttributes(c.xu.Conn(), xproto.Window(id)).Reply()
	if err != nil {
		return false, err
	}
	return reply.MapState == xproto.MapStateViewable && !reply.OverrideRedirect, nil
}

// IsNormalType checks _NET_WM_WINDOW_TYPE.
func (c *Conn) IsNormalType(id window.ID) (bool, error) {
	reply, err := c.getProperty(xproto.Window(id), "_NET_WM_WINDOW_TYPE")
	if err != nil {
		return false, err
	}
	if propertyUnset(reply) {
		return true, nil
	}
	types, err := xprop.PropValAtoms(c.xu, reply, nil)
	if err != nil {
		return false, err
	}
	return isNormalType(types), nil
}

// Describe captures geometry, inset by the border, and a display name.
func (c *Conn) Describe(id window.ID) (window.Window, error) {
	geom, err := xproto.GetGeometry(c.xu.Conn(), xproto.Drawable(id)).Reply()
	if err != nil {
		return window.Window{}, err
	}
	border := int(geom.BorderWidth)
	w := window.Window{
		ID: id,
		Geometry: window.Rect{
			X:      int(geom.X) + border,
			Y:      int(geom.Y) + border,
			Width:  int(geom.Width),
			Height: int(geom.Height),
		},
	}
	if name, err := ewmh.WmNameGet(c.xu, xproto.Window(id)); err == nil && name != "" {
		w.Title = name
	} else if name, err := icccm.WmNameGet(c.xu, xproto.Window(id)); err == nil {
		w.Title = name
	}
	if class, err := icccm.WmClassGet(c.xu, xproto.Window(id)); err == nil && class != nil {
		w.Class = class.Class
	}
	return w, nil
}
