package window

import "fmt"

// ID is an X window identifier.
type ID uint32

// Hex formats the identifier the way X tools print it.
func (id ID) Hex() string {
	return fmt.Sprintf("0x%x", uint32(id))
}

// Rect describes a rectangle in root-window coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Window is a selectable top-level window captured at startup.
type Window struct {
	ID       ID
	Geometry Rect
	Title    string
	Class    string
}

// Inventory is the window-system view the filter needs. Every method is a
// synchronous query; an error means the query could not be answered.
type Inventory interface {
	// TopLevelWindows returns the root window's children in stacking order.
	TopLevelWindows() ([]ID, error)
	// ManagedWindows returns the window manager's client list. defined is
	// false when the manager does not publish one.
	ManagedWindows() (ids []ID, defined bool, err error)
	// IsViewable reports whether the window is mapped, viewable and not
	// override-redirect.
	IsViewable(id ID) (bool, error)
	// IsNormalType reports whether the EWMH window type marks a persistent
	// application window (or is unset).
	IsNormalType(id ID) (bool, error)
	// Describe captures geometry plus the title and class used for display.
	Describe(id ID) (Window, error)
}
