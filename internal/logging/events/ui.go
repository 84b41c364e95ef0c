package events

import "github.com/atomicstack/xorg-choose-window/internal/logging"

type TreeTracer struct{}

type SelectionTracer struct{}

type OverlayTracer struct{}

type NoMatchReason string

const (
	ReasonUnmapped NoMatchReason = "unmapped"
	ReasonNoNode   NoMatchReason = "no-node"
	ReasonEscape   NoMatchReason = "escape"
)

var (
	Tree      = TreeTracer{}
	Selection = SelectionTracer{}
	Overlay   = OverlayTracer{}
)

func (TreeTracer) Built(windows, alphabet, depth, height int) {
	logging.Trace("tree.built", map[string]interface{}{
		"windows":  windows,
		"alphabet": alphabet,
		"depth":    depth,
		"height":   height,
	})
}

func (SelectionTracer) Start(state string, frontier int) {
	logging.Trace("selection.start", map[string]interface{}{"state": state, "frontier": frontier})
}

func (SelectionTracer) Key(keysym uint32, char string) {
	logging.Trace("selection.key", map[string]interface{}{"keysym": keysym, "char": char})
}

func (SelectionTracer) Descend(typed string, frontier int) {
	logging.Trace("selection.descend", map[string]interface{}{"typed": typed, "frontier": frontier})
}

func (SelectionTracer) Match(typed string, windowID uint32) {
	logging.Trace("selection.match", map[string]interface{}{"typed": typed, "window": windowID})
}

func (SelectionTracer) NoMatch(typed string, reason NoMatchReason) {
	logging.Trace("selection.nomatch", map[string]interface{}{"typed": typed, "reason": string(reason)})
}

func (OverlayTracer) Create(windowID uint32, label string) {
	logging.Trace("overlay.create", map[string]interface{}{"window": windowID, "label": label})
}

func (OverlayTracer) Destroy(windowID uint32) {
	logging.Trace("overlay.destroy", map[string]interface{}{"window": windowID})
}

func (OverlayTracer) Skip(windowID uint32, length int) {
	logging.Trace("overlay.skip", map[string]interface{}{"window": windowID, "length": length})
}

func (OverlayTracer) Redraw(surfaces int) {
	logging.Trace("overlay.redraw", map[string]interface{}{"surfaces": surfaces})
}
