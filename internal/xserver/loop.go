package xserver

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/atomicstack/xorg-choose-window/internal/alphabet"
)

// Handlers receive events from Run. Each call runs to completion before the
// next event is read.
type Handlers struct {
	// Key receives the unshifted keysym of every key press. Returning done
	// ends the loop.
	Key func(sym alphabet.Keysym) (done bool, err error)
	// Expose runs once per burst of exposures on any overlay.
	Expose func() error
}

// Run blocks dispatching events until a handler finishes the loop, a handler
// fails, or the server reports an asynchronous error.
func (c *Conn) Run(h Handlers) error {
	c.loopErr = nil
	c.onExpose = h.Expose
	defer func() { c.onExpose = nil }()

	xevent.ErrorHandlerSet(c.xu, func(err xgb.Error) {
		c.fail(fmt.Errorf("event loop: %w", err))
	})
	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		if h.Key == nil {
			return
		}
		sym := keybind.KeysymGet(xu, ev.Detail, 0)
		done, err := h.Key(alphabet.Keysym(sym))
		if err != nil {
			c.fail(err)
			return
		}
		if done {
			xevent.Quit(xu)
		}
	}).Connect(c.xu, c.root)
	defer xevent.Detach(c.xu, c.root)

	xevent.Main(c.xu)
	return c.loopErr
}

func (c *Conn) expose(count int) {
	if count > 0 || c.onExpose == nil {
		return
	}
	if err := c.onExpose(); err != nil {
		c.fail(err)
	}
}

func (c *Conn) fail(err error) {
	if c.loopErr == nil {
		c.loopErr = err
	}
	xevent.Quit(c.xu)
}
