package events

import "github.com/atomicstack/xorg-choose-window/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Finish(outcome string, windowID uint32) {
	logging.Trace("app.finish", map[string]interface{}{"outcome": outcome, "window": windowID})
}
