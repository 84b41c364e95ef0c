package events

import "github.com/atomicstack/xorg-choose-window/internal/logging"

type WindowsTracer struct{}

type GrabTracer struct{}

var (
	Windows = WindowsTracer{}
	Grab    = GrabTracer{}
)

func (WindowsTracer) Enumerated(total, managed int, managedDefined bool) {
	logging.Trace("windows.enumerated", map[string]interface{}{
		"total":           total,
		"managed":         managed,
		"managed_defined": managedDefined,
	})
}

func (WindowsTracer) Rejected(id uint32, reason string) {
	logging.Trace("windows.rejected", map[string]interface{}{"window": id, "reason": reason})
}

func (WindowsTracer) Selected(count int) {
	logging.Trace("windows.selected", map[string]interface{}{"count": count})
}

func (GrabTracer) Retry(attempt int, status string) {
	logging.Trace("grab.retry", map[string]interface{}{"attempt": attempt, "status": status})
}

func (GrabTracer) Acquired(attempts int) {
	logging.Trace("grab.acquired", map[string]interface{}{"attempts": attempts})
}
