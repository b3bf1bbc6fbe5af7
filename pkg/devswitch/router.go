package devswitch

import (
	"github.com/holoplot/go-evdev"
)

// shouldForward decides whether an event reaches the active output.
// Manipulator mode forwards everything. Mouse mode forwards key and
// relative-axis events only when the output advertises the code; all
// other event types (EV_SYN, EV_MSC, ...) pass through unconditionally,
// the virtual device needs them to frame the events it does receive.
func shouldForward(ev *Event, caps Capabilities, mode Mode) bool {
	if mode == ModeManipulator {
		return true
	}
	switch ev.Type {
	case evdev.EV_KEY:
		return caps.Keys.Contains(ev.Code)
	case evdev.EV_REL:
		return caps.Axes.Contains(ev.Code)
	default:
		return true
	}
}
