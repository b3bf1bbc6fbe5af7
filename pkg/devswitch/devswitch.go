// Package devswitch grabs one physical evdev input device exclusively and
// re-emits its event stream on one of two uinput virtual devices: a
// "manipulator" output that mirrors the physical device, and a "mouse"
// output restricted to a configured subset of keys and relative axes.
// Typing the configured toggle sequence flips between the two outputs.
package devswitch

import (
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/holoplot/go-evdev"
)

const (
	UP     = 0
	DOWN   = 1
	REPEAT = 2
)

type Event = evdev.InputEvent

type KeyCode = evdev.EvCode // for example KEY_A, KEY_B, ...

type EventReader interface {
	ReadOne() (*Event, error)
}

type EventWriter interface {
	WriteOne(event *Event) error
}

var (
	eventValueToShortString = []string{"/", "_", "="}
	eventValueToString      = map[int32]string{
		UP:     "up",
		DOWN:   "down",
		REPEAT: "repeat",
	}
)

var shortKeyNames = map[string]string{
	"space":      "␣",
	"leftshift":  "⇧ ",
	"rightshift": " ⇧",
}

// eventToString renders a key event like "a_" (down) or "a/" (up).
func eventToString(ev *Event) string {
	if ev.Type != evdev.EV_KEY {
		return fmt.Sprintf("[err: need a EV_KEY event. Got %s]", ev.String())
	}
	name := ev.CodeName()
	name = strings.TrimPrefix(name, "KEY_")
	name = strings.ToLower(name)
	short, ok := shortKeyNames[name]
	if ok {
		name = short
	}
	if ev.Value > 2 {
		return fmt.Sprintf("ev.Value is unknown %d. %s", ev.Value, ev.String())
	}
	return name + eventValueToShortString[ev.Value]
}

func timeToSyscallTimeval(t time.Time) syscall.Timeval {
	return syscall.Timeval{
		Sec:  int64(t.Unix()),
		Usec: int64(t.Nanosecond() / 1000),
	}
}

func syscallTimevalToTime(tv syscall.Timeval) time.Time {
	return time.Unix(tv.Sec, tv.Usec*1000)
}

func Map[T any, S any](t []T, f func(T) S) []S {
	ret := make([]S, 0, len(t))
	for i := range t {
		ret = append(ret, f(t[i]))
	}
	return ret
}
