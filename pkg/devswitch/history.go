package devswitch

import (
	"fmt"
	"strings"

	"github.com/holoplot/go-evdev"
)

// Keystroke is one observed key event, reduced to what the toggle
// sequence compares on.
type Keystroke struct {
	Code  KeyCode
	Value int32
}

func (k Keystroke) String() string {
	name := strings.ToLower(strings.TrimPrefix(evdev.KEYToString[k.Code], "KEY_"))
	value, ok := eventValueToString[k.Value]
	if !ok {
		value = fmt.Sprint(k.Value)
	}
	return fmt.Sprintf("%s-%s", name, value)
}

// history is a FIFO window over the most recent key events. Its capacity
// equals the toggle sequence length and never changes. Only EV_KEY
// events are admitted.
type history struct {
	entries  []Keystroke
	capacity int
}

func newHistory(capacity int) *history {
	return &history{
		entries:  make([]Keystroke, 0, capacity),
		capacity: capacity,
	}
}

// Observe records the event if it is a key event and reports whether it
// did. When the window is full the oldest entry is evicted first.
func (h *history) Observe(ev *Event) bool {
	if ev.Type != evdev.EV_KEY {
		return false
	}
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, Keystroke{Code: ev.Code, Value: ev.Value})
	return true
}

func (h *history) Contents() []Keystroke {
	return h.entries
}

func (h *history) String() string {
	s := make([]string, 0, len(h.entries))
	for _, k := range h.entries {
		s = append(s, k.String())
	}
	return "[" + strings.Join(s, " ") + "]"
}

// matchesSequence reports whether buf holds exactly the given sequence.
// A shorter buf (warm-up) never matches.
func matchesSequence(buf, sequence []Keystroke) bool {
	if len(buf) != len(sequence) {
		return false
	}
	for i := range sequence {
		if buf[i] != sequence[i] {
			return false
		}
	}
	return true
}
