package devswitch

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holoplot/go-evdev"
)

// Capabilities holds the key codes and relative-axis codes a virtual
// output advertises. Built once at startup, not mutated afterwards.
type Capabilities struct {
	Keys mapset.Set[evdev.EvCode]
	Axes mapset.Set[evdev.EvCode]
}

func newCapabilities() Capabilities {
	return Capabilities{
		Keys: mapset.NewSet[evdev.EvCode](),
		Axes: mapset.NewSet[evdev.EvCode](),
	}
}

// mirrorCapabilities copies the key and relative-axis codes the physical
// device supports.
func mirrorCapabilities(dev *evdev.InputDevice) Capabilities {
	return Capabilities{
		Keys: mapset.NewSet(dev.CapableEvents(evdev.EV_KEY)...),
		Axes: mapset.NewSet(dev.CapableEvents(evdev.EV_REL)...),
	}
}

// capabilitiesFromWords translates configured symbolic names. Unknown
// names fail here, before any device is created.
func capabilitiesFromWords(keyWords, axisWords []string) (Capabilities, error) {
	caps := newCapabilities()
	for _, word := range keyWords {
		code, err := wordToKeyCode(word)
		if err != nil {
			return caps, err
		}
		caps.Keys.Add(code)
	}
	for _, word := range axisWords {
		code, err := wordToAxisCode(word)
		if err != nil {
			return caps, err
		}
		caps.Axes.Add(code)
	}
	return caps, nil
}

// codeMap converts to the shape evdev.CreateDevice expects.
func (c Capabilities) codeMap() map[evdev.EvType][]evdev.EvCode {
	return map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: mapset.Sorted(c.Keys),
		evdev.EV_REL: mapset.Sorted(c.Axes),
	}
}
