package devswitch

import (
	"fmt"
	"strings"
)

// Mode selects which virtual output receives the forwarded events.
type Mode int

const (
	ModeMouse Mode = iota
	ModeManipulator
)

func (m Mode) String() string {
	if m == ModeManipulator {
		return "manipulator"
	}
	return "mouse"
}

// Flip returns the other mode. There are exactly two.
func (m Mode) Flip() Mode {
	if m == ModeMouse {
		return ModeManipulator
	}
	return ModeMouse
}

var UnknownModeErr = fmt.Errorf("unknown mode")

func modeFromString(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "mouse":
		return ModeMouse, nil
	case "manipulator":
		return ModeManipulator, nil
	}
	return ModeMouse, fmt.Errorf("mode %q is invalid: %w. Use 'mouse' or 'manipulator'", s, UnknownModeErr)
}
