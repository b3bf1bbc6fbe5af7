package devswitch

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/require"
)

func Test_shouldForward(t *testing.T) {
	caps, err := capabilitiesFromWords([]string{"a", "btn_left"}, []string{"x"})
	require.Nil(t, err)
	tests := []struct {
		name     string
		ev       *Event
		mode     Mode
		expected bool
	}{
		{"manipulator forwards any key", keyEvent(evdev.KEY_Q, DOWN), ModeManipulator, true},
		{"manipulator forwards any axis", relEvent(evdev.REL_WHEEL, -1), ModeManipulator, true},
		{"manipulator forwards sync", synEvent(), ModeManipulator, true},
		{"mouse forwards capable key", keyEvent(evdev.KEY_A, DOWN), ModeMouse, true},
		{"mouse forwards capable button", keyEvent(evdev.BTN_LEFT, DOWN), ModeMouse, true},
		{"mouse drops other key", keyEvent(evdev.KEY_B, DOWN), ModeMouse, false},
		{"mouse forwards capable axis", relEvent(evdev.REL_X, 5), ModeMouse, true},
		{"mouse drops other axis", relEvent(evdev.REL_WHEEL, 1), ModeMouse, false},
		{"mouse forwards sync", synEvent(), ModeMouse, true},
		{"mouse forwards msc", &Event{Type: evdev.EV_MSC, Code: evdev.MSC_SCAN}, ModeMouse, true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, shouldForward(tt.ev, caps, tt.mode), tt.name)
	}
}

func Test_modeFlip(t *testing.T) {
	require.Equal(t, ModeManipulator, ModeMouse.Flip())
	require.Equal(t, ModeMouse, ModeManipulator.Flip())
}

func Test_modeFromString(t *testing.T) {
	tests := []struct {
		in            string
		expectedMode  Mode
		expectedError error
	}{
		{"mouse", ModeMouse, nil},
		{"manipulator", ModeManipulator, nil},
		{"Manipulator", ModeManipulator, nil},
		{"keyboard", ModeMouse, UnknownModeErr},
		{"", ModeMouse, UnknownModeErr},
	}
	for _, tt := range tests {
		got, err := modeFromString(tt.in)
		if tt.expectedError != nil {
			require.ErrorIs(t, err, tt.expectedError)
			continue
		}
		require.Nil(t, err)
		require.Equal(t, tt.expectedMode, got)
	}
}
