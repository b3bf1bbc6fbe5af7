package devswitch

import (
	"context"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/require"
)

type writeToSlice struct {
	s []Event
}

func (wts *writeToSlice) WriteOne(ev *Event) error {
	wts.s = append(wts.s, *ev)
	return nil
}

var _ = EventWriter(&writeToSlice{})

type readFromSlice struct {
	s []Event
}

func (rfs *readFromSlice) ReadOne() (*Event, error) {
	if len(rfs.s) == 0 {
		return nil, io.EOF
	}
	ev := rfs.s[0]
	rfs.s = rfs.s[1:]
	return &ev, nil
}

var _ = EventReader(&readFromSlice{})

// newTestSwitcher: toggle sequence "a down, b down", mouse output
// restricted to KEY_A and REL_X.
func newTestSwitcher(t *testing.T, defaultMode Mode) (*switcher, *writeToSlice, *writeToSlice) {
	t.Helper()
	mouseCaps, err := capabilitiesFromWords([]string{"a"}, []string{"x"})
	require.Nil(t, err)
	manipulator := &writeToSlice{}
	mouse := &writeToSlice{}
	config := &Config{
		ToggleSequence:    []Keystroke{{evdev.KEY_A, DOWN}, {evdev.KEY_B, DOWN}},
		DefaultMode:       defaultMode,
		MouseCapabilities: mouseCaps,
	}
	s := newSwitcher(config,
		output{name: "manipulator", caps: newCapabilities(), writer: manipulator},
		output{name: "mouse", caps: mouseCaps, writer: mouse})
	return s, manipulator, mouse
}

// The event completing the toggle sequence is routed under the mode that
// was current before the flip.
func Test_toggleCompletingEventRoutedUnderOldMode(t *testing.T) {
	s, manipulator, mouse := newTestSwitcher(t, ModeMouse)

	// KEY_A is in the mouse capability set: forwarded to the mouse.
	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_A, DOWN)))
	require.Equal(t, ModeMouse, s.mode)
	require.Len(t, mouse.s, 1)

	// KEY_B completes the sequence. It is evaluated under mouse mode and
	// dropped, the flip only applies afterwards.
	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_B, DOWN)))
	require.Equal(t, ModeManipulator, s.mode)
	require.Len(t, mouse.s, 1)
	require.Empty(t, manipulator.s)

	// Any later event goes to the manipulator unconditionally.
	require.Nil(t, s.handleEvent(relEvent(evdev.REL_WHEEL, -1)))
	require.Len(t, manipulator.s, 1)
	require.Equal(t, evdev.EvCode(evdev.REL_WHEEL), manipulator.s[0].Code)
}

func Test_manipulatorModeForwardsEverything(t *testing.T) {
	s, manipulator, mouse := newTestSwitcher(t, ModeManipulator)

	events := []*Event{
		keyEvent(evdev.KEY_Q, DOWN),
		relEvent(evdev.REL_HWHEEL, 3),
		synEvent(),
		{Type: evdev.EV_MSC, Code: evdev.MSC_SCAN, Value: 30},
	}
	for _, ev := range events {
		require.Nil(t, s.handleEvent(ev))
	}
	require.Len(t, manipulator.s, len(events))
	require.Empty(t, mouse.s)
}

func Test_toggleFlipsBackAndForth(t *testing.T) {
	s, manipulator, mouse := newTestSwitcher(t, ModeManipulator)

	// The sequence typed in manipulator mode is forwarded and flips to
	// mouse mode.
	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_A, DOWN)))
	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_B, DOWN)))
	require.Equal(t, ModeMouse, s.mode)
	require.Len(t, manipulator.s, 2)

	// Typing it again flips back.
	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_A, DOWN)))
	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_B, DOWN)))
	require.Equal(t, ModeManipulator, s.mode)
	// Only KEY_A passed the mouse filter.
	require.Len(t, mouse.s, 1)
	require.Equal(t, KeyCode(evdev.KEY_A), mouse.s[0].Code)
}

func Test_interleavedEventsResetTheSequence(t *testing.T) {
	s, _, _ := newTestSwitcher(t, ModeMouse)

	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_A, DOWN)))
	// The A-up in between pushes A-down out of the two-entry window.
	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_A, UP)))
	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_B, DOWN)))
	require.Equal(t, ModeMouse, s.mode)

	// Non-key events in between do not disturb the window.
	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_A, DOWN)))
	require.Nil(t, s.handleEvent(relEvent(evdev.REL_X, 1)))
	require.Nil(t, s.handleEvent(synEvent()))
	require.Nil(t, s.handleEvent(keyEvent(evdev.KEY_B, DOWN)))
	require.Equal(t, ModeManipulator, s.mode)
}

var toggleCsv = `#Recorded on a test keyboard
1711354959;655837;EV_KEY;KEY_A;down
1711354959;655838;EV_SYN;SYN_REPORT;0
1711354959;815829;EV_KEY;KEY_B;down
1711354960;127830;EV_REL;REL_X;-2
`

func Test_run(t *testing.T) {
	s, manipulator, mouse := newTestSwitcher(t, ModeMouse)
	events, err := csvToSlice(toggleCsv)
	require.Nil(t, err)

	err = s.run(context.Background(), &readFromSlice{s: events})
	require.ErrorIs(t, err, io.EOF)

	// KEY_A and the sync frame reached the mouse, KEY_B was dropped while
	// completing the toggle, the axis event reached the manipulator.
	require.Equal(t,
		"1711354959;655837;EV_KEY;KEY_A;down\n"+
			"1711354959;655838;EV_SYN;SYN_REPORT;0\n",
		eventsToCsv(mouse.s))
	require.Equal(t,
		"1711354960;127830;EV_REL;REL_X;-2\n",
		eventsToCsv(manipulator.s))
	require.Equal(t, ModeManipulator, s.mode)
}

// blockingReader simulates a device that never delivers an event.
type blockingReader struct{}

func (blockingReader) ReadOne() (*Event, error) {
	select {}
}

// endlessReader simulates a device that always has another event ready.
type endlessReader struct{}

func (endlessReader) ReadOne() (*Event, error) {
	return keyEvent(evdev.KEY_A, UP), nil
}

func Test_runStopsOnCancelledContext(t *testing.T) {
	s, _, _ := newTestSwitcher(t, ModeMouse)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// A cancelled context is the clean shutdown path.
	require.Nil(t, s.run(ctx, blockingReader{}))
}

func Test_runReleasesReaderOnCancel(t *testing.T) {
	s, _, _ := newTestSwitcher(t, ModeMouse)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	before := runtime.NumGoroutine()
	// The reader always has another event ready, so it would block
	// forever on the event channel if run did not unblock it on
	// cancellation.
	require.Nil(t, s.run(ctx, endlessReader{}))
	// Poll from the test goroutine itself: require.Eventually runs its
	// condition in a fresh goroutine, which would keep the count above
	// the baseline forever.
	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("reader goroutine not released: %d goroutines, want <= %d",
				runtime.NumGoroutine(), before)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
