package devswitch

import (
	"fmt"
	"time"

	"github.com/holoplot/go-evdev"
)

// PrintMain grabs the device and prints its events with timing until
// nothing was typed for a while, or "x" was held down for more than a
// second.
func PrintMain(path string) error {
	sourceDev, err := GetDeviceFromPath(path)
	if err != nil {
		return err
	}
	return printEvents(sourceDev)
}

type readResult struct {
	event *Event
	err   error
}

type source struct {
	inputDevice  *evdev.InputDevice
	eventChannel chan *readResult
}

func (s *source) readForever() {
	for {
		ev, err := s.inputDevice.ReadOne()
		s.eventChannel <- &readResult{ev, err}
	}
}

func (s *source) getOneEventOrTimeout(timeout time.Duration) (ev *Event, timedOut bool, err error) {
	select {
	case result := <-s.eventChannel:
		return result.event, false, result.err
	case <-time.After(timeout):
		return nil, true, nil
	}
}

func printEvents(sourceDevice *evdev.InputDevice) error {
	defer sourceDevice.Close()
	sourceDevice.Grab()
	defer sourceDevice.Ungrab()
	targetName, err := sourceDevice.Name()
	if err != nil {
		return err
	}
	timeoutSeconds := 5 * time.Second
	fmt.Printf("Grabbing %s\n", targetName)
	fmt.Printf("Do not type for %s to terminate.\n", timeoutSeconds)
	prevEvent := Event{
		Time:  timeToSyscallTimeval(time.Now()),
		Type:  evdev.EV_KEY,
		Code:  evdev.KEY_SPACE,
		Value: UP,
	}
	s := source{
		inputDevice:  sourceDevice,
		eventChannel: make(chan *readResult),
	}
	go s.readForever()
	for {
		ev, timedOut, err := s.getOneEventOrTimeout(time.Second)
		if err != nil {
			return err
		}
		if timedOut {
			duration := time.Since(syscallTimevalToTime(prevEvent.Time))
			if duration > timeoutSeconds {
				fmt.Println("timeout")
				return nil
			}
			if duration > time.Second &&
				prevEvent.Code == evdev.KEY_X &&
				prevEvent.Value == DOWN {
				fmt.Println("exit")
				return nil
			}
			continue
		}
		if eventToSkip(ev) {
			continue
		}

		duration := time.Duration(ev.Time.Nano() - prevEvent.Time.Nano())
		if duration > time.Second &&
			ev.Code == evdev.KEY_X &&
			ev.Value == UP {
			fmt.Println("exit")
			return nil
		}
		var line string
		switch ev.Type {
		case evdev.EV_KEY:
			line = eventToString(ev)
		default:
			line = ev.String()
		}
		fmt.Printf("%4dms  %s\n", duration.Milliseconds(), line)
		prevEvent = *ev
	}
}
