package devswitch

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/holoplot/go-evdev"
)

// CSV format, one event per line: sec;usec;type;code;value
// Lines starting with "#" are comments.

var codeFromString = map[evdev.EvType]map[string]evdev.EvCode{
	evdev.EV_SYN: evdev.SYNFromString,
	evdev.EV_KEY: evdev.KEYFromString,
	evdev.EV_REL: evdev.RELFromString,
	evdev.EV_MSC: evdev.MSCFromString,
	evdev.EV_ABS: evdev.ABSFromString,
	evdev.EV_SW:  evdev.SWFromString,
	evdev.EV_LED: evdev.LEDFromString,
}

func csvlineToEvent(line string) (Event, error) {
	var ev Event
	parts := strings.Split(line, ";")
	if len(parts) != 5 {
		return ev, fmt.Errorf("failed to parse csv line: %s", line)
	}
	sec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return ev, fmt.Errorf("failed to parse col 1 (sec) from line: %s. %w", line, err)
	}

	usec, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ev, fmt.Errorf("failed to parse col 2 (usec) from line: %s. %w", line, err)
	}

	// EV_KEY, EV_SYN, EV_REL, ...
	evType, ok := evdev.EVFromString[parts[2]]
	if !ok {
		return ev, fmt.Errorf("failed to parse col 3 (EvType) from line: %s. %q", line, parts[2])
	}

	fromString, ok := codeFromString[evType]
	if !ok {
		return ev, fmt.Errorf("unsupported event type in line: %s. %q", line, parts[2])
	}
	code, ok := fromString[parts[3]]
	if !ok {
		return ev, fmt.Errorf("failed to parse col 4 (code) from line: %s. %q", line, parts[3])
	}

	var value int64
	switch parts[4] {
	case "up":
		value = UP
	case "down":
		value = DOWN
	case "repeat":
		value = REPEAT
	default:
		value, err = strconv.ParseInt(parts[4], 10, 32)
		if err != nil {
			return ev, fmt.Errorf("failed to parse col 5 (value) from line: %s. %w", line, err)
		}
	}
	return Event{
		Time:  syscall.Timeval{Sec: sec, Usec: usec},
		Type:  evType,
		Code:  code,
		Value: int32(value),
	}, nil
}

func eventToCsvLine(ev Event) string {
	value := ""
	if ev.Type == evdev.EV_KEY {
		value = eventValueToString[ev.Value]
	}
	if value == "" {
		value = fmt.Sprint(ev.Value)
	}
	return fmt.Sprintf("%d;%d;%s;%s;%s\n", ev.Time.Sec, ev.Time.Usec,
		ev.TypeName(), ev.CodeName(),
		value)
}

func csvToSlice(csvString string) ([]Event, error) {
	lines := strings.Split(csvString, "\n")
	s := make([]Event, 0, len(lines))
	for _, line := range lines {
		line := strings.TrimSpace(line)
		if line == "" || string(line[0]) == "#" {
			continue
		}
		ev, err := csvlineToEvent(line)
		if err != nil {
			return nil, fmt.Errorf("csv to slice failed: %w", err)
		}
		s = append(s, ev)
	}
	return s, nil
}

func eventsToCsv(s []Event) string {
	csv := make([]string, 0, len(s))
	for _, ev := range s {
		csv = append(csv, eventToCsvLine(ev))
	}
	return strings.Join(csv, "")
}

func eventToSkip(ev *Event) bool {
	if ev.Type == evdev.EV_SYN {
		return true
	}
	if ev.Type == evdev.EV_MSC && ev.Code == evdev.MSC_SCAN {
		return true
	}
	return false
}

// Csv dumps the events of sourceDev as CSV lines, for later use with the
// 'replay' sub-command.
func Csv(sourceDev *evdev.InputDevice) error {
	defer sourceDev.Close()
	targetName, err := sourceDev.Name()
	if err != nil {
		return err
	}
	fmt.Printf("#Reading %s %s\n", targetName, time.Now().String())
	for {
		ev, err := sourceDev.ReadOne()
		if err != nil {
			return err
		}
		if eventToSkip(ev) {
			continue
		}

		line := eventToCsvLine(*ev)
		fmt.Print(line)
	}
}
