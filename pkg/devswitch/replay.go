package devswitch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// csvEventReader yields the events of a CSV log recorded with the 'csv'
// sub-command.
type csvEventReader struct {
	scanner *bufio.Scanner
}

func (c *csvEventReader) ReadOne() (*Event, error) {
	for {
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return nil, fmt.Errorf("error reading: %w", err)
			}
			return nil, io.EOF
		}
		line := c.scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		ev, err := csvlineToEvent(line)
		if err != nil {
			return nil, fmt.Errorf("csvlineToEvent failed: %w", err)
		}
		return &ev, nil
	}
}

// printWriter pretends to be a virtual output and prints what would have
// been emitted on it.
type printWriter struct {
	name string
}

func (p *printWriter) WriteOne(ev *Event) error {
	fmt.Printf("%s <- %s\n", p.name, ev.String())
	return nil
}

// ReplayMain drives the full history/router/toggle pipeline from a
// recorded CSV log. Instead of emitting to uinput it prints per event
// which output received it, so routing and mode flips can be inspected
// offline.
func ReplayMain(ctx context.Context, configFile string, logFile string) error {
	config, err := LoadConfigFile(configFile)
	if err != nil {
		return err
	}
	file, err := os.Open(logFile)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", logFile, err)
	}
	defer file.Close()

	s := newSwitcher(config,
		output{name: "manipulator", caps: newCapabilities(), writer: &printWriter{name: "manipulator"}},
		output{name: "mouse", caps: config.MouseCapabilities, writer: &printWriter{name: "mouse"}})

	logReader := csvEventReader{scanner: bufio.NewScanner(file)}
	err = s.run(ctx, &logReader)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
