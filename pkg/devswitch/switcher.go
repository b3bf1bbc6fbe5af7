package devswitch

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type RunCmdConfig struct {
	ConfigFile string
	Debug      bool
}

// output is one virtual device together with the capability sets it was
// created from.
type output struct {
	name   string
	caps   Capabilities
	writer EventWriter
}

// switcher owns the mode, the key history and both outputs. It is the
// only mutator of either, the event loop is single threaded.
type switcher struct {
	sequence    []Keystroke
	history     *history
	mode        Mode
	manipulator output
	mouse       output
}

func newSwitcher(config *Config, manipulator, mouse output) *switcher {
	return &switcher{
		sequence:    config.ToggleSequence,
		history:     newHistory(len(config.ToggleSequence)),
		mode:        config.DefaultMode,
		manipulator: manipulator,
		mouse:       mouse,
	}
}

func (s *switcher) active() *output {
	if s.mode == ModeManipulator {
		return &s.manipulator
	}
	return &s.mouse
}

// handleEvent processes one event in the fixed order: record it in the
// history, route it under the mode that was current when it arrived,
// emit it, then evaluate the toggle sequence. A completing toggle flips
// the mode for later events only, never for the event that completed it.
func (s *switcher) handleEvent(ev *Event) error {
	recorded := s.history.Observe(ev)
	out := s.active()
	if shouldForward(ev, out.caps, s.mode) {
		if err := out.writer.WriteOne(ev); err != nil {
			return fmt.Errorf("failed to emit event to %q: %w", out.name, err)
		}
		log.Debugf("%s <- %s", out.name, ev.String())
	} else {
		log.Debugf("dropped %s", ev.String())
	}
	if recorded {
		log.Debugf("history %s", s.history.String())
		if matchesSequence(s.history.Contents(), s.sequence) {
			s.mode = s.mode.Flip()
			log.WithField("mode", s.mode.String()).Info("toggle sequence typed, switching output")
		}
	}
	return nil
}

// run pumps events from er through handleEvent until the reader fails or
// ctx is cancelled. Cancellation is the clean shutdown path.
func (s *switcher) run(ctx context.Context, er EventReader) error {
	type eventAndErr struct {
		evP *Event
		err error
	}
	eventChannel := make(chan eventAndErr)
	go func() {
		for {
			evP, err := er.ReadOne()
			select {
			case eventChannel <- eventAndErr{evP, err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case eventErr := <-eventChannel:
			if eventErr.err != nil {
				return fmt.Errorf("failed to fetch events: %w", eventErr.err)
			}
			if err := s.handleEvent(eventErr.evP); err != nil {
				return err
			}
		}
	}
}

// RunMain grabs the configured device, creates the two virtual outputs
// and switches events between them until ctx is cancelled or a device
// handle fails. The grab and both outputs are released on every exit
// path.
func RunMain(ctx context.Context, cmdconfig RunCmdConfig) error {
	if cmdconfig.Debug {
		log.SetLevel(log.DebugLevel)
	}
	config, err := LoadConfigFile(cmdconfig.ConfigFile)
	if err != nil {
		return err
	}

	target, err := findDeviceByName(config.TargetName)
	if err != nil {
		return err
	}
	defer target.Close()
	targetName, err := target.Name()
	if err != nil {
		return fmt.Errorf("failed to read the name of %q: %w", target.Path(), err)
	}
	log.WithField("device", describeDevice(target)).Info("grabbing target device")
	if err := target.Grab(); err != nil {
		return fmt.Errorf("failed to grab %q: %w", targetName, err)
	}
	defer target.Ungrab()

	manipulatorName := prefixDeviceName(config.ManipulatorPrefix, targetName)
	manipulatorCaps := mirrorCapabilities(target)
	manipulatorDev, err := createVirtualDevice(manipulatorName, manipulatorCaps)
	if err != nil {
		return err
	}
	defer manipulatorDev.Close()

	mouseName := prefixDeviceName(config.MousePrefix, targetName)
	mouseDev, err := createVirtualDevice(mouseName, config.MouseCapabilities)
	if err != nil {
		return err
	}
	defer mouseDev.Close()

	s := newSwitcher(config,
		output{name: manipulatorName, caps: manipulatorCaps, writer: manipulatorDev},
		output{name: mouseName, caps: config.MouseCapabilities, writer: mouseDev})
	log.WithField("mode", s.mode.String()).Info("starting in default mode")
	return s.run(ctx, target)
}
