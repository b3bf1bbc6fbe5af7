package devswitch

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/holoplot/go-evdev"
	"gopkg.in/yaml.v3"
)

// Config is the validated runtime configuration. All symbolic names have
// been translated to codes; loading fails before any device is touched.
type Config struct {
	TargetName        string
	ManipulatorPrefix string
	MousePrefix       string
	MouseCapabilities Capabilities
	ToggleSequence    []Keystroke
	DefaultMode       Mode
}

type yamlToggleStep struct {
	Key   string      `yaml:"key"`
	Value *eventValue `yaml:"value"`
}

type yamlConfig struct {
	TargetName               string           `yaml:"target_name"`
	VirtualManipulatorPrefix string           `yaml:"virtual_manipulator_prefix"`
	VirtualMousePrefix       string           `yaml:"virtual_mouse_prefix"`
	VirtualMouseKeys         string           `yaml:"virtual_mouse_keys"`
	VirtualMouseAxes         string           `yaml:"virtual_mouse_axes"`
	ToggleSequence           []yamlToggleStep `yaml:"toggle_sequence"`
	DefaultMode              string           `yaml:"default_mode"`
}

// eventValue accepts "up", "down", "repeat" or the numeric 0/1/2.
type eventValue int32

func (v *eventValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "up":
		*v = UP
	case "down":
		*v = DOWN
	case "repeat":
		*v = REPEAT
	default:
		n, err := strconv.ParseInt(node.Value, 10, 32)
		if err != nil || n < UP || n > REPEAT {
			return fmt.Errorf("event value %q is invalid. Use up, down, repeat or 0-2", node.Value)
		}
		*v = eventValue(n)
	}
	return nil
}

func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read yaml config from %q: %w", path, err)
	}
	config, err := LoadConfigFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return config, nil
}

func LoadConfigFromBytes(yamlBytes []byte) (*Config, error) {
	y := yamlConfig{}
	err := yaml.Unmarshal(yamlBytes, &y)
	if err != nil {
		return nil, err
	}
	if y.TargetName == "" {
		return nil, fmt.Errorf("empty 'target_name' is not allowed.")
	}
	if len(y.ToggleSequence) == 0 {
		return nil, fmt.Errorf("empty list in 'toggle_sequence' is not allowed.")
	}
	caps, err := capabilitiesFromWords(
		strings.Fields(y.VirtualMouseKeys),
		strings.Fields(y.VirtualMouseAxes))
	if err != nil {
		return nil, err
	}
	sequence := make([]Keystroke, 0, len(y.ToggleSequence))
	for _, step := range y.ToggleSequence {
		code, err := wordToKeyCode(step.Key)
		if err != nil {
			return nil, err
		}
		if step.Value == nil {
			return nil, fmt.Errorf("toggle_sequence step %q is missing 'value'. Use up, down, repeat or 0-2", step.Key)
		}
		sequence = append(sequence, Keystroke{Code: code, Value: int32(*step.Value)})
	}
	mode, err := modeFromString(y.DefaultMode)
	if err != nil {
		return nil, err
	}
	return &Config{
		TargetName:        y.TargetName,
		ManipulatorPrefix: y.VirtualManipulatorPrefix,
		MousePrefix:       y.VirtualMousePrefix,
		MouseCapabilities: caps,
		ToggleSequence:    sequence,
		DefaultMode:       mode,
	}, nil
}

var (
	OnlyLowerCaseAllowedErr = fmt.Errorf("only lower case characters are allowed")
	UnknownKeyErr           = fmt.Errorf("unknown key")
	UnknownAxisErr          = fmt.Errorf("unknown axis")
)

// wordToKeyCode translates "a" to KEY_A and "btn_left" to BTN_LEFT.
func wordToKeyCode(s string) (KeyCode, error) {
	if strings.ToLower(s) != s {
		return 0, fmt.Errorf("key %q is invalid: %w", s, OnlyLowerCaseAllowedErr)
	}
	name := strings.ToUpper(s)
	if !strings.HasPrefix(name, "KEY_") && !strings.HasPrefix(name, "BTN_") {
		name = "KEY_" + name
	}
	key, ok := evdev.KEYFromString[name]
	if !ok {
		return 0, fmt.Errorf("failed to get key %q: %w. Use sub-command 'print' to see valid names of keys", s, UnknownKeyErr)
	}
	return key, nil
}

// wordToAxisCode translates "x" or "rel_x" to REL_X.
func wordToAxisCode(s string) (evdev.EvCode, error) {
	if strings.ToLower(s) != s {
		return 0, fmt.Errorf("axis %q is invalid: %w", s, OnlyLowerCaseAllowedErr)
	}
	name := strings.ToUpper(s)
	if !strings.HasPrefix(name, "REL_") {
		name = "REL_" + name
	}
	axis, ok := evdev.RELFromString[name]
	if !ok {
		return 0, fmt.Errorf("failed to get axis %q: %w", s, UnknownAxisErr)
	}
	return axis, nil
}
