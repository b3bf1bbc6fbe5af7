package devswitch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/holoplot/go-evdev"
)

// ListDevices returns one line per input device that can emit key or
// relative-axis events.
func ListDevices() string {
	basePath := "/dev/input"

	files, err := os.ReadDir(basePath)
	if err != nil {
		return err.Error()
	}

	var lines []string
	for _, fileName := range files {
		if fileName.IsDir() {
			continue
		}
		full := fmt.Sprintf("%s/%s", basePath, fileName.Name())
		d, err := evdev.OpenWithFlags(full, os.O_RDONLY)
		if err != nil {
			continue
		}
		name, _ := d.Name()
		path := d.Path()
		types := d.CapableTypes()
		props := Map(d.Properties(), evdev.PropName)
		d.Close()

		if !canEmitInput(types) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %q %+v %+v", path, name,
			Map(types, evdev.TypeName), props))
	}
	if len(lines) == 0 {
		return "No single device was found. It is likely that you have no permission to access /dev/input/... (`sudo` might help)\n"
	}
	return strings.Join(lines, "\n")
}

// canEmitInput reports whether a device with these capable types can be
// a switching target.
func canEmitInput(types []evdev.EvType) bool {
	return slices.Contains(types, evdev.EV_KEY) || slices.Contains(types, evdev.EV_REL)
}

// findDeviceByName opens the device whose advertised name equals name.
func findDeviceByName(name string) (*evdev.InputDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to list input devices: %w", err)
	}
	for _, p := range paths {
		if p.Name != name {
			continue
		}
		dev, err := evdev.Open(p.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %q: %w", p.Path, err)
		}
		return dev, nil
	}
	return nil, fmt.Errorf("failed to find device %q. Use the 'list' sub-command to see devices (`sudo` might be needed)", name)
}

// describeDevice returns a one-line dump of the device for startup output.
func describeDevice(dev *evdev.InputDevice) string {
	name, _ := dev.Name()
	return fmt.Sprintf("%s %q types=%+v keys=%d axes=%d",
		dev.Path(), name,
		Map(dev.CapableTypes(), evdev.TypeName),
		len(dev.CapableEvents(evdev.EV_KEY)),
		len(dev.CapableEvents(evdev.EV_REL)))
}

func prefixDeviceName(prefix, name string) string {
	return fmt.Sprintf("%s %s", prefix, name)
}

// createVirtualDevice builds a uinput device advertising exactly the
// given capability sets.
func createVirtualDevice(name string, caps Capabilities) (*evdev.InputDevice, error) {
	dev, err := evdev.CreateDevice(name, evdev.InputID{
		BusType: 0x03,
		Vendor:  0x4711,
		Product: 0x0816,
		Version: 1,
	}, caps.codeMap())
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual device %q: %w", name, err)
	}
	return dev, nil
}

type eventOfPath struct {
	path  string
	event *Event
}

func readEvents(dev *evdev.InputDevice, path string, c chan eventOfPath) {
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			return
		}
		c <- eventOfPath{path, ev}
	}
}

// findDev listens on all devices and returns the path of the first one
// that emits a key-up event.
func findDev() (string, error) {
	devInput := "/dev/input"
	entries, err := os.ReadDir(devInput)
	if err != nil {
		return "", err
	}
	c := make(chan eventOfPath)
	foundDevices := 0
	for _, entry := range entries {
		if entry.Type()&os.ModeCharDevice == 0 {
			// not a character device file.
			continue
		}
		path := filepath.Join(devInput, entry.Name())
		dev, err := evdev.Open(path)
		if err != nil {
			if strings.Contains(err.Error(), "inappropriate ioctl for device") {
				continue
			}
			fmt.Printf("failed to open %q: %s \n", path, err.Error())
			continue
		}
		foundDevices++
		defer dev.Close()
		go readEvents(dev, path, c)
	}
	if foundDevices == 0 {
		return "", fmt.Errorf("no device found (try `sudo`, since root permissions are needed)")
	}
	fmt.Println("Please use the device you want to use, now. Capturing events ....")
	for {
		evOfPath := <-c
		ev := evOfPath.event
		if ev.Type != evdev.EV_KEY {
			continue
		}
		if ev.Value != UP {
			continue
		}
		if !strings.HasPrefix(ev.CodeName(), "KEY_") {
			continue
		}
		return evOfPath.path, nil
	}
}

// GetDeviceFromPath opens the given device path, or asks the user to
// press a key on the wanted device when path is empty.
func GetDeviceFromPath(path string) (*evdev.InputDevice, error) {
	if path == "" {
		p, err := findDev()
		if err != nil {
			return nil, err
		}
		fmt.Printf("Using device %q\n", p)
		path = p
	}
	sourceDev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open the source device: %w", err)
	}
	return sourceDev, nil
}
