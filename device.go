package mandel

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Device evaluates every pixel of a frame in parallel.
//
// Implementations are provided by backend packages and registered by name.
// Users opt in to the GPU device via blank import:
//
//	import _ "github.com/gogpu/mandel/gpu" // registers "gpu"
type Device interface {
	// Name returns the registered device name (e.g., "cpu", "gpu").
	Name() string

	// Init acquires device resources. Called once by OpenDevice.
	// A device that cannot run returns an error wrapping
	// ErrCapabilityUnavailable or a *ShaderBuildError.
	Init() error

	// Close releases device resources.
	Close()

	// Render evaluates p for every pixel of dst. dst has already been
	// resized to p.Geometry and p has been validated.
	Render(p RenderParameters, dst *Frame) error
}

// DeviceFactory creates an uninitialized device.
type DeviceFactory func() Device

var (
	devicesMu sync.RWMutex
	factories = map[string]DeviceFactory{}
	opened    []Device
)

// RegisterDevice makes a device available under name.
// Registering the same name again replaces the previous factory.
//
// Typical usage from backend packages:
//
//	func init() {
//	    mandel.RegisterDevice("gpu", func() mandel.Device { return &gpuimpl.Device{} })
//	}
func RegisterDevice(name string, factory DeviceFactory) {
	if factory == nil {
		panic("mandel: RegisterDevice factory is nil")
	}
	devicesMu.Lock()
	defer devicesMu.Unlock()
	factories[name] = factory
}

// Devices returns the registered device names, sorted.
func Devices() []string {
	devicesMu.RLock()
	defer devicesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenDevice creates and initializes the device registered under name.
//
// Unknown names and devices that fail to initialize report
// ErrCapabilityUnavailable (or a *ShaderBuildError when the coloring
// program does not compile). No other device is tried in their place.
func OpenDevice(name string) (Device, error) {
	devicesMu.RLock()
	factory, ok := factories[name]
	devicesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no device %q registered (available: %v)", ErrCapabilityUnavailable, name, Devices())
	}

	d := factory()
	propagateLogger(d, Logger())
	if err := d.Init(); err != nil {
		d.Close()
		var sbe *ShaderBuildError
		if errors.As(err, &sbe) || errors.Is(err, ErrCapabilityUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: device %q: %w", ErrCapabilityUnavailable, name, err)
	}

	devicesMu.Lock()
	opened = append(opened, d)
	devicesMu.Unlock()

	Logger().Info("device opened", "device", d.Name())
	return d, nil
}

// CloseDevice closes d and stops propagating logger changes to it.
func CloseDevice(d Device) {
	if d == nil {
		return
	}
	devicesMu.Lock()
	for i, o := range opened {
		if o == d {
			opened = append(opened[:i], opened[i+1:]...)
			break
		}
	}
	devicesMu.Unlock()
	d.Close()
}

func openDevices() []Device {
	devicesMu.RLock()
	defer devicesMu.RUnlock()
	out := make([]Device, len(opened))
	copy(out, opened)
	return out
}
