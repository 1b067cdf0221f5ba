//go:build !nogpu

package gpu

import (
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/mandel"
	gpuimpl "github.com/gogpu/mandel/internal/gpu"
)

var (
	providerMu sync.RWMutex
	provider   gpucontext.DeviceProvider
)

func init() {
	mandel.RegisterDevice(gpuimpl.DeviceName, func() mandel.Device { return newDevice() })
}

// newDevice opens a device on the current provider. A nil provider
// converts to a nil any, so the device creates its own GPU device.
func newDevice() *gpuimpl.Device {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return gpuimpl.NewDevice(provider)
}

// SetDeviceProvider makes devices opened afterwards share the GPU device
// of an external provider (e.g., gogpu) instead of creating their own.
//
// The provider must also implement gpucontext.HalProvider for direct HAL
// access; opening the device fails with mandel.ErrCapabilityUnavailable
// otherwise. Pass nil to go back to a private device.
func SetDeviceProvider(p gpucontext.DeviceProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}
