//go:build !(js && wasm)

package hal

import (
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpuboot/backend"
	wgpuhal "github.com/gogpu/wgpu/hal"
)

// Instance wraps a HAL instance and the adapters it exposed.
type Instance struct {
	mu       sync.Mutex
	backend  *Backend
	hal      wgpuhal.Instance
	relay    *relay
	adapters []wgpuhal.ExposedAdapter

	// diagnostics is true when debug-utils was requested.
	diagnostics bool
}

var _ backend.Instance = (*Instance)(nil)

// PhysicalDevices enumerates the HAL adapters. The adapters are owned by
// the instance and released by Destroy.
func (i *Instance) PhysicalDevices() ([]backend.PhysicalDevice, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.hal == nil {
		return nil, backend.ErrInstanceDestroyed
	}

	if i.adapters == nil {
		i.adapters = i.hal.EnumerateAdapters(nil)
	}

	devices := make([]backend.PhysicalDevice, 0, len(i.adapters))
	for n, a := range i.adapters {
		devices = append(devices, physicalDevice(n, a.Info))
	}
	return devices, nil
}

// Diagnostics returns the relay registration entry, present only when
// debug-utils was requested at creation.
func (i *Instance) Diagnostics() (backend.DiagnosticsEntry, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.hal == nil || !i.diagnostics {
		return nil, false
	}
	return registrar{relay: i.relay}, true
}

// Destroy releases the adapters, then the HAL instance, then removes the
// relay from the HAL logger.
func (i *Instance) Destroy() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.hal == nil {
		return
	}

	for _, a := range i.adapters {
		if a.Adapter != nil {
			a.Adapter.Destroy()
		}
	}
	i.adapters = nil
	i.hal.Destroy()
	i.hal = nil
	i.backend.removeRelay(i.relay)
}

type registrar struct {
	relay *relay
}

func (r registrar) Register(info *backend.MessengerInfo) (backend.Messenger, error) {
	r.relay.add(info)
	return &Messenger{relay: r.relay, info: info}, nil
}

// Messenger is a subscription on the instance relay.
type Messenger struct {
	once  sync.Once
	relay *relay
	info  *backend.MessengerInfo
}

// Destroy removes the subscription.
func (m *Messenger) Destroy() {
	m.once.Do(func() { m.relay.remove(m.info) })
}

// physicalDevice converts adapter n of an enumeration. HAL adapters have
// no raw handle, so Handle is the 1-based enumeration index.
func physicalDevice(n int, info gputypes.AdapterInfo) backend.PhysicalDevice {
	return backend.PhysicalDevice{
		Handle:   uintptr(n + 1),
		Name:     info.Name,
		Type:     deviceType(info.DeviceType),
		VendorID: info.VendorID,
		DeviceID: info.DeviceID,
		Driver:   info.Driver,
	}
}

func deviceType(t gputypes.DeviceType) backend.DeviceType {
	switch t {
	case gputypes.DeviceTypeIntegratedGPU:
		return backend.DeviceTypeIntegratedGPU
	case gputypes.DeviceTypeDiscreteGPU:
		return backend.DeviceTypeDiscreteGPU
	case gputypes.DeviceTypeVirtualGPU:
		return backend.DeviceTypeVirtualGPU
	case gputypes.DeviceTypeCPU:
		return backend.DeviceTypeCPU
	default:
		return backend.DeviceTypeOther
	}
}
