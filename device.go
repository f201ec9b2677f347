package gpuboot

import (
	"fmt"
	"slices"

	"github.com/gogpu/gpuboot/backend"
)

// Suitability decides whether a physical device can be used.
type Suitability func(backend.PhysicalDevice) bool

// AcceptAll accepts every device.
func AcceptAll(backend.PhysicalDevice) bool { return true }

// RequireType accepts devices of any of the given types.
func RequireType(types ...backend.DeviceType) Suitability {
	return func(d backend.PhysicalDevice) bool {
		return slices.Contains(types, d.Type)
	}
}

// AllOf accepts devices that pass every predicate.
func AllOf(preds ...Suitability) Suitability {
	return func(d backend.PhysicalDevice) bool {
		for _, p := range preds {
			if p != nil && !p(d) {
				return false
			}
		}
		return true
	}
}

// PickDevice returns the first device, in enumeration order, for which
// suitable holds. A nil suitable is AcceptAll.
func PickDevice(inst backend.Instance, suitable Suitability) (backend.PhysicalDevice, error) {
	if suitable == nil {
		suitable = AcceptAll
	}

	devices, err := inst.PhysicalDevices()
	if err != nil {
		return backend.PhysicalDevice{}, fmt.Errorf("%w: enumerate physical devices: %w", ErrBackend, err)
	}
	if len(devices) == 0 {
		return backend.PhysicalDevice{}, ErrNoDevice
	}

	for i, d := range devices {
		if suitable(d) {
			Logger().Info("gpuboot: device selected",
				"index", i,
				"name", d.Name,
				"type", d.Type,
				"vendorID", fmt.Sprintf("0x%04X", d.VendorID),
				"deviceID", fmt.Sprintf("0x%04X", d.DeviceID),
				"api", d.APIVersion,
			)
			return d, nil
		}
		Logger().Debug("gpuboot: device not suitable", "index", i, "name", d.Name)
	}
	return backend.PhysicalDevice{}, fmt.Errorf("%w: %d devices checked", ErrNoSuitableDevice, len(devices))
}
