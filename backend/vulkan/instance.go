//go:build !(js && wasm)

package vulkan

import (
	"log/slog"
	"sync"

	"github.com/gogpu/gpuboot/backend"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// Instance is a VkInstance with its instance-level commands.
type Instance struct {
	mu      sync.Mutex
	handle  vk.Instance
	cmds    vk.Commands
	backend *Backend

	// creation routes messages from the descriptor chained at creation.
	// The loader keeps using it until vkDestroyInstance returns.
	creation *handler
}

var _ backend.Instance = (*Instance)(nil)

func (i *Instance) logger() *slog.Logger { return i.backend.logger() }

// Handle returns the raw VkInstance, or 0 after Destroy.
func (i *Instance) Handle() uintptr {
	i.mu.Lock()
	defer i.mu.Unlock()
	return uintptr(i.handle)
}

// PhysicalDevices enumerates the physical devices in loader order.
func (i *Instance) PhysicalDevices() ([]backend.PhysicalDevice, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.handle == 0 {
		return nil, backend.ErrInstanceDestroyed
	}

	var count uint32
	if err := resultError("vkEnumeratePhysicalDevices",
		i.cmds.EnumeratePhysicalDevices(i.handle, &count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	handles := make([]vk.PhysicalDevice, count)
	r := i.cmds.EnumeratePhysicalDevices(i.handle, &count, &handles[0])
	if r != vk.Success && r != vk.Incomplete {
		return nil, resultError("vkEnumeratePhysicalDevices", r)
	}

	devices := make([]backend.PhysicalDevice, 0, count)
	for _, h := range handles[:count] {
		var props vk.PhysicalDeviceProperties
		i.cmds.GetPhysicalDeviceProperties(h, &props)
		dev := physicalDevice(h, &props)
		i.logger().Debug("vulkan: physical device",
			"name", dev.Name,
			"type", dev.Type,
			"vendor", dev.Driver,
			"apiVersion", dev.APIVersion,
		)
		devices = append(devices, dev)
	}
	return devices, nil
}

// Diagnostics resolves vkCreateDebugUtilsMessengerEXT through the
// instance. It is only present when VK_EXT_debug_utils was enabled.
func (i *Instance) Diagnostics() (backend.DiagnosticsEntry, bool) {
	i.mu.Lock()
	handle := i.handle
	i.mu.Unlock()
	if handle == 0 {
		return nil, false
	}

	if vk.GetInstanceProcAddr(handle, "vkCreateDebugUtilsMessengerEXT") == nil {
		return nil, false
	}
	return &registrar{inst: i}, true
}

// Destroy calls vkDestroyInstance. Messengers must be destroyed first.
func (i *Instance) Destroy() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.handle == 0 {
		return
	}
	i.cmds.DestroyInstance(i.handle, nil)
	i.handle = 0

	unregisterHandler(i.creation)
	i.creation = nil
	i.logger().Debug("vulkan: instance destroyed")
}
