package backend

import (
	"errors"
	"slices"
)

// Backend names.
const (
	// BackendVulkan drives the Vulkan loader directly.
	BackendVulkan = "vulkan"

	// BackendHAL drives whichever gogpu/wgpu HAL backend is registered.
	BackendHAL = "hal"

	// BackendRust drives wgpu-native via go-webgpu/webgpu.
	BackendRust = "rust"
)

// Well-known layer and extension names.
const (
	// ValidationLayer is the Khronos validation layer.
	ValidationLayer = "VK_LAYER_KHRONOS_validation"

	// DebugUtilsExtension is the instance extension providing the
	// diagnostics messenger.
	DebugUtilsExtension = "VK_EXT_debug_utils"

	// SurfaceExtension is the platform-independent surface extension.
	SurfaceExtension = "VK_KHR_surface"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrInstanceDestroyed is returned when an instance is used after Destroy.
	ErrInstanceDestroyed = errors.New("backend: instance destroyed")
)

// Backend is the interface for graphics backends.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "vulkan", "hal").
	Name() string

	// Init loads the backend library. It must be called before any
	// other method. Calling Init on an initialized backend is a no-op.
	Init() error

	// Layers lists the validation/diagnostics layers the backend can enable.
	Layers() ([]Layer, error)

	// Extensions lists the instance extensions the backend can enable.
	Extensions() ([]Extension, error)

	// CreateInstance creates an instance from a fully assembled request.
	// Native failures are reported as a Result.
	CreateInstance(req *InstanceRequest) (Instance, error)

	// Close releases the backend library.
	// The backend should not be used after Close is called.
	Close()
}

// Instance is a live connection to a graphics backend.
type Instance interface {
	// PhysicalDevices enumerates the devices exposed by the instance,
	// in the backend's enumeration order.
	PhysicalDevices() ([]PhysicalDevice, error)

	// Diagnostics resolves the diagnostics registration entry point.
	// ok is false when the backend or driver does not provide one.
	Diagnostics() (entry DiagnosticsEntry, ok bool)

	// Destroy releases the instance. Every Messenger registered on it
	// must be destroyed first.
	Destroy()
}

// DiagnosticsEntry registers diagnostics callbacks on an instance.
type DiagnosticsEntry interface {
	Register(info *MessengerInfo) (Messenger, error)
}

// Messenger is an active diagnostics registration.
type Messenger interface {
	Destroy()
}

// Layer describes an available layer.
type Layer struct {
	Name                  string
	Description           string
	SpecVersion           Version
	ImplementationVersion uint32
}

// Extension describes an available instance extension.
type Extension struct {
	Name        string
	SpecVersion uint32
}

// AppInfo is the application identity passed at instance creation.
// It is informational only.
type AppInfo struct {
	Name          string
	Version       Version
	EngineName    string
	EngineVersion Version
	APIVersion    Version
}

// InstanceRequest is the complete input of Backend.CreateInstance.
type InstanceRequest struct {
	Application AppInfo

	// Layers and Extensions are enabled at creation time and cannot be
	// changed afterwards.
	Layers     []string
	Extensions []string

	// Diagnostics, when non-nil, is chained onto the creation call so that
	// messages emitted while the instance is being created are delivered.
	Diagnostics *MessengerInfo
}

// HasLayer reports whether the request enables the named layer.
func (r *InstanceRequest) HasLayer(name string) bool {
	return slices.Contains(r.Layers, name)
}

// HasExtension reports whether the request enables the named extension.
func (r *InstanceRequest) HasExtension(name string) bool {
	return slices.Contains(r.Extensions, name)
}

// PhysicalDevice describes one processing device exposed by an instance.
// Handle is owned by the instance and is only valid while it lives.
type PhysicalDevice struct {
	Handle        uintptr
	Name          string
	Type          DeviceType
	VendorID      uint32
	DeviceID      uint32
	APIVersion    Version
	DriverVersion uint32
	Driver        string
}
