//go:build rust

package rust

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/gogpu/gpuboot/backend"
)

// init registers the rust backend on package import.
func init() {
	backend.Register(backend.BackendRust, func() backend.Backend {
		return NewRustBackend()
	})
}

// RustBackend runs on wgpu-native.
type RustBackend struct {
	mu  sync.RWMutex
	log atomic.Pointer[slog.Logger]

	// State
	initialized bool
}

var _ backend.Backend = (*RustBackend)(nil)

// NewRustBackend creates a new wgpu-native backend.
// The backend must be initialized with Init() before use.
func NewRustBackend() *RustBackend {
	b := &RustBackend{}
	b.log.Store(slog.New(slog.DiscardHandler))
	return b
}

// Name returns the backend identifier.
func (b *RustBackend) Name() string {
	return backend.BackendRust
}

// SetLogger sets the logger for backend messages. nil disables logging.
func (b *RustBackend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.log.Store(l)
}

// Init loads the wgpu-native library.
func (b *RustBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := wgpu.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrLibraryNotFound, err)
	}
	b.initialized = true
	b.log.Load().Debug("rust: wgpu-native loaded")
	return nil
}

func (b *RustBackend) ready() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	return nil
}

// Layers reports no layers. wgpu-native enables validation on its own.
func (b *RustBackend) Layers() ([]backend.Layer, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	return nil, nil
}

// Extensions reports the platform surface extensions.
func (b *RustBackend) Extensions() ([]backend.Extension, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	return extensions(runtime.GOOS), nil
}

func extensions(goos string) []backend.Extension {
	names := backend.WindowSystemExtensions(goos)
	exts := make([]backend.Extension, len(names))
	for i, name := range names {
		exts[i] = backend.Extension{Name: name, SpecVersion: 1}
	}
	return exts
}

// check rejects what wgpu-native cannot enable.
func check(req *backend.InstanceRequest, available []backend.Extension) error {
	if len(req.Layers) > 0 {
		return backend.NewResult("wgpuCreateInstance", backend.ResultLayerNotPresent)
	}
	for _, name := range req.Extensions {
		if !slices.ContainsFunc(available, func(e backend.Extension) bool { return e.Name == name }) {
			return backend.NewResult("wgpuCreateInstance", backend.ResultExtensionNotPresent)
		}
	}
	return nil
}

// CreateInstance creates a wgpu-native instance. req.Diagnostics is
// ignored since wgpu-native has no creation-time messenger.
func (b *RustBackend) CreateInstance(req *backend.InstanceRequest) (backend.Instance, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	if err := check(req, extensions(runtime.GOOS)); err != nil {
		return nil, err
	}

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, &backend.Result{Op: "wgpuCreateInstance", Code: backend.ResultInitializationFailed, Err: err}
	}
	b.log.Load().Info("rust: instance created", "app", req.Application.Name)
	return &Instance{instance: instance, log: b.log.Load()}, nil
}

// Close releases the backend. wgpu-native stays loaded for the process.
func (b *RustBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = false
}

// Instance wraps a wgpu-native instance and the adapter it picked.
type Instance struct {
	mu       sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	log      *slog.Logger
}

var _ backend.Instance = (*Instance)(nil)

// PhysicalDevices requests the high-performance adapter. wgpu-native
// picks one adapter, so the result holds at most one device.
func (i *Instance) PhysicalDevices() ([]backend.PhysicalDevice, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.instance == nil {
		return nil, backend.ErrInstanceDestroyed
	}

	if i.adapter == nil {
		adapter, err := i.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
			PowerPreference: wgpu.PowerPreferenceHighPerformance,
		})
		if err != nil {
			// No adapter is an empty enumeration, not a failure.
			i.log.Debug("rust: no adapter", "err", fmt.Errorf("%w: %w", ErrNoGPU, err))
			return nil, nil
		}
		i.adapter = adapter
	}

	info, err := i.adapter.GetInfo()
	if err != nil {
		return nil, &backend.Result{Op: "wgpuAdapterGetInfo", Code: backend.ResultInitializationFailed, Err: err}
	}
	dev := physicalDevice(adapterInfo{
		Vendor:      info.Vendor,
		Device:      info.Device,
		Description: info.Description,
		BackendType: backendTypeToString(info.BackendType),
		AdapterType: adapterTypeToString(info.AdapterType),
		VendorID:    info.VendorID,
		DeviceID:    info.DeviceID,
	})
	i.log.Info("rust: adapter",
		"device", dev.Name,
		"type", dev.Type,
		"driver", dev.Driver,
		"vendor", info.Vendor,
	)
	return []backend.PhysicalDevice{dev}, nil
}

// Diagnostics is never available on wgpu-native.
func (i *Instance) Diagnostics() (backend.DiagnosticsEntry, bool) {
	return nil, false
}

// Destroy releases the adapter, then the instance.
func (i *Instance) Destroy() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.adapter != nil {
		i.adapter.Release()
		i.adapter = nil
	}
	if i.instance != nil {
		i.instance.Release()
		i.instance = nil
	}
}

// adapterInfo is the part of the wgpu-native adapter info that maps onto
// a PhysicalDevice.
type adapterInfo struct {
	Vendor      string
	Device      string
	Description string
	BackendType string
	AdapterType string
	VendorID    uint32
	DeviceID    uint32
}

func physicalDevice(info adapterInfo) backend.PhysicalDevice {
	driver := info.BackendType
	if info.Description != "" {
		driver += " " + info.Description
	}
	return backend.PhysicalDevice{
		Handle:   1,
		Name:     info.Device,
		Type:     deviceType(info.AdapterType),
		VendorID: info.VendorID,
		DeviceID: info.DeviceID,
		Driver:   driver,
	}
}

func deviceType(adapterType string) backend.DeviceType {
	switch adapterType {
	case "DiscreteGPU":
		return backend.DeviceTypeDiscreteGPU
	case "IntegratedGPU":
		return backend.DeviceTypeIntegratedGPU
	case "CPU":
		return backend.DeviceTypeCPU
	default:
		return backend.DeviceTypeOther
	}
}

// backendTypeToString converts wgpu backend type to string.
func backendTypeToString(bt wgpu.BackendType) string {
	switch bt {
	case wgpu.BackendTypeNull:
		return "Null"
	case wgpu.BackendTypeWebGPU:
		return "WebGPU"
	case wgpu.BackendTypeD3D11:
		return "D3D11"
	case wgpu.BackendTypeD3D12:
		return "D3D12"
	case wgpu.BackendTypeMetal:
		return "Metal"
	case wgpu.BackendTypeVulkan:
		return "Vulkan"
	case wgpu.BackendTypeOpenGL:
		return "OpenGL"
	case wgpu.BackendTypeOpenGLES:
		return "OpenGLES"
	default:
		return "Unknown"
	}
}

// adapterTypeToString converts wgpu adapter type to string.
func adapterTypeToString(at wgpu.AdapterType) string {
	switch at {
	case wgpu.AdapterTypeDiscreteGPU:
		return "DiscreteGPU"
	case wgpu.AdapterTypeIntegratedGPU:
		return "IntegratedGPU"
	case wgpu.AdapterTypeCPU:
		return "CPU"
	default:
		return "Unknown"
	}
}
