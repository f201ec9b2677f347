//go:build !(js && wasm)

package vulkan

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gpuboot/backend"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// Backend talks to the Vulkan loader.
//
// Backend is safe for concurrent use from multiple goroutines.
type Backend struct {
	mu   sync.RWMutex
	cmds *vk.Commands

	log atomic.Pointer[slog.Logger]

	// State
	initialized bool
}

var _ backend.Backend = (*Backend)(nil)

// New creates a Vulkan backend. The loader is opened by Init.
func New() *Backend {
	b := &Backend{}
	b.log.Store(slog.New(slog.DiscardHandler))
	return b
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendVulkan
}

// SetLogger sets the logger used by the backend and its instances.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.log.Store(l)
}

func (b *Backend) logger() *slog.Logger { return b.log.Load() }

// Init opens the Vulkan loader and resolves the global entry points.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	// Step 1: Open the loader library
	if err := vk.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrLoaderNotFound, err)
	}

	// Step 2: Resolve global commands
	cmds := vk.NewCommands()
	if err := cmds.LoadGlobal(); err != nil {
		return fmt.Errorf("%w: %w", ErrLoaderNotFound, err)
	}
	b.cmds = cmds

	b.initialized = true
	b.logger().Debug("vulkan: loader opened")
	return nil
}

func (b *Backend) commands() (*vk.Commands, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	return b.cmds, nil
}

// Layers lists the instance layers known to the loader.
func (b *Backend) Layers() ([]backend.Layer, error) {
	cmds, err := b.commands()
	if err != nil {
		return nil, err
	}

	var count uint32
	if err := resultError("vkEnumerateInstanceLayerProperties",
		cmds.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	props := make([]vk.LayerProperties, count)
	r := cmds.EnumerateInstanceLayerProperties(&count, &props[0])
	if r != vk.Success && r != vk.Incomplete {
		return nil, resultError("vkEnumerateInstanceLayerProperties", r)
	}

	layers := make([]backend.Layer, 0, count)
	for _, p := range props[:count] {
		layers = append(layers, backend.Layer{
			Name:                  cStringToGo(p.LayerName[:]),
			Description:           cStringToGo(p.Description[:]),
			SpecVersion:           backend.Version(p.SpecVersion),
			ImplementationVersion: p.ImplementationVersion,
		})
	}
	return layers, nil
}

// Extensions lists the instance extensions provided by the loader and
// the implicitly enabled layers.
func (b *Backend) Extensions() ([]backend.Extension, error) {
	cmds, err := b.commands()
	if err != nil {
		return nil, err
	}

	var count uint32
	if err := resultError("vkEnumerateInstanceExtensionProperties",
		cmds.EnumerateInstanceExtensionProperties(0, &count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	props := make([]vk.ExtensionProperties, count)
	r := cmds.EnumerateInstanceExtensionProperties(0, &count, &props[0])
	if r != vk.Success && r != vk.Incomplete {
		return nil, resultError("vkEnumerateInstanceExtensionProperties", r)
	}

	exts := make([]backend.Extension, 0, count)
	for _, p := range props[:count] {
		exts = append(exts, backend.Extension{
			Name:        cStringToGo(p.ExtensionName[:]),
			SpecVersion: p.SpecVersion,
		})
	}
	return exts, nil
}

// CreateInstance calls vkCreateInstance with the request's layers and
// extensions. When req.Diagnostics is set, a debug-utils messenger
// description is chained through pNext so that messages produced during
// creation and destruction of the instance are delivered.
func (b *Backend) CreateInstance(req *backend.InstanceRequest) (backend.Instance, error) {
	cmds, err := b.commands()
	if err != nil {
		return nil, err
	}

	appName, appNamePtr := cString(req.Application.Name)
	engineName, engineNamePtr := cString(req.Application.EngineName)
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   appNamePtr,
		ApplicationVersion: uint32(req.Application.Version),
		PEngineName:        engineNamePtr,
		EngineVersion:      uint32(req.Application.EngineVersion),
		ApiVersion:         uint32(req.Application.APIVersion),
	}

	layers := newCStrings(req.Layers)
	extensions := newCStrings(req.Extensions)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledLayerCount:       layers.count(),
		PpEnabledLayerNames:     layers.array(),
		EnabledExtensionCount:   extensions.count(),
		PpEnabledExtensionNames: extensions.array(),
	}

	var creation *handler
	var dbgInfo vk.DebugUtilsMessengerCreateInfoEXT
	if req.Diagnostics != nil {
		creation = registerHandler(req.Diagnostics)
		dbgInfo = messengerCreateInfo(req.Diagnostics, creation)
		createInfo.PNext = (*uintptr)(unsafe.Pointer(&dbgInfo))
	}

	var handle vk.Instance
	r := cmds.CreateInstance(&createInfo, nil, &handle)

	runtime.KeepAlive(appName)
	runtime.KeepAlive(engineName)
	runtime.KeepAlive(&dbgInfo)
	layers.keepAlive()
	extensions.keepAlive()

	if err := resultError("vkCreateInstance", r); err != nil {
		unregisterHandler(creation)
		return nil, err
	}

	inst := &Instance{
		handle:   handle,
		cmds:     *cmds,
		creation: creation,
		backend:  b,
	}
	if err := inst.cmds.LoadInstance(handle); err != nil {
		inst.Destroy()
		return nil, &backend.Result{Op: "vkGetInstanceProcAddr", Code: backend.ResultInitializationFailed, Err: fmt.Errorf("%w: %w", ErrInstanceCommands, err)}
	}
	// Some drivers only return vkGetDeviceProcAddr for a real instance.
	vk.SetDeviceProcAddr(handle)

	b.logger().Info("vulkan: instance created",
		"apiVersion", req.Application.APIVersion,
		"layers", len(req.Layers),
		"extensions", len(req.Extensions),
	)
	return inst, nil
}

// Close marks the backend closed. The loader library stays mapped for the
// life of the process because the vk package shares it between users.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	b.cmds = nil
	b.initialized = false
	b.logger().Debug("vulkan: backend closed")
}
