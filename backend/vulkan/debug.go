//go:build !(js && wasm)

package vulkan

import (
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/gogpu/gpuboot/backend"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// goffi callbacks are a finite, process-lifetime resource, so every
// registration shares one trampoline and is found again by its user data.
var (
	callbackOnce sync.Once
	callbackPtr  uintptr

	handlersMu sync.RWMutex
	handlers   = make(map[uintptr]*handler)
)

// handler routes messages from one registration to its MessengerInfo.
// slot is a Go allocation whose address is the user data given to the
// loader; the handlers map keeps it alive while registered.
type handler struct {
	slot *uintptr
	info *backend.MessengerInfo
}

func (h *handler) key() uintptr { return uintptr(unsafe.Pointer(h.slot)) }

func registerHandler(info *backend.MessengerInfo) *handler {
	h := &handler{slot: new(uintptr), info: info}
	handlersMu.Lock()
	handlers[h.key()] = h
	handlersMu.Unlock()
	return h
}

func unregisterHandler(h *handler) {
	if h == nil {
		return
	}
	handlersMu.Lock()
	delete(handlers, h.key())
	handlersMu.Unlock()
}

func lookupHandler(userData uintptr) *handler {
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	return handlers[userData]
}

func messengerCallback() uintptr {
	callbackOnce.Do(func() {
		callbackPtr = ffi.NewCallback(debugCallback)
	})
	return callbackPtr
}

// debugCallback is the PFN_vkDebugUtilsMessengerCallbackEXT trampoline:
//
//	VkBool32 callback(
//	    VkDebugUtilsMessageSeverityFlagBitsEXT severity,
//	    VkDebugUtilsMessageTypeFlagsEXT types,
//	    const VkDebugUtilsMessengerCallbackDataEXT* callbackData,
//	    void* userData)
func debugCallback(severity, types, callbackData, userData uintptr) uintptr {
	if callbackData == 0 {
		return vk.False
	}
	h := lookupHandler(userData)
	if h == nil {
		return vk.False
	}

	data := *(**vk.DebugUtilsMessengerCallbackDataEXT)(unsafe.Pointer(&callbackData))
	msg := backend.Message{
		Severity: severityOf(severity),
		Type:     typeOf(types),
		ID:       cStringFromPtr(data.PMessageIdName),
		Number:   data.MessageIdNumber,
		Text:     cStringFromPtr(data.PMessage),
	}
	if h.info.Deliver(msg) {
		return vk.True
	}
	return vk.False
}

// messengerCreateInfo fills the structure used both in the instance pNext
// chain and for vkCreateDebugUtilsMessengerEXT.
func messengerCreateInfo(info *backend.MessengerInfo, h *handler) vk.DebugUtilsMessengerCreateInfoEXT {
	return vk.DebugUtilsMessengerCreateInfoEXT{
		SType:           vk.StructureTypeDebugUtilsMessengerCreateInfoExt,
		MessageSeverity: severityFlags(info.Severities),
		MessageType:     typeFlags(info.Types),
		PfnUserCallback: messengerCallback(),
		PUserData:       h.slot,
	}
}

// registrar resolves vkCreateDebugUtilsMessengerEXT for one instance.
type registrar struct {
	inst *Instance
}

// Register creates a debug-utils messenger delivering to info.
func (r *registrar) Register(info *backend.MessengerInfo) (backend.Messenger, error) {
	i := r.inst
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.handle == 0 {
		return nil, backend.ErrInstanceDestroyed
	}

	h := registerHandler(info)
	createInfo := messengerCreateInfo(info, h)

	var messenger vk.DebugUtilsMessengerEXT
	if err := resultError("vkCreateDebugUtilsMessengerEXT",
		i.cmds.CreateDebugUtilsMessengerEXT(i.handle, &createInfo, nil, &messenger)); err != nil {
		unregisterHandler(h)
		return nil, err
	}

	i.logger().Debug("vulkan: debug messenger created")
	return &Messenger{inst: i, handle: messenger, handler: h}, nil
}

// Messenger is a live debug-utils messenger.
type Messenger struct {
	inst    *Instance
	handle  vk.DebugUtilsMessengerEXT
	handler *handler
}

// Destroy destroys the messenger. It must run before the instance is
// destroyed; calling it twice is a no-op.
func (m *Messenger) Destroy() {
	i := m.inst
	i.mu.Lock()
	defer i.mu.Unlock()

	if m.handle == 0 {
		return
	}
	if i.handle != 0 {
		i.cmds.DestroyDebugUtilsMessengerEXT(i.handle, m.handle, nil)
	}
	m.handle = 0
	unregisterHandler(m.handler)
	m.handler = nil
}
