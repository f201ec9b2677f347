//go:build !(js && wasm)

package vulkan

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/gogpu/gpuboot/backend"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// resultError converts a VkResult into a backend.Result error.
// It returns nil for VK_SUCCESS.
func resultError(op string, r vk.Result) error {
	return backend.NewResult(op, backend.ResultCode(r))
}

// cStringToGo reads a fixed-size, NUL-padded array.
func cStringToGo(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// ptrFromUintptr converts a uintptr handed over by the loader into *byte
// using the double indirection pattern, which go vet accepts.
func ptrFromUintptr(ptr uintptr) *byte {
	return *(**byte)(unsafe.Pointer(&ptr))
}

// cStringFromPtr reads a NUL-terminated string owned by the loader.
func cStringFromPtr(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	const maxLen = 4096
	buf := unsafe.Slice(ptrFromUintptr(ptr), maxLen)
	return cStringToGo(buf)
}

// cStrings holds NUL-terminated copies of a list of names and the pointer
// array Vulkan reads them through. It must stay reachable until the call
// consuming it returns; call keepAlive after that call.
type cStrings struct {
	names []string
	ptrs  []uintptr
}

func newCStrings(names []string) *cStrings {
	cs := &cStrings{
		names: make([]string, len(names)),
		ptrs:  make([]uintptr, len(names)),
	}
	for i, name := range names {
		cs.names[i] = name + "\x00"
		cs.ptrs[i] = uintptr(unsafe.Pointer(unsafe.StringData(cs.names[i])))
	}
	return cs
}

// count returns the number of names as Vulkan expects it.
func (cs *cStrings) count() uint32 { return uint32(len(cs.ptrs)) }

// array returns the address of the pointer array, or 0 when empty.
func (cs *cStrings) array() uintptr {
	if len(cs.ptrs) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&cs.ptrs[0]))
}

func (cs *cStrings) keepAlive() {
	runtime.KeepAlive(cs.names)
	runtime.KeepAlive(cs.ptrs)
}

// cString returns a NUL-terminated copy of s and its address.
func cString(s string) ([]byte, uintptr) {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b, uintptr(unsafe.Pointer(&b[0]))
}

func deviceType(t vk.PhysicalDeviceType) backend.DeviceType {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return backend.DeviceTypeIntegratedGPU
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return backend.DeviceTypeDiscreteGPU
	case vk.PhysicalDeviceTypeVirtualGpu:
		return backend.DeviceTypeVirtualGPU
	case vk.PhysicalDeviceTypeCpu:
		return backend.DeviceTypeCPU
	default:
		return backend.DeviceTypeOther
	}
}

// severityFlags maps a severity mask onto the debug-utils severity bits.
func severityFlags(s backend.Severity) vk.DebugUtilsMessageSeverityFlagsEXT {
	var f vk.DebugUtilsMessageSeverityFlagBitsEXT
	if s&backend.SeverityVerbose != 0 {
		f |= vk.DebugUtilsMessageSeverityVerboseBitExt
	}
	if s&backend.SeverityInfo != 0 {
		f |= vk.DebugUtilsMessageSeverityInfoBitExt
	}
	if s&backend.SeverityWarning != 0 {
		f |= vk.DebugUtilsMessageSeverityWarningBitExt
	}
	if s&backend.SeverityError != 0 {
		f |= vk.DebugUtilsMessageSeverityErrorBitExt
	}
	return vk.DebugUtilsMessageSeverityFlagsEXT(f)
}

// severityOf maps the severity bit of a received message.
func severityOf(bits uintptr) backend.Severity {
	b := vk.DebugUtilsMessageSeverityFlagBitsEXT(bits)
	var s backend.Severity
	if b&vk.DebugUtilsMessageSeverityVerboseBitExt != 0 {
		s |= backend.SeverityVerbose
	}
	if b&vk.DebugUtilsMessageSeverityInfoBitExt != 0 {
		s |= backend.SeverityInfo
	}
	if b&vk.DebugUtilsMessageSeverityWarningBitExt != 0 {
		s |= backend.SeverityWarning
	}
	if b&vk.DebugUtilsMessageSeverityErrorBitExt != 0 {
		s |= backend.SeverityError
	}
	return s
}

func typeFlags(t backend.MessageType) vk.DebugUtilsMessageTypeFlagsEXT {
	var f vk.DebugUtilsMessageTypeFlagBitsEXT
	if t&backend.MessageGeneral != 0 {
		f |= vk.DebugUtilsMessageTypeGeneralBitExt
	}
	if t&backend.MessageValidation != 0 {
		f |= vk.DebugUtilsMessageTypeValidationBitExt
	}
	if t&backend.MessagePerformance != 0 {
		f |= vk.DebugUtilsMessageTypePerformanceBitExt
	}
	return vk.DebugUtilsMessageTypeFlagsEXT(f)
}

func typeOf(bits uintptr) backend.MessageType {
	b := vk.DebugUtilsMessageTypeFlagBitsEXT(bits)
	var t backend.MessageType
	if b&vk.DebugUtilsMessageTypeGeneralBitExt != 0 {
		t |= backend.MessageGeneral
	}
	if b&vk.DebugUtilsMessageTypeValidationBitExt != 0 {
		t |= backend.MessageValidation
	}
	if b&vk.DebugUtilsMessageTypePerformanceBitExt != 0 {
		t |= backend.MessagePerformance
	}
	return t
}

// vendorName returns the PCI vendor name for the common GPU vendors.
func vendorName(id uint32) string {
	switch id {
	case 0x1002:
		return "AMD"
	case 0x10DE:
		return "NVIDIA"
	case 0x8086:
		return "Intel"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x1010:
		return "ImgTec"
	case 0x106B:
		return "Apple"
	default:
		return fmt.Sprintf("0x%04X", id)
	}
}

func physicalDevice(h vk.PhysicalDevice, props *vk.PhysicalDeviceProperties) backend.PhysicalDevice {
	return backend.PhysicalDevice{
		Handle:        uintptr(h),
		Name:          cStringToGo(props.DeviceName[:]),
		Type:          deviceType(props.DeviceType),
		VendorID:      props.VendorID,
		DeviceID:      props.DeviceID,
		APIVersion:    backend.Version(props.ApiVersion),
		DriverVersion: props.DriverVersion,
		Driver:        vendorName(props.VendorID),
	}
}
