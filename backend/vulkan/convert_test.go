//go:build !(js && wasm)

package vulkan

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/gogpu/gpuboot/backend"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

func TestResultError(t *testing.T) {
	if err := resultError("vkCreateInstance", vk.Success); err != nil {
		t.Errorf("resultError(Success) = %v, want nil", err)
	}

	err := resultError("vkCreateInstance", vk.ErrorExtensionNotPresent)
	var res *backend.Result
	if !errors.As(err, &res) {
		t.Fatalf("resultError() = %T, want *backend.Result", err)
	}
	if res.Code != backend.ResultExtensionNotPresent {
		t.Errorf("Code = %v, want %v", res.Code, backend.ResultExtensionNotPresent)
	}
	if res.Op != "vkCreateInstance" {
		t.Errorf("Op = %q, want vkCreateInstance", res.Op)
	}
}

func TestCStringToGo(t *testing.T) {
	var name [256]byte
	copy(name[:], "VK_LAYER_KHRONOS_validation")

	tests := []struct {
		in   []byte
		want string
	}{
		{name[:], "VK_LAYER_KHRONOS_validation"},
		{[]byte{0, 'x'}, ""},
		{[]byte("unterminated"), "unterminated"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := cStringToGo(tt.in); got != tt.want {
			t.Errorf("cStringToGo(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCStringFromPtr(t *testing.T) {
	b := []byte("hello\x00world")
	if got := cStringFromPtr(uintptr(unsafe.Pointer(&b[0]))); got != "hello" {
		t.Errorf("cStringFromPtr() = %q, want %q", got, "hello")
	}
	if got := cStringFromPtr(0); got != "" {
		t.Errorf("cStringFromPtr(0) = %q, want empty", got)
	}
}

func TestCStrings(t *testing.T) {
	cs := newCStrings([]string{backend.SurfaceExtension, backend.DebugUtilsExtension})
	if cs.count() != 2 {
		t.Fatalf("count() = %d, want 2", cs.count())
	}
	if cs.array() == 0 {
		t.Fatal("array() = 0 for a non-empty list")
	}
	for i, want := range []string{backend.SurfaceExtension, backend.DebugUtilsExtension} {
		if got := cStringFromPtr(cs.ptrs[i]); got != want {
			t.Errorf("ptrs[%d] = %q, want %q", i, got, want)
		}
	}
	cs.keepAlive()

	empty := newCStrings(nil)
	if empty.count() != 0 || empty.array() != 0 {
		t.Errorf("empty list: count %d array %#x, want 0 and 0", empty.count(), empty.array())
	}
}

func TestDeviceType(t *testing.T) {
	tests := []struct {
		in   vk.PhysicalDeviceType
		want backend.DeviceType
	}{
		{vk.PhysicalDeviceTypeOther, backend.DeviceTypeOther},
		{vk.PhysicalDeviceTypeIntegratedGpu, backend.DeviceTypeIntegratedGPU},
		{vk.PhysicalDeviceTypeDiscreteGpu, backend.DeviceTypeDiscreteGPU},
		{vk.PhysicalDeviceTypeVirtualGpu, backend.DeviceTypeVirtualGPU},
		{vk.PhysicalDeviceTypeCpu, backend.DeviceTypeCPU},
		{vk.PhysicalDeviceType(99), backend.DeviceTypeOther},
	}
	for _, tt := range tests {
		if got := deviceType(tt.in); got != tt.want {
			t.Errorf("deviceType(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSeverityFlagsRoundTrip(t *testing.T) {
	for _, s := range []backend.Severity{
		backend.SeverityVerbose,
		backend.SeverityInfo,
		backend.SeverityWarning,
		backend.SeverityError,
		backend.SeverityWarning | backend.SeverityError,
		backend.SeverityAll,
	} {
		if got := severityOf(uintptr(severityFlags(s))); got != s {
			t.Errorf("severityOf(severityFlags(%v)) = %v", s, got)
		}
	}
	if got := severityFlags(backend.SeverityWarning); got != vk.DebugUtilsMessageSeverityFlagsEXT(vk.DebugUtilsMessageSeverityWarningBitExt) {
		t.Errorf("severityFlags(Warning) = %#x", got)
	}
}

func TestTypeFlagsRoundTrip(t *testing.T) {
	for _, mt := range []backend.MessageType{
		backend.MessageGeneral,
		backend.MessageValidation,
		backend.MessagePerformance,
		backend.MessageAll,
	} {
		if got := typeOf(uintptr(typeFlags(mt))); got != mt {
			t.Errorf("typeOf(typeFlags(%v)) = %v", mt, got)
		}
	}
}

func TestPhysicalDevice(t *testing.T) {
	props := vk.PhysicalDeviceProperties{
		ApiVersion:    uint32(backend.MakeVersion(1, 3, 250)),
		DriverVersion: 42,
		VendorID:      0x10DE,
		DeviceID:      0x2484,
		DeviceType:    vk.PhysicalDeviceTypeDiscreteGpu,
	}
	copy(props.DeviceName[:], "NVIDIA GeForce RTX 3070")

	got := physicalDevice(7, &props)

	if got.Handle != 7 {
		t.Errorf("Handle = %d, want 7", got.Handle)
	}
	if got.Name != "NVIDIA GeForce RTX 3070" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Type != backend.DeviceTypeDiscreteGPU {
		t.Errorf("Type = %v, want DiscreteGPU", got.Type)
	}
	if got.APIVersion.String() != "1.3.250" {
		t.Errorf("APIVersion = %v, want 1.3.250", got.APIVersion)
	}
	if got.Driver != "NVIDIA" {
		t.Errorf("Driver = %q, want NVIDIA", got.Driver)
	}
}

func TestVendorName(t *testing.T) {
	tests := []struct {
		id   uint32
		want string
	}{
		{0x1002, "AMD"},
		{0x8086, "Intel"},
		{0x106B, "Apple"},
		{0xBEEF, "0xBEEF"},
	}
	for _, tt := range tests {
		if got := vendorName(tt.id); got != tt.want {
			t.Errorf("vendorName(%#x) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
