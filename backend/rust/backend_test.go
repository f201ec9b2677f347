//go:build rust

package rust

import (
	"errors"
	"testing"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/gogpu/gpuboot/backend"
)

func TestBackendRegistration(t *testing.T) {
	if !backend.IsRegistered(backend.BackendRust) {
		t.Error("rust backend should be registered")
	}

	b := backend.Get(backend.BackendRust)
	if b == nil {
		t.Fatal("backend.Get(BackendRust) should not return nil")
	}
	if b.Name() != backend.BackendRust {
		t.Errorf("Name() = %q, want %q", b.Name(), backend.BackendRust)
	}
}

func TestBackendNotInitialized(t *testing.T) {
	b := NewRustBackend()

	if _, err := b.Layers(); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("Layers() = %v, want ErrNotInitialized", err)
	}
	if _, err := b.Extensions(); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("Extensions() = %v, want ErrNotInitialized", err)
	}
	if _, err := b.CreateInstance(&backend.InstanceRequest{}); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("CreateInstance() = %v, want ErrNotInitialized", err)
	}
	b.Close()
}

func TestCheck(t *testing.T) {
	available := extensions("linux")

	tests := []struct {
		name string
		req  backend.InstanceRequest
		want backend.ResultCode
	}{
		{"surface", backend.InstanceRequest{Extensions: []string{backend.SurfaceExtension, "VK_KHR_xcb_surface"}}, backend.ResultSuccess},
		{"layer", backend.InstanceRequest{Layers: []string{backend.ValidationLayer}}, backend.ResultLayerNotPresent},
		{"debug utils", backend.InstanceRequest{Extensions: []string{backend.DebugUtilsExtension}}, backend.ResultExtensionNotPresent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(&tt.req, available)
			if tt.want == backend.ResultSuccess {
				if err != nil {
					t.Errorf("check() = %v, want nil", err)
				}
				return
			}
			var res *backend.Result
			if !errors.As(err, &res) || res.Code != tt.want {
				t.Errorf("check() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPhysicalDevice(t *testing.T) {
	got := physicalDevice(adapterInfo{
		Device:      "Radeon RX 7600",
		Description: "Mesa 24.0",
		BackendType: "Vulkan",
		AdapterType: "DiscreteGPU",
		VendorID:    0x1002,
		DeviceID:    0x7480,
	})
	want := backend.PhysicalDevice{
		Handle:   1,
		Name:     "Radeon RX 7600",
		Type:     backend.DeviceTypeDiscreteGPU,
		VendorID: 0x1002,
		DeviceID: 0x7480,
		Driver:   "Vulkan Mesa 24.0",
	}
	if got != want {
		t.Errorf("physicalDevice() = %+v, want %+v", got, want)
	}
}

func TestBackendTypeToString(t *testing.T) {
	tests := []struct {
		bt   wgpu.BackendType
		want string
	}{
		{wgpu.BackendTypeNull, "Null"},
		{wgpu.BackendTypeWebGPU, "WebGPU"},
		{wgpu.BackendTypeD3D11, "D3D11"},
		{wgpu.BackendTypeD3D12, "D3D12"},
		{wgpu.BackendTypeMetal, "Metal"},
		{wgpu.BackendTypeVulkan, "Vulkan"},
		{wgpu.BackendTypeOpenGL, "OpenGL"},
		{wgpu.BackendTypeOpenGLES, "OpenGLES"},
	}
	for _, tt := range tests {
		if got := backendTypeToString(tt.bt); got != tt.want {
			t.Errorf("backendTypeToString(%v) = %q, want %q", tt.bt, got, tt.want)
		}
	}
}

func TestAdapterTypeToDeviceType(t *testing.T) {
	tests := []struct {
		at   wgpu.AdapterType
		want backend.DeviceType
	}{
		{wgpu.AdapterTypeDiscreteGPU, backend.DeviceTypeDiscreteGPU},
		{wgpu.AdapterTypeIntegratedGPU, backend.DeviceTypeIntegratedGPU},
		{wgpu.AdapterTypeCPU, backend.DeviceTypeCPU},
	}
	for _, tt := range tests {
		if got := deviceType(adapterTypeToString(tt.at)); got != tt.want {
			t.Errorf("deviceType(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}
