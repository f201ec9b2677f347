package backend

import (
	"errors"
	"slices"
	"testing"
)

func TestVersion(t *testing.T) {
	tests := []struct {
		major, minor, patch uint32
		want                string
	}{
		{1, 0, 0, "1.0.0"},
		{1, 3, 250, "1.3.250"},
		{0, 1, 0, "0.1.0"},
	}
	for _, tt := range tests {
		v := MakeVersion(tt.major, tt.minor, tt.patch)
		if got := v.String(); got != tt.want {
			t.Errorf("MakeVersion(%d, %d, %d).String() = %q, want %q", tt.major, tt.minor, tt.patch, got, tt.want)
		}
		if v.Major() != tt.major || v.Minor() != tt.minor || v.Patch() != tt.patch {
			t.Errorf("MakeVersion(%d, %d, %d) round trip = %d.%d.%d", tt.major, tt.minor, tt.patch, v.Major(), v.Minor(), v.Patch())
		}
	}

	// VK_MAKE_VERSION(1, 0, 0)
	if got := MakeVersion(1, 0, 0); got != 4194304 {
		t.Errorf("MakeVersion(1, 0, 0) = %d, want 4194304", got)
	}
}

func TestDeviceTypeString(t *testing.T) {
	tests := []struct {
		typ  DeviceType
		want string
	}{
		{DeviceTypeOther, "Other"},
		{DeviceTypeIntegratedGPU, "IntegratedGPU"},
		{DeviceTypeDiscreteGPU, "DiscreteGPU"},
		{DeviceTypeVirtualGPU, "VirtualGPU"},
		{DeviceTypeCPU, "CPU"},
		{DeviceType(42), "DeviceType(42)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("DeviceType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestSeverityAtLeast(t *testing.T) {
	tests := []struct {
		s    Severity
		min  Severity
		want bool
	}{
		{SeverityVerbose, SeverityWarning, false},
		{SeverityInfo, SeverityWarning, false},
		{SeverityWarning, SeverityWarning, true},
		{SeverityError, SeverityWarning, true},
		{SeverityInfo | SeverityError, SeverityWarning, true},
		{0, SeverityVerbose, false},
	}
	for _, tt := range tests {
		if got := tt.s.AtLeast(tt.min); got != tt.want {
			t.Errorf("%v.AtLeast(%v) = %v, want %v", tt.s, tt.min, got, tt.want)
		}
	}
}

func TestFlagStrings(t *testing.T) {
	if got := (SeverityWarning | SeverityError).String(); got != "Warning|Error" {
		t.Errorf("Severity.String() = %q, want %q", got, "Warning|Error")
	}
	if got := Severity(0).String(); got != "None" {
		t.Errorf("Severity(0).String() = %q, want %q", got, "None")
	}
	if got := MessageAll.String(); got != "General|Validation|Performance" {
		t.Errorf("MessageAll.String() = %q, want %q", got, "General|Validation|Performance")
	}
	if got := MessageType(0x9).String(); got != "General|0x8" {
		t.Errorf("MessageType(0x9).String() = %q, want %q", got, "General|0x8")
	}
}

func TestMessengerInfoDeliver(t *testing.T) {
	var got []Message
	info := &MessengerInfo{
		Severities: SeverityWarning | SeverityError,
		Types:      MessageValidation,
		Callback: func(m Message) bool {
			got = append(got, m)
			return false
		},
	}

	info.Deliver(Message{Severity: SeverityInfo, Type: MessageValidation})
	info.Deliver(Message{Severity: SeverityError, Type: MessageGeneral})
	info.Deliver(Message{Severity: SeverityWarning, Type: MessageValidation, Text: "kept"})

	if len(got) != 1 || got[0].Text != "kept" {
		t.Errorf("Deliver() delivered %v, want only the matching message", got)
	}

	var nilInfo *MessengerInfo
	if nilInfo.Deliver(Message{Severity: SeverityError, Type: MessageGeneral}) {
		t.Error("nil MessengerInfo.Deliver() = true, want false")
	}
}

func TestResult(t *testing.T) {
	if err := NewResult("vkCreateInstance", ResultSuccess); err != nil {
		t.Errorf("NewResult(success) = %v, want nil", err)
	}

	err := NewResult("vkCreateInstance", ResultExtensionNotPresent)
	var r *Result
	if !errors.As(err, &r) {
		t.Fatalf("NewResult() = %T, want *Result", err)
	}
	if r.Code != ResultExtensionNotPresent {
		t.Errorf("Result.Code = %v, want %v", r.Code, ResultExtensionNotPresent)
	}
	if got, want := err.Error(), "vkCreateInstance: extension not present"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := ResultCode(-1000).String(); got != "result -1000" {
		t.Errorf("ResultCode(-1000).String() = %q, want %q", got, "result -1000")
	}
}

func TestPlatformSurfaceExtensions(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", "VK_KHR_win32_surface"},
		{"darwin", "VK_EXT_metal_surface"},
		{"linux", "VK_KHR_xlib_surface"},
		{"android", "VK_KHR_android_surface"},
	}
	for _, tt := range tests {
		got := PlatformSurfaceExtensions(tt.goos)
		if len(got) != 2 || got[0] != SurfaceExtension || got[1] != tt.want {
			t.Errorf("PlatformSurfaceExtensions(%q) = %v, want [%s %s]", tt.goos, got, SurfaceExtension, tt.want)
		}
	}
	if got := PlatformSurfaceExtensions("plan9"); len(got) != 1 {
		t.Errorf("PlatformSurfaceExtensions(plan9) = %v, want only %s", got, SurfaceExtension)
	}
}

func TestWindowSystemExtensions(t *testing.T) {
	linux := WindowSystemExtensions("linux")
	for _, want := range []string{SurfaceExtension, "VK_KHR_xlib_surface", "VK_KHR_xcb_surface", "VK_KHR_wayland_surface"} {
		if !slices.Contains(linux, want) {
			t.Errorf("WindowSystemExtensions(linux) = %v, missing %s", linux, want)
		}
	}
	if got, want := WindowSystemExtensions("windows"), PlatformSurfaceExtensions("windows"); !slices.Equal(got, want) {
		t.Errorf("WindowSystemExtensions(windows) = %v, want %v", got, want)
	}
}
