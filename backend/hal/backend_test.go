//go:build !(js && wasm)

package hal

import (
	"bytes"
	"errors"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpuboot/backend"
	wgpuhal "github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/noop"
)

func newNoop(t *testing.T) *Backend {
	t.Helper()
	b := NewWithVariants(gputypes.BackendEmpty)
	if err := b.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

func request(diag *backend.MessengerInfo, extensions ...string) *backend.InstanceRequest {
	return &backend.InstanceRequest{
		Layers:      []string{backend.ValidationLayer},
		Extensions:  append(backend.PlatformSurfaceExtensions(runtime.GOOS), extensions...),
		Diagnostics: diag,
	}
}

type collector struct {
	msgs []backend.Message
}

func (c *collector) info() *backend.MessengerInfo {
	return &backend.MessengerInfo{
		Severities: backend.SeverityAll,
		Types:      backend.MessageAll,
		Callback: func(m backend.Message) bool {
			c.msgs = append(c.msgs, m)
			return false
		},
	}
}

func (c *collector) texts() []string {
	out := make([]string, len(c.msgs))
	for i, m := range c.msgs {
		out[i] = m.Text
	}
	return out
}

func TestInitNoVariant(t *testing.T) {
	// Only the noop variant is linked into this test binary.
	b := NewWithVariants(gputypes.BackendDX12)
	if err := b.Init(); !errors.Is(err, ErrNoVariant) {
		t.Errorf("Init() = %v, want ErrNoVariant", err)
	}
	if _, err := b.Layers(); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("Layers() before Init = %v, want ErrNotInitialized", err)
	}
}

func TestCapabilities(t *testing.T) {
	b := newNoop(t)
	if b.Variant() != gputypes.BackendEmpty {
		t.Errorf("Variant() = %v, want Empty", b.Variant())
	}

	layers, err := b.Layers()
	if err != nil {
		t.Fatalf("Layers() = %v", err)
	}
	if len(layers) != 1 || layers[0].Name != backend.ValidationLayer {
		t.Errorf("Layers() = %+v, want the validation layer", layers)
	}

	exts, err := b.Extensions()
	if err != nil {
		t.Fatalf("Extensions() = %v", err)
	}
	var names []string
	for _, e := range exts {
		names = append(names, e.Name)
	}
	for _, want := range []string{backend.SurfaceExtension, backend.DebugUtilsExtension} {
		if !slices.Contains(names, want) {
			t.Errorf("Extensions() = %v, missing %s", names, want)
		}
	}
}

func TestCreateInstanceRejectsUnknown(t *testing.T) {
	b := newNoop(t)

	tests := []struct {
		name string
		req  *backend.InstanceRequest
		want backend.ResultCode
	}{
		{"extension", request(nil, "VK_KHR_unknown"), backend.ResultExtensionNotPresent},
		{"layer", &backend.InstanceRequest{Layers: []string{"VK_LAYER_unknown"}}, backend.ResultLayerNotPresent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.CreateInstance(tt.req)
			var res *backend.Result
			if !errors.As(err, &res) || res.Code != tt.want {
				t.Errorf("CreateInstance() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPhysicalDevices(t *testing.T) {
	b := newNoop(t)
	inst, err := b.CreateInstance(request(nil))
	if err != nil {
		t.Fatalf("CreateInstance() = %v", err)
	}
	defer inst.Destroy()

	devs, err := inst.PhysicalDevices()
	if err != nil {
		t.Fatalf("PhysicalDevices() = %v", err)
	}
	if len(devs) != 1 {
		t.Fatalf("PhysicalDevices() = %d devices, want 1", len(devs))
	}
	if devs[0].Name != "Noop Adapter" || devs[0].Type != backend.DeviceTypeOther || devs[0].Handle != 1 {
		t.Errorf("device = %+v", devs[0])
	}

	again, _ := inst.PhysicalDevices()
	if !slices.Equal(devs, again) {
		t.Errorf("second enumeration = %+v, want %+v", again, devs)
	}
}

func TestDestroyedInstance(t *testing.T) {
	b := newNoop(t)
	inst, err := b.CreateInstance(request(nil, backend.DebugUtilsExtension))
	if err != nil {
		t.Fatalf("CreateInstance() = %v", err)
	}
	inst.Destroy()
	inst.Destroy()

	if _, err := inst.PhysicalDevices(); !errors.Is(err, backend.ErrInstanceDestroyed) {
		t.Errorf("PhysicalDevices() = %v, want ErrInstanceDestroyed", err)
	}
	if _, ok := inst.Diagnostics(); ok {
		t.Error("Diagnostics() ok on a destroyed instance")
	}
}

func TestDiagnosticsRequiresDebugUtils(t *testing.T) {
	b := newNoop(t)
	inst, err := b.CreateInstance(request(nil))
	if err != nil {
		t.Fatalf("CreateInstance() = %v", err)
	}
	defer inst.Destroy()

	if _, ok := inst.Diagnostics(); ok {
		t.Error("Diagnostics() ok without debug-utils")
	}
}

func TestMessengerReceivesHALRecords(t *testing.T) {
	b := newNoop(t)
	inst, err := b.CreateInstance(request(nil, backend.DebugUtilsExtension))
	if err != nil {
		t.Fatalf("CreateInstance() = %v", err)
	}
	defer inst.Destroy()

	entry, ok := inst.Diagnostics()
	if !ok {
		t.Fatal("Diagnostics() not available with debug-utils")
	}
	var c collector
	m, err := entry.Register(c.info())
	if err != nil {
		t.Fatalf("Register() = %v", err)
	}

	wgpuhal.Logger().Warn("vulkan: descriptor pool exhausted", "type", "Validation", "id", "VUID-x")
	if len(c.msgs) != 1 {
		t.Fatalf("delivered %d messages, want 1", len(c.msgs))
	}
	got := c.msgs[0]
	if got.Severity != backend.SeverityWarning || got.Type != backend.MessageValidation || got.ID != "VUID-x" {
		t.Errorf("message = %+v", got)
	}

	m.Destroy()
	m.Destroy()
	wgpuhal.Logger().Error("vulkan: after destroy")
	if len(c.msgs) != 1 {
		t.Errorf("delivered %v after messenger Destroy", c.texts())
	}
}

func TestCreationDescriptorLivesWithInstance(t *testing.T) {
	b := newNoop(t)
	var c collector
	inst, err := b.CreateInstance(request(c.info()))
	if err != nil {
		t.Fatalf("CreateInstance() = %v", err)
	}

	if !slices.Contains(c.texts(), "hal: instance created") {
		t.Errorf("creation messages = %v, want the creation record", c.texts())
	}

	wgpuhal.Logger().Warn("while alive")
	inst.Destroy()
	wgpuhal.Logger().Warn("after destroy")

	texts := c.texts()
	if !slices.Contains(texts, "while alive") || slices.Contains(texts, "after destroy") {
		t.Errorf("messages = %v", texts)
	}
}

func TestRelayForwardsToOperatorLogger(t *testing.T) {
	b := newNoop(t)
	var buf bytes.Buffer
	b.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { b.SetLogger(nil) })

	var c collector
	inst, err := b.CreateInstance(request(c.info(), backend.DebugUtilsExtension))
	if err != nil {
		t.Fatalf("CreateInstance() = %v", err)
	}
	wgpuhal.Logger().Warn("forwarded", "type", "General")
	inst.Destroy()

	if !strings.Contains(buf.String(), "forwarded") {
		t.Errorf("operator log = %q, want the HAL record", buf.String())
	}

	// Swapping the logger while an instance lives retargets the relay.
	var later bytes.Buffer
	inst2, err := b.CreateInstance(request(nil))
	if err != nil {
		t.Fatalf("CreateInstance() = %v", err)
	}
	b.SetLogger(slog.New(slog.NewTextHandler(&later, nil)))
	wgpuhal.Logger().Warn("retargeted")
	inst2.Destroy()

	if !strings.Contains(later.String(), "retargeted") {
		t.Errorf("new operator log = %q, want the HAL record", later.String())
	}
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  backend.Severity
	}{
		{slog.LevelDebug, backend.SeverityVerbose},
		{slog.LevelInfo, backend.SeverityInfo},
		{slog.LevelWarn, backend.SeverityWarning},
		{slog.LevelError, backend.SeverityError},
		{slog.LevelError + 4, backend.SeverityError},
	}
	for _, tt := range tests {
		if got := severityOf(tt.level); got != tt.want {
			t.Errorf("severityOf(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendHAL) {
		t.Fatal("hal backend not registered")
	}
}

func TestSameInfoRegisteredTwiceDeliversOnce(t *testing.T) {
	b := newNoop(t)
	var c collector
	info := c.info()
	inst, err := b.CreateInstance(request(info, backend.DebugUtilsExtension))
	if err != nil {
		t.Fatalf("CreateInstance() = %v", err)
	}
	entry, ok := inst.Diagnostics()
	if !ok {
		t.Fatal("Diagnostics() not available with debug-utils")
	}
	m, err := entry.Register(info)
	if err != nil {
		t.Fatalf("Register() = %v", err)
	}

	c.msgs = nil
	wgpuhal.Logger().Warn("registered twice", "type", "Validation")
	if len(c.msgs) != 1 {
		t.Errorf("delivered %v, want one message", c.texts())
	}

	// The creation descriptor keeps the subscription alive.
	m.Destroy()
	c.msgs = nil
	wgpuhal.Logger().Warn("after messenger destroy")
	if len(c.msgs) != 1 {
		t.Errorf("delivered %v after messenger Destroy, want one message", c.texts())
	}

	inst.Destroy()
	c.msgs = nil
	wgpuhal.Logger().Warn("after instance destroy")
	if len(c.msgs) != 0 {
		t.Errorf("delivered %v after instance Destroy", c.texts())
	}
}
