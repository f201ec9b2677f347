package gpuboot

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpuboot/backend/hal"
	"github.com/gogpu/gpuboot/internal/testkit"
	wgpuhal "github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/noop"
)

func TestStartHALDiagnosticsLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	orig := Logger()
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(orig) })

	sys := &testkit.System{Journal: &testkit.Journal{}}
	s, err := Start(sys, hal.NewWithVariants(gputypes.BackendEmpty), WithDiagnostics(true))
	if err != nil {
		t.Fatalf("Start() = %v", err)
	}
	defer s.Close()

	if s.Device.Name != "Noop Adapter" {
		t.Errorf("Device = %q, want Noop Adapter", s.Device.Name)
	}

	buf.Reset()
	wgpuhal.Logger().Warn("descriptor set leaked", "type", "Validation")
	if n := strings.Count(buf.String(), "validation layer: descriptor set leaked"); n != 1 {
		t.Errorf("warning logged %d times, want 1\n%s", n, buf.String())
	}
}
