// Command gpuboot opens a window, brings up a graphics instance with
// validation diagnostics, selects a physical device and runs the event
// loop until the window is closed.
//
// It takes no flags. On failure it prints one CRITICAL-ERROR line to
// standard output and exits with status 1.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/gogpu/gpuboot"
	"github.com/gogpu/gpuboot/backend"
	"github.com/gogpu/gpuboot/window"

	_ "github.com/gogpu/gpuboot/backend/hal"
	_ "github.com/gogpu/gpuboot/backend/rust"
	_ "github.com/gogpu/gpuboot/backend/vulkan"
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

func init() {
	// Window systems must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(start())
}

// start builds the process collaborators and hands them to run.
func start() int {
	defer startProfile()()

	gpuboot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sys, err := newWindowSystem()
	if err != nil {
		return fail(os.Stdout, fmt.Errorf("%w: %w", gpuboot.ErrWindow, err))
	}
	defer sys.Terminate()

	b, err := backend.InitDefault()
	if err != nil {
		return fail(os.Stdout, fmt.Errorf("%w: %w", gpuboot.ErrBackend, err))
	}
	return run(ctx, os.Stdout, sys, b)
}

// run runs one session and returns the exit code. An interrupt is a
// clean shutdown.
func run(ctx context.Context, out io.Writer, sys window.System, b backend.Backend) int {
	defer b.Close()

	err := gpuboot.Run(ctx, sys, b)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fail(out, err)
	}
	return 0
}

func fail(out io.Writer, err error) int {
	fmt.Fprintf(out, "CRITICAL-ERROR: %v\n", err)
	return 1
}
