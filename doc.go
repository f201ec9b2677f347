// Package gpuboot is the bootstrap layer of a graphics application.
//
// # Overview
//
// gpuboot creates a native window, connects to a graphics backend,
// optionally enables validation diagnostics, selects a physical device and
// runs an event loop until the window is closed. It renders nothing: its
// job is to establish whether the backend is usable and on which device.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/gpuboot"
//		"github.com/gogpu/gpuboot/backend"
//		_ "github.com/gogpu/gpuboot/backend/vulkan"
//		"github.com/gogpu/gpuboot/window/glfw"
//	)
//
//	sys, err := glfw.NewSystem()
//	if err != nil {
//		return err
//	}
//	defer sys.Terminate()
//
//	err = gpuboot.Run(ctx, sys, backend.Default())
//
// # Initialization Order
//
// Start performs, in order:
//
//  1. window creation
//  2. backend library load
//  3. capability probe (layers, extensions)
//  4. instance creation, with the diagnostics descriptor chained on
//  5. diagnostics registration (when enabled)
//  6. device selection
//
// Every acquired resource is pushed on a Stack. A failure at any step
// unwinds everything acquired so far, and Session.Close unwinds the rest
// on a clean shutdown: diagnostics, then instance, then backend, then
// window.
//
// # Errors
//
// All startup failures wrap one of ErrConfiguration, ErrBackend,
// ErrUnsupportedFeature, ErrNoDevice, ErrNoSuitableDevice or ErrWindow.
// Test them with errors.Is.
//
// # Logging
//
// gpuboot is silent by default. Call SetLogger to receive lifecycle
// events and backend diagnostics messages.
package gpuboot
