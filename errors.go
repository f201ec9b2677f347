package gpuboot

import "errors"

// Startup errors. Every error returned by Start, Run and the individual
// initialization steps wraps exactly one of these.
var (
	// ErrConfiguration is returned when a requested capability (layer or
	// extension) is not available.
	ErrConfiguration = errors.New("gpuboot: configuration error")

	// ErrBackend is returned when the backend rejects a call for a reason
	// that is not otherwise classified.
	ErrBackend = errors.New("gpuboot: backend error")

	// ErrUnsupportedFeature is returned when an optional entry point the
	// application asked for is absent.
	ErrUnsupportedFeature = errors.New("gpuboot: unsupported feature")

	// ErrNoDevice is returned when the instance exposes no physical devices.
	ErrNoDevice = errors.New("gpuboot: no devices support this backend")

	// ErrNoSuitableDevice is returned when no physical device passes the
	// suitability check.
	ErrNoSuitableDevice = errors.New("gpuboot: no suitable device")

	// ErrWindow is returned when the window system cannot create a window.
	ErrWindow = errors.New("gpuboot: window creation failed")
)
