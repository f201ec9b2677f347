package gpuboot

import (
	"github.com/gogpu/gpuboot/backend"
	"github.com/gogpu/gpuboot/window"
)

// Option configures Start and Run.
// Use functional options to customize startup behavior.
//
// Example:
//
//	// Defaults: diagnostics per build, first device, blocking loop
//	err := gpuboot.Run(ctx, sys, b)
//
//	// Prefer a discrete GPU and poll instead of blocking
//	err := gpuboot.Run(ctx, sys, b,
//		gpuboot.WithSuitability(gpuboot.RequireType(backend.DeviceTypeDiscreteGPU)),
//		gpuboot.WithLoopMode(gpuboot.LoopPolling),
//	)
type Option func(*options)

// options holds the startup configuration.
type options struct {
	app               backend.AppInfo
	layers            []LayerDescriptor
	diagnostics       bool
	surfaceExtensions []string
	suitable          Suitability
	loopMode          LoopMode
	window            window.Config
	input             Stage
	render            Stage
}

// defaultOptions returns the default startup options.
func defaultOptions() options {
	return options{
		app: backend.AppInfo{
			Name:          "Hello Triangle",
			Version:       backend.MakeVersion(1, 0, 0),
			EngineName:    "No Engine",
			EngineVersion: backend.MakeVersion(1, 0, 0),
			APIVersion:    backend.MakeVersion(1, 0, 0),
		},
		layers: []LayerDescriptor{
			{Name: backend.ValidationLayer, Required: true},
		},
		diagnostics: defaultDiagnostics,
		suitable:    AcceptAll,
		loopMode:    LoopBlocking,
		window:      window.DefaultConfig(),
	}
}

// WithApplication sets the application name and version reported to the
// backend.
func WithApplication(name string, version backend.Version) Option {
	return func(o *options) {
		o.app.Name = name
		o.app.Version = version
	}
}

// WithEngine sets the engine name and version reported to the backend.
func WithEngine(name string, version backend.Version) Option {
	return func(o *options) {
		o.app.EngineName = name
		o.app.EngineVersion = version
	}
}

// WithAPIVersion sets the API version the application targets.
func WithAPIVersion(v backend.Version) Option {
	return func(o *options) {
		o.app.APIVersion = v
	}
}

// WithLayers replaces the requested diagnostics layers.
func WithLayers(layers ...LayerDescriptor) Option {
	return func(o *options) {
		o.layers = layers
	}
}

// WithDiagnostics turns validation diagnostics on or off. The default
// is on, unless built with the "nodiag" tag.
func WithDiagnostics(enabled bool) Option {
	return func(o *options) {
		o.diagnostics = enabled
	}
}

// WithSurfaceExtensions overrides the presentation extensions that would
// otherwise come from the window or the platform table.
func WithSurfaceExtensions(names ...string) Option {
	return func(o *options) {
		o.surfaceExtensions = names
	}
}

// WithSuitability sets the device selection strategy.
// A nil strategy accepts every device.
func WithSuitability(s Suitability) Option {
	return func(o *options) {
		o.suitable = s
	}
}

// WithLoopMode selects the blocking or polling event loop.
func WithLoopMode(m LoopMode) Option {
	return func(o *options) {
		o.loopMode = m
	}
}

// WithWindow sets the window description.
func WithWindow(cfg window.Config) Option {
	return func(o *options) {
		o.window = cfg
	}
}

// WithInputStage sets the per-iteration input step.
func WithInputStage(s Stage) Option {
	return func(o *options) {
		o.input = s
	}
}

// WithRenderStage sets the per-iteration render step.
func WithRenderStage(s Stage) Option {
	return func(o *options) {
		o.render = s
	}
}
