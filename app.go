package gpuboot

import (
	"context"
	"fmt"
	"runtime"

	"github.com/gogpu/gpuboot/backend"
	"github.com/gogpu/gpuboot/window"
)

// Session holds everything Start acquired. Close releases it.
type Session struct {
	Window       window.Window
	Backend      backend.Backend
	Capabilities *Capabilities
	Request      *backend.InstanceRequest
	Instance     backend.Instance

	// Messenger is nil when diagnostics are disabled.
	Messenger backend.Messenger

	// Device is the selected physical device.
	Device backend.PhysicalDevice

	opts  options
	stack Stack
}

// Start runs the initialization sequence. On failure every resource
// acquired so far is released before the error is returned.
func Start(sys window.System, b backend.Backend, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{Backend: b, opts: o}
	if err := s.start(sys); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) start(sys window.System) error {
	o := &s.opts
	log := Logger()

	if s.Backend == nil {
		return fmt.Errorf("%w: %w", ErrBackend, backend.ErrBackendNotAvailable)
	}

	// Step 1: Create window
	win, err := sys.CreateWindow(o.window)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWindow, err)
	}
	s.Window = win
	s.stack.Push("window", win.Destroy)

	// Step 2: Load backend
	if err := s.Backend.Init(); err != nil {
		return fmt.Errorf("%w: load %s: %w", ErrBackend, s.Backend.Name(), err)
	}
	setActiveBackend(s.Backend)
	s.stack.Push("backend", func() {
		setActiveBackend(nil)
		s.Backend.Close()
	})

	// Step 3: Probe capabilities
	caps, err := Probe(s.Backend)
	if err != nil {
		return err
	}
	s.Capabilities = caps

	// Step 4: Create instance
	var diag *Diagnostics
	cfg := InstanceConfig{
		Application:       o.app,
		Layers:            o.layers,
		SurfaceExtensions: s.surfaceExtensions(),
		Diagnostics:       o.diagnostics,
	}
	if o.diagnostics {
		diag = NewDiagnostics(nil)
		cfg.Messenger = diag.MessengerInfo()
	}
	req, err := NewInstanceRequest(caps, cfg)
	if err != nil {
		return err
	}
	s.Request = req

	inst, err := CreateInstance(s.Backend, req)
	if err != nil {
		return err
	}
	s.Instance = inst
	s.stack.Push("instance", inst.Destroy)

	log.Info("gpuboot: instance created",
		"backend", s.Backend.Name(),
		"application", o.app.Name,
		"api", o.app.APIVersion,
		"diagnostics", o.diagnostics,
	)
	for _, name := range caps.ExtensionNames() {
		log.Info("gpuboot: available extension", "name", name)
	}

	// Step 5: Register diagnostics
	if o.diagnostics {
		m, err := AttachDiagnostics(inst, req.Diagnostics)
		if err != nil {
			return err
		}
		s.Messenger = m
		s.stack.Push("diagnostics", m.Destroy)
	}

	// Step 6: Select device
	dev, err := PickDevice(inst, o.suitable)
	if err != nil {
		return err
	}
	s.Device = dev

	return nil
}

// surfaceExtensions picks the presentation extensions: explicit option,
// then what the window reports, then the platform table.
func (s *Session) surfaceExtensions() []string {
	if len(s.opts.surfaceExtensions) > 0 {
		return s.opts.surfaceExtensions
	}
	if exts := s.Window.RequiredInstanceExtensions(); len(exts) > 0 {
		return exts
	}
	return backend.PlatformSurfaceExtensions(runtime.GOOS)
}

// Loop returns the event loop for the session window.
func (s *Session) Loop() *EventLoop {
	return &EventLoop{
		Window: s.Window,
		Mode:   s.opts.loopMode,
		Input:  s.opts.input,
		Render: s.opts.render,
	}
}

// Close releases the diagnostics registration, the instance, the backend
// and the window, in that order. It is safe to call more than once.
func (s *Session) Close() {
	s.stack.Unwind()
}

// Run starts a session, runs its event loop and closes it. A context
// cancellation ends the loop and is returned as ctx.Err().
func Run(ctx context.Context, sys window.System, b backend.Backend, opts ...Option) error {
	s, err := Start(sys, b, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Loop().Run(ctx)
}
