//go:build !(js && wasm)

package hal

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpuboot/backend"
	wgpuhal "github.com/gogpu/wgpu/hal"
)

// DefaultVariants is the HAL variant preference used by New.
var DefaultVariants = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
	gputypes.BackendEmpty,
}

// Backend runs on a gogpu/wgpu HAL variant.
//
// Backend is safe for concurrent use from multiple goroutines.
type Backend struct {
	mu       sync.RWMutex
	variants []gputypes.Backend
	variant  gputypes.Backend
	hal      wgpuhal.Backend

	// logger is the operator logger; live instances forward to it.
	logger *slog.Logger
	relays []*relay

	// State
	initialized bool
}

var _ backend.Backend = (*Backend)(nil)

// New creates a HAL backend using DefaultVariants.
func New() *Backend {
	return NewWithVariants(DefaultVariants...)
}

// NewWithVariants creates a HAL backend that uses the first registered
// variant of the list.
func NewWithVariants(variants ...gputypes.Backend) *Backend {
	return &Backend{variants: slices.Clone(variants)}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendHAL
}

// Variant returns the HAL variant chosen by Init.
func (b *Backend) Variant() gputypes.Backend {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.variant
}

// SetLogger sets the operator logger. HAL records reach it both directly
// and, while an instance lives, through the diagnostics relay.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.logger = l
	if len(b.relays) == 0 {
		wgpuhal.SetLogger(l)
		return
	}
	var h slog.Handler
	if l != nil {
		h = l.Handler()
	}
	for _, r := range b.relays {
		r.setNext(h)
	}
}

// Init picks the first registered HAL variant.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	for _, v := range b.variants {
		if hb, ok := wgpuhal.GetBackend(v); ok {
			b.hal = hb
			b.variant = v
			b.initialized = true
			wgpuhal.Logger().Debug("hal: using variant", "variant", v)
			return nil
		}
	}
	return fmt.Errorf("%w: tried %v", ErrNoVariant, b.variants)
}

func (b *Backend) ready() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	return nil
}

// Layers reports the validation layer, which maps to the HAL debug and
// validation instance flags.
func (b *Backend) Layers() ([]backend.Layer, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	return []backend.Layer{{
		Name:        backend.ValidationLayer,
		Description: fmt.Sprintf("%v debug and validation", b.Variant()),
	}}, nil
}

// Extensions reports the window system surface extensions and
// debug-utils. The HAL creates its own surfaces.
func (b *Backend) Extensions() ([]backend.Extension, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	names := append(backend.WindowSystemExtensions(runtime.GOOS), backend.DebugUtilsExtension)
	exts := make([]backend.Extension, len(names))
	for i, name := range names {
		exts[i] = backend.Extension{Name: name, SpecVersion: 1}
	}
	return exts, nil
}

func (b *Backend) supports(layers, extensions []string) error {
	for _, name := range layers {
		if name != backend.ValidationLayer {
			return backend.NewResult("hal.CreateInstance", backend.ResultLayerNotPresent)
		}
	}
	available, err := b.Extensions()
	if err != nil {
		return err
	}
	for _, name := range extensions {
		if !slices.ContainsFunc(available, func(e backend.Extension) bool { return e.Name == name }) {
			return backend.NewResult("hal.CreateInstance", backend.ResultExtensionNotPresent)
		}
	}
	return nil
}

// CreateInstance creates a HAL instance for the chosen variant. The
// diagnostics relay is installed before the HAL call so that records
// logged during creation reach req.Diagnostics.
func (b *Backend) CreateInstance(req *backend.InstanceRequest) (backend.Instance, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	if err := b.supports(req.Layers, req.Extensions); err != nil {
		return nil, err
	}

	desc := &wgpuhal.InstanceDescriptor{
		Backends: gputypes.Backends(1) << b.Variant(),
	}
	if req.HasLayer(backend.ValidationLayer) {
		desc.Flags |= gputypes.InstanceFlagsDebug | gputypes.InstanceFlagsValidation
	}

	r := b.installRelay()
	if req.Diagnostics != nil {
		r.add(req.Diagnostics)
	}

	b.mu.RLock()
	hb := b.hal
	b.mu.RUnlock()

	hi, err := hb.CreateInstance(desc)
	if err != nil {
		b.removeRelay(r)
		return nil, &backend.Result{Op: "hal.CreateInstance", Code: backend.ResultInitializationFailed, Err: err}
	}

	wgpuhal.Logger().Info("hal: instance created",
		"variant", b.Variant(),
		"debug", desc.Flags&gputypes.InstanceFlagsDebug != 0,
	)
	return &Instance{
		backend:     b,
		hal:         hi,
		relay:       r,
		diagnostics: req.HasExtension(backend.DebugUtilsExtension),
	}, nil
}

// installRelay makes a new relay the HAL logger.
func (b *Backend) installRelay() *relay {
	b.mu.Lock()
	defer b.mu.Unlock()

	var next slog.Handler
	if b.logger != nil {
		next = b.logger.Handler()
	}
	r := newRelay(next)
	b.relays = append(b.relays, r)
	wgpuhal.SetLogger(slog.New(r.handler()))
	return r
}

// removeRelay uninstalls r. The HAL logger goes back to the most recent
// remaining relay, or to the operator logger.
func (b *Backend) removeRelay(r *relay) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := slices.Index(b.relays, r); i >= 0 {
		b.relays = slices.Delete(b.relays, i, i+1)
	}
	if n := len(b.relays); n > 0 {
		wgpuhal.SetLogger(slog.New(b.relays[n-1].handler()))
		return
	}
	wgpuhal.SetLogger(b.logger)
}

// Close releases the variant.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	b.hal = nil
	b.variant = gputypes.BackendEmpty
	b.initialized = false
}
