// Package testkit provides scripted backend and window doubles.
//
// Every double records the calls it receives in a shared Journal so tests
// can assert on ordering across the backend and the window system.
package testkit

import (
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/gogpu/gpuboot/backend"
)

// Journal is an ordered call log. The zero value is ready to use.
type Journal struct {
	mu    sync.Mutex
	calls []string
}

// Record appends a call.
func (j *Journal) Record(call string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	j.calls = append(j.calls, call)
	j.mu.Unlock()
}

// Calls returns a copy of the log.
func (j *Journal) Calls() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.calls)
}

// Count returns how many times call was recorded.
func (j *Journal) Count(call string) int {
	n := 0
	for _, c := range j.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Filter returns the calls with the given prefix, in order.
func (j *Journal) Filter(prefix string) []string {
	var out []string
	for _, c := range j.Calls() {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// Backend is a scripted backend.Backend.
type Backend struct {
	Journal *Journal

	BackendName         string
	InitErr             error
	AvailableLayers     []string
	AvailableExtensions []string
	LayersErr           error
	ExtensionsErr       error

	// CreateErr is returned by CreateInstance. When nil, the request is
	// checked against AvailableExtensions and a missing one yields
	// backend.ResultExtensionNotPresent.
	CreateErr error

	// LeakOnError makes CreateInstance return an instance together with
	// CreateErr.
	LeakOnError bool

	// CreationMessages are delivered through the chained descriptor while
	// the instance is being created.
	CreationMessages []backend.Message

	Devices       []backend.PhysicalDevice
	DevicesErr    error
	NoDiagnostics bool
	RegisterErr   error

	// Requests holds every request passed to CreateInstance.
	Requests []*backend.InstanceRequest

	// Instances holds every instance created.
	Instances []*Instance
}

var _ backend.Backend = (*Backend)(nil)

// NewBackend returns a backend exposing the validation layer, the surface
// extensions of the running platform, the debug-utils extension and one
// discrete GPU.
func NewBackend(j *Journal) *Backend {
	return &Backend{
		Journal:             j,
		BackendName:         "testkit",
		AvailableLayers:     []string{backend.ValidationLayer},
		AvailableExtensions: append(backend.PlatformSurfaceExtensions(runtime.GOOS), backend.DebugUtilsExtension),
		Devices: []backend.PhysicalDevice{
			{Handle: 1, Name: "Test GPU", Type: backend.DeviceTypeDiscreteGPU, VendorID: 0x10DE, DeviceID: 0x2484},
		},
	}
}

func (b *Backend) Name() string { return b.BackendName }

func (b *Backend) Init() error {
	b.Journal.Record("backend.init")
	return b.InitErr
}

func (b *Backend) Layers() ([]backend.Layer, error) {
	b.Journal.Record("backend.layers")
	if b.LayersErr != nil {
		return nil, b.LayersErr
	}
	layers := make([]backend.Layer, len(b.AvailableLayers))
	for i, name := range b.AvailableLayers {
		layers[i] = backend.Layer{Name: name, SpecVersion: backend.MakeVersion(1, 3, 0)}
	}
	return layers, nil
}

func (b *Backend) Extensions() ([]backend.Extension, error) {
	b.Journal.Record("backend.extensions")
	if b.ExtensionsErr != nil {
		return nil, b.ExtensionsErr
	}
	exts := make([]backend.Extension, len(b.AvailableExtensions))
	for i, name := range b.AvailableExtensions {
		exts[i] = backend.Extension{Name: name, SpecVersion: 1}
	}
	return exts, nil
}

func (b *Backend) CreateInstance(req *backend.InstanceRequest) (backend.Instance, error) {
	b.Journal.Record("backend.create")
	b.Requests = append(b.Requests, req)

	for _, msg := range b.CreationMessages {
		req.Diagnostics.Deliver(msg)
	}

	if b.CreateErr != nil {
		if b.LeakOnError {
			inst := &Instance{backend: b}
			b.Instances = append(b.Instances, inst)
			return inst, b.CreateErr
		}
		return nil, b.CreateErr
	}
	for _, name := range req.Extensions {
		if !slices.Contains(b.AvailableExtensions, name) {
			return nil, backend.NewResult("vkCreateInstance", backend.ResultExtensionNotPresent)
		}
	}
	for _, name := range req.Layers {
		if !slices.Contains(b.AvailableLayers, name) {
			return nil, backend.NewResult("vkCreateInstance", backend.ResultLayerNotPresent)
		}
	}

	inst := &Instance{backend: b}
	b.Instances = append(b.Instances, inst)
	return inst, nil
}

func (b *Backend) Close() {
	b.Journal.Record("backend.close")
}

// Instance is the backend.Instance created by Backend.
type Instance struct {
	backend    *Backend
	Destroyed  int
	Messengers []*Messenger
}

var _ backend.Instance = (*Instance)(nil)

func (i *Instance) PhysicalDevices() ([]backend.PhysicalDevice, error) {
	i.backend.Journal.Record("instance.enumerate")
	if i.backend.DevicesErr != nil {
		return nil, i.backend.DevicesErr
	}
	return slices.Clone(i.backend.Devices), nil
}

func (i *Instance) Diagnostics() (backend.DiagnosticsEntry, bool) {
	i.backend.Journal.Record("instance.diagnostics")
	if i.backend.NoDiagnostics {
		return nil, false
	}
	return registrar{i}, true
}

func (i *Instance) Destroy() {
	i.backend.Journal.Record("instance.destroy")
	i.Destroyed++
}

// Emit delivers msg to every live messenger and returns the abort
// requests in registration order.
func (i *Instance) Emit(msg backend.Message) []bool {
	var aborts []bool
	for _, m := range i.Messengers {
		if m.Destroyed == 0 {
			aborts = append(aborts, m.Info.Deliver(msg))
		}
	}
	return aborts
}

type registrar struct{ inst *Instance }

func (r registrar) Register(info *backend.MessengerInfo) (backend.Messenger, error) {
	r.inst.backend.Journal.Record("messenger.register")
	if err := r.inst.backend.RegisterErr; err != nil {
		return nil, err
	}
	m := &Messenger{Info: info, journal: r.inst.backend.Journal}
	r.inst.Messengers = append(r.inst.Messengers, m)
	return m, nil
}

// Messenger is the backend.Messenger returned by a registration.
type Messenger struct {
	Info      *backend.MessengerInfo
	Destroyed int
	journal   *Journal
}

func (m *Messenger) Destroy() {
	m.journal.Record("messenger.destroy")
	m.Destroyed++
}
