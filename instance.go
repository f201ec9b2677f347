package gpuboot

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gpuboot/backend"
)

// LayerDescriptor names a layer to request and whether startup depends on it.
type LayerDescriptor struct {
	Name     string
	Required bool
}

// InstanceConfig is the input of NewInstanceRequest.
type InstanceConfig struct {
	Application backend.AppInfo

	// Layers are requested only when Diagnostics is set.
	Layers []LayerDescriptor

	// SurfaceExtensions are the platform presentation extensions. They are
	// always requested.
	SurfaceExtensions []string

	// Diagnostics enables the diagnostics layers, the debug-utils extension
	// and the chained messenger descriptor.
	Diagnostics bool

	// Messenger is the descriptor chained onto the creation request when
	// Diagnostics is set. Nil selects NewDiagnostics(nil).MessengerInfo().
	Messenger *backend.MessengerInfo
}

// NewInstanceRequest assembles the instance creation request from the
// probed capabilities. It fails with ErrConfiguration, before anything is
// created, when diagnostics are enabled and a required layer is missing.
func NewInstanceRequest(caps *Capabilities, cfg InstanceConfig) (*backend.InstanceRequest, error) {
	req := &backend.InstanceRequest{
		Application: cfg.Application,
	}

	if cfg.Diagnostics {
		for _, l := range cfg.Layers {
			switch {
			case caps.HasLayer(l.Name):
				if !slices.Contains(req.Layers, l.Name) {
					req.Layers = append(req.Layers, l.Name)
				}
			case l.Required:
				return nil, fmt.Errorf("%w: requested diagnostics layer unavailable: %s", ErrConfiguration, l.Name)
			default:
				Logger().Warn("gpuboot: optional layer unavailable, skipping", "layer", l.Name)
			}
		}
	}

	req.Extensions = appendUnique(req.Extensions, cfg.SurfaceExtensions...)
	if cfg.Diagnostics {
		req.Extensions = appendUnique(req.Extensions, backend.DebugUtilsExtension)

		req.Diagnostics = cfg.Messenger
		if req.Diagnostics == nil {
			req.Diagnostics = NewDiagnostics(nil).MessengerInfo()
		}
	}

	return req, nil
}

// CreateInstance asks the backend for an instance and classifies the
// outcome: a missing extension is ErrConfiguration, anything else is
// ErrBackend. Failures are not retried.
func CreateInstance(b backend.Backend, req *backend.InstanceRequest) (backend.Instance, error) {
	Logger().Debug("gpuboot: creating instance",
		"backend", b.Name(),
		"application", req.Application.Name,
		"layers", req.Layers,
		"extensions", req.Extensions,
		"diagnostics", req.Diagnostics != nil,
	)

	inst, err := b.CreateInstance(req)
	if err != nil {
		if inst != nil {
			inst.Destroy()
		}
		var r *backend.Result
		if errors.As(err, &r) && r.Code == backend.ResultExtensionNotPresent {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return nil, fmt.Errorf("%w: instance creation failed: %w", ErrBackend, err)
	}
	if inst == nil {
		return nil, fmt.Errorf("%w: instance creation failed: backend returned no instance", ErrBackend)
	}
	return inst, nil
}

// appendUnique appends the names not already in list, preserving order.
func appendUnique(list []string, names ...string) []string {
	for _, n := range names {
		if !slices.Contains(list, n) {
			list = append(list, n)
		}
	}
	return list
}
