package gpuboot

import (
	"fmt"

	"github.com/gogpu/gpuboot/backend"
)

// Capabilities is the result of probing a backend.
type Capabilities struct {
	Layers     []backend.Layer
	Extensions []backend.Extension
}

// Probe lists the layers and extensions the backend can enable.
// It has no side effects beyond the backend queries.
func Probe(b backend.Backend) (*Capabilities, error) {
	layers, err := b.Layers()
	if err != nil {
		return nil, fmt.Errorf("%w: enumerate layers: %w", ErrBackend, err)
	}
	extensions, err := b.Extensions()
	if err != nil {
		return nil, fmt.Errorf("%w: enumerate extensions: %w", ErrBackend, err)
	}

	Logger().Debug("gpuboot: capabilities probed",
		"backend", b.Name(),
		"layers", len(layers),
		"extensions", len(extensions),
	)
	return &Capabilities{Layers: layers, Extensions: extensions}, nil
}

// HasLayer reports whether the named layer is available.
func (c *Capabilities) HasLayer(name string) bool {
	for _, l := range c.Layers {
		if l.Name == name {
			return true
		}
	}
	return false
}

// HasExtension reports whether the named extension is available.
func (c *Capabilities) HasExtension(name string) bool {
	for _, e := range c.Extensions {
		if e.Name == name {
			return true
		}
	}
	return false
}

// LayerNames returns the available layer names in backend order.
func (c *Capabilities) LayerNames() []string {
	names := make([]string, len(c.Layers))
	for i, l := range c.Layers {
		names[i] = l.Name
	}
	return names
}

// ExtensionNames returns the available extension names in backend order.
func (c *Capabilities) ExtensionNames() []string {
	names := make([]string, len(c.Extensions))
	for i, e := range c.Extensions {
		names[i] = e.Name
	}
	return names
}
