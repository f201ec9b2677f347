//go:build !rust

package rust

import "github.com/gogpu/gpuboot/backend"

// init registers a nil-returning factory when rust tag is not set.
// backend.Get(backend.BackendRust) then returns nil and Default skips it.
func init() {
	backend.Register(backend.BackendRust, func() backend.Backend {
		return nil
	})
}
