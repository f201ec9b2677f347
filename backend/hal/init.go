//go:build !(js && wasm)

package hal

import "github.com/gogpu/gpuboot/backend"

// init registers the hal backend on package import.
// HAL variants still have to be imported separately.
func init() {
	backend.Register(backend.BackendHAL, func() backend.Backend {
		return New()
	})
}
