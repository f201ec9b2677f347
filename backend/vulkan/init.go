//go:build !(js && wasm)

package vulkan

import "github.com/gogpu/gpuboot/backend"

// init registers the vulkan backend on package import.
// This enables automatic backend selection when using backend.Default().
func init() {
	backend.Register(backend.BackendVulkan, func() backend.Backend {
		return New()
	})
}
