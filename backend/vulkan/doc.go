// Package vulkan drives the system Vulkan loader directly through the pure
// Go bindings of gogpu/wgpu (hal/vulkan/vk). No cgo is involved: the loader
// is opened at Init and every call goes through goffi.
//
// Importing the package registers the backend under backend.BackendVulkan:
//
//	import _ "github.com/gogpu/gpuboot/backend/vulkan"
//
// Diagnostics messages reach Go through a single goffi callback. Each
// registration (the descriptor chained at instance creation, and every
// messenger registered afterwards) is told apart by the user data pointer
// the loader hands back with each message.
package vulkan
