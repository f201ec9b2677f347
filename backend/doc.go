// Package backend provides a pluggable graphics-backend abstraction.
//
// A backend is the capability surface gpuboot initializes against: layer
// and extension enumeration, instance creation, optional diagnostics
// registration and physical device enumeration. The package does not
// implement any backend itself; implementations live in sub-packages
// and register themselves on import.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime:
//
//	import (
//		_ "github.com/gogpu/gpuboot/backend/hal"
//		_ "github.com/gogpu/gpuboot/backend/vulkan"
//	)
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get(backend.BackendVulkan)
//
// Priority order is vulkan > hal > rust. The rust backend is only
// available when building with the "rust" tag.
//
// # Lifetimes
//
// Objects returned by a backend nest strictly: a Messenger must be
// destroyed before the Instance it was registered on, and the Instance
// before the Backend is closed. PhysicalDevice values are plain data and
// are never destroyed.
package backend
