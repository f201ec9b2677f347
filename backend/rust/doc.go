// Package rust provides a backend on wgpu-native via go-webgpu/webgpu.
//
// wgpu-native drives Vulkan, Metal or DX12 itself, so this backend
// exposes no layers and no diagnostics entry point. It accepts the
// platform surface extensions and reports the single adapter that
// wgpu-native picks for high performance.
//
// # Build Tags
//
// This package requires the "rust" build tag:
//
//	go build -tags rust ./...
//
// Without the tag, a stub registers a nil factory so that
// backend.Default skips it.
//
// # Dependencies
//
// The wgpu-native shared library must be installed where
// go-webgpu/webgpu can load it. Init reports ErrLibraryNotFound
// otherwise.
package rust
