//go:build rust

package rust

import "errors"

// Package errors for rust backend.
var (
	// ErrNoGPU is returned when wgpu-native offers no adapter.
	ErrNoGPU = errors.New("rust: no GPU adapter available")

	// ErrLibraryNotFound is returned when wgpu-native library is not found.
	ErrLibraryNotFound = errors.New("rust: wgpu-native library not found")
)
