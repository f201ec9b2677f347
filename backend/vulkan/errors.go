package vulkan

import "errors"

// Package errors for the vulkan backend.
var (
	// ErrLoaderNotFound is returned when the Vulkan loader library cannot
	// be opened or lacks its global entry points.
	ErrLoaderNotFound = errors.New("vulkan: loader not found")

	// ErrInstanceCommands is returned when instance-level entry points
	// cannot be resolved after vkCreateInstance succeeded.
	ErrInstanceCommands = errors.New("vulkan: instance commands unavailable")
)
