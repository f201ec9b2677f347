// Package hal runs the bootstrap on top of the gogpu/wgpu hardware
// abstraction layer instead of a raw Vulkan loader.
//
// The HAL chooses the graphics API. By default the first registered
// variant in the order Vulkan, Metal, DX12, GL, Empty is used. Register
// HAL variants by importing them, for example:
//
//	import _ "github.com/gogpu/wgpu/hal/allbackends"
//
// The HAL has no layer or extension lists of its own. This backend reports
// the validation layer as the switch for the HAL debug and validation flags
// and reports the platform surface extensions plus debug-utils. Diagnostics
// are taken from the HAL logger: while an instance lives, every HAL log
// record is offered to the registered subscriptions as a backend.Message
// and then passed on to the operator logger.
package hal
