//go:build !nodiag

package gpuboot

// defaultDiagnostics enables validation layers and the diagnostics
// messenger unless built with the "nodiag" tag.
const defaultDiagnostics = true
