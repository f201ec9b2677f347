//go:build nodiag

package gpuboot

const defaultDiagnostics = false
