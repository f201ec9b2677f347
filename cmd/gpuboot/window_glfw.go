//go:build !(windows && win32)

package main

import (
	"github.com/gogpu/gpuboot/window"
	"github.com/gogpu/gpuboot/window/glfw"
)

func newWindowSystem() (window.System, error) {
	sys, err := glfw.New()
	if err != nil {
		return nil, err
	}
	return sys, nil
}
