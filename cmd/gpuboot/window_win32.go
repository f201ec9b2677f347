//go:build windows && win32

package main

import (
	"github.com/gogpu/gpuboot/window"
	"github.com/gogpu/gpuboot/window/win32"
)

func newWindowSystem() (window.System, error) {
	sys, err := win32.New()
	if err != nil {
		return nil, err
	}
	return sys, nil
}
