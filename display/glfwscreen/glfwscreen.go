// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glfwscreen provides a texmat.ScreenProvider backed by GLFW
// monitor queries.
//
// GLFW must already be initialized by the windowing host before the
// provider is queried; texmat retries zero-size answers, so registering
// the provider before glfw.Init is harmless.
package glfwscreen

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/texmat"
)

// Provider returns a ScreenProvider reporting the primary monitor's
// current video mode. It answers 0x0 while no monitor or mode is
// available.
func Provider() texmat.ScreenProvider {
	return texmat.ScreenProviderFunc(primarySize)
}

func primarySize() (width, height int) {
	mon := glfw.GetPrimaryMonitor()
	if mon == nil {
		mons := glfw.GetMonitors()
		if len(mons) == 0 {
			return 0, 0
		}
		mon = mons[0]
	}
	vm := mon.GetVideoMode()
	if vm == nil || vm.Width == 0 || vm.Height == 0 {
		return 0, 0
	}
	return vm.Width, vm.Height
}
