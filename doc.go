// Package texmat provides texture and material creation helpers for
// WebGPU-based compositors in the GoGPU ecosystem.
//
// # Overview
//
// texmat sits between a compositor and its GPU backend. It offers a small
// set of factories: solid-color 1x1 textures, single-layer materials built
// from a shared template (so all copies can share one compiled shader
// program), and three texture constructors (from raw pixel data, from an
// image file, from a target size) that pick a construction strategy based
// on whether the active graphics context supports non-power-of-two texture
// sizes.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/texmat"
//	    "github.com/gogpu/texmat/wgputex"
//	)
//
//	ctx, _ := wgputex.Init()
//	texmat.SetContextProvider(ctx.Provider())
//
//	tex, err := texmat.NewColorTexture(255, 0, 0, 128, texmat.FlagNone)
//	mat, err := texmat.NewTextureMaterial(tex)
//
// # Context and screen providers
//
// texmat does not create its own GPU device or open windows. The host
// registers a ContextProvider (typically backed by its wgpu device, see
// wgputex) and optionally a ScreenProvider (see display/glfwscreen).
// Both are consulted until they deliver a usable answer; from then on the
// acquired context, its capability flag, and the screen dimensions are
// cached for the process lifetime.
//
// # Dimension clamping
//
// Requested texture dimensions are clamped to at most twice the screen
// size in each axis, a bound against pathologically large allocation
// requests. Without a registered ScreenProvider no clamping occurs.
package texmat

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
