// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgputex implements texmat.Context on top of the wgpu hardware
// abstraction layer.
//
// The usual setup receives the device from the host compositor:
//
//	ctx, err := wgputex.FromProvider(app.DeviceProvider())
//	if err != nil { ... }
//	texmat.SetContextProvider(ctx.Provider())
//
// For standalone use (tools, tests on real hardware), Init brings up its
// own Vulkan device:
//
//	ctx, err := wgputex.Init()
//	if err != nil { ... }
//	defer ctx.Close()
//	texmat.SetContextProvider(ctx.Provider())
package wgputex

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/texmat"
)

// Errors returned by the wgputex context.
var (
	// ErrNilDevice is returned by New when the device or queue is nil.
	ErrNilDevice = errors.New("wgputex: nil device or queue")

	// ErrNoHALAccess is returned by FromProvider when the provider does
	// not expose its underlying HAL device and queue.
	ErrNoHALAccess = errors.New("wgputex: provider does not expose HAL types")

	// ErrTooLarge is returned when a requested texture exceeds the
	// device's maximum 2D texture dimension.
	ErrTooLarge = errors.New("wgputex: texture exceeds device limits")

	// ErrNeedsSlicing is returned when a non-power-of-two texture is
	// requested with texmat.FlagNoSlicing on a context configured
	// without NPOT support.
	ErrNeedsSlicing = errors.New("wgputex: non-power-of-two texture requires slicing")
)

// Context implements texmat.Context over a wgpu HAL device and queue.
// It is safe for concurrent use; texture creation and upload go straight
// to the HAL, which serializes device access internally.
type Context struct {
	device hal.Device
	queue  hal.Queue
	limits gputypes.Limits
	npot   bool

	// Set only by Init; released by Close. Contexts built on a shared
	// device never own it.
	instance   hal.Instance
	ownsDevice bool
}

var _ texmat.Context = (*Context)(nil)

// Option configures a Context.
type Option func(*Context)

// WithLimits overrides the device limits used for bound checks.
func WithLimits(limits gputypes.Limits) Option {
	return func(c *Context) { c.limits = limits }
}

// WithNPOT overrides the non-power-of-two capability flag. All wgpu
// devices handle NPOT textures, so this is true by default; disabling it
// forces the legacy sliced construction path, mainly useful in tests.
func WithNPOT(enabled bool) Option {
	return func(c *Context) { c.npot = enabled }
}

// New wraps an existing HAL device and queue in a Context. The caller
// retains ownership of the device; Close on the returned Context is a
// no-op.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Context, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	c := &Context{
		device: device,
		queue:  queue,
		limits: gputypes.DefaultLimits(),
		npot:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FromProvider builds a Context from a gpucontext.DeviceProvider that
// exposes its HAL device and queue, such as the gogpu app backend.
func FromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}
	return New(device, queue, opts...)
}

// Init creates a standalone Vulkan device and wraps it in a Context.
// This is the fallback path when no host compositor device is available.
// The returned Context owns the device; release it with Close.
func Init(opts ...Option) (*Context, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("wgputex: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgputex: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("wgputex: no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgputex: open device: %w", err)
	}

	c, err := New(openDev.Device, openDev.Queue, opts...)
	if err != nil {
		instance.Destroy()
		return nil, err
	}
	c.instance = instance
	c.ownsDevice = true
	texmat.Logger().Info("wgputex: standalone device initialized", "adapter", selected.Info.Name)
	return c, nil
}

// Close releases the device and instance when the Context owns them
// (created via Init). For contexts over a shared device it is a no-op.
func (c *Context) Close() {
	if !c.ownsDevice {
		return
	}
	if c.device != nil {
		c.device.Destroy()
		c.device = nil
	}
	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
	c.queue = nil
	c.ownsDevice = false
}

// Provider returns a texmat.ContextProvider yielding this context,
// suitable for texmat.SetContextProvider.
func (c *Context) Provider() texmat.ContextProvider {
	return texmat.ContextProviderFunc(func() (texmat.Context, error) {
		return c, nil
	})
}

// SupportsNPOT reports whether non-power-of-two textures are created
// without padding.
func (c *Context) SupportsNPOT() bool { return c.npot }

// MaxTextureDimension returns the device's maximum 2D texture extent.
func (c *Context) MaxTextureDimension() uint32 {
	return c.limits.MaxTextureDimension2D
}

// Device returns the underlying HAL device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the underlying HAL queue.
func (c *Context) Queue() hal.Queue { return c.queue }
