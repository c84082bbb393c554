// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgputex

import (
	"bytes"
	"testing"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/texmat"
)

// mockHALDevice is a test double for hal.Device that tracks resource
// lifetimes. Only the texture methods are implemented; the embedded
// interface covers the rest and panics if reached.
type mockHALDevice struct {
	hal.Device
	texturesCreated   int
	texturesDestroyed int
	viewsCreated      int
	viewsDestroyed    int
}

func (d *mockHALDevice) CreateTexture(_ *hal.TextureDescriptor) (hal.Texture, error) {
	d.texturesCreated++
	return &mockHALTexture{}, nil
}

func (d *mockHALDevice) DestroyTexture(_ hal.Texture) { d.texturesDestroyed++ }

func (d *mockHALDevice) CreateTextureView(_ hal.Texture, _ *hal.TextureViewDescriptor) (hal.TextureView, error) {
	d.viewsCreated++
	return &mockHALTextureView{}, nil
}

func (d *mockHALDevice) DestroyTextureView(_ hal.TextureView) { d.viewsDestroyed++ }

type mockHALTexture struct{ hal.Texture }

type mockHALTextureView struct{ hal.TextureView }

type mockHALQueue struct{ hal.Queue }

func newMockContext(t *testing.T, opts ...Option) (*Context, *mockHALDevice) {
	t.Helper()
	device := &mockHALDevice{}
	ctx, err := New(device, &mockHALQueue{}, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ctx, device
}

func (d *mockHALDevice) checkBalanced(t *testing.T) {
	t.Helper()
	if d.texturesDestroyed != d.texturesCreated {
		t.Errorf("textures: created %d, destroyed %d", d.texturesCreated, d.texturesDestroyed)
	}
	if d.viewsDestroyed != d.viewsCreated {
		t.Errorf("views: created %d, destroyed %d", d.viewsCreated, d.viewsDestroyed)
	}
}

func TestNewTexture2DRepackFailureReleasesResources(t *testing.T) {
	ctx, device := newMockContext(t)

	// Pixel data too short for 2x1: repacking fails after the HAL
	// texture and view were already created.
	if _, err := ctx.NewTexture2D(2, 1, texmat.FormatRGBA8, 8, []byte{1, 2, 3}); err == nil {
		t.Fatal("truncated pixel data accepted")
	}
	if device.texturesCreated != 1 || device.viewsCreated != 1 {
		t.Fatalf("created %d textures, %d views, want 1 each",
			device.texturesCreated, device.viewsCreated)
	}
	device.checkBalanced(t)
}

func TestNewSlicedTextureRepackFailureReleasesResources(t *testing.T) {
	ctx, device := newMockContext(t, WithNPOT(false))

	if _, err := ctx.NewSlicedTexture(3, 1, texmat.FlagNone, texmat.FormatRGBA8, texmat.FormatAny, 12, []byte{1, 2, 3}); err == nil {
		t.Fatal("truncated pixel data accepted")
	}
	device.checkBalanced(t)
}

func TestTextureDestroyIdempotent(t *testing.T) {
	ctx, device := newMockContext(t)

	tex, err := ctx.NewTexture2D(2, 2, texmat.FormatRGBA8Premul, 0, nil)
	if err != nil {
		t.Fatalf("NewTexture2D failed: %v", err)
	}
	tex.Destroy()
	tex.Destroy()
	if device.texturesDestroyed != 1 || device.viewsDestroyed != 1 {
		t.Fatalf("destroyed %d textures, %d views, want 1 each",
			device.texturesDestroyed, device.viewsDestroyed)
	}
	device.checkBalanced(t)
}

func TestNextPow2(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8},
		{127, 128}, {128, 128}, {129, 256}, {1000, 1024},
	}
	for _, tt := range tests {
		if got := nextPow2(tt.in); got != tt.want {
			t.Errorf("nextPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsPow2(t *testing.T) {
	for _, v := range []int{1, 2, 4, 64, 4096} {
		if !isPow2(v) {
			t.Errorf("isPow2(%d) = false", v)
		}
	}
	for _, v := range []int{0, -1, 3, 6, 100} {
		if isPow2(v) {
			t.Errorf("isPow2(%d) = true", v)
		}
	}
}

func TestRepackRowsTight(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	got, err := repackRows(data, 1, 2, 0)
	if err != nil {
		t.Fatalf("repackRows failed: %v", err)
	}
	if &got[0] != &data[0] {
		t.Error("tight input was copied")
	}
}

func TestRepackRowsStrided(t *testing.T) {
	// Two 1-pixel rows with 2 bytes of row padding.
	data := []byte{
		1, 2, 3, 4, 0xee, 0xee,
		5, 6, 7, 8, 0xee, 0xee,
	}
	got, err := repackRows(data, 1, 2, 6)
	if err != nil {
		t.Fatalf("repackRows failed: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(got, want) {
		t.Fatalf("repacked = %v, want %v", got, want)
	}
}

func TestRepackRowsLastRowUnpadded(t *testing.T) {
	// The final row may omit the stride padding.
	data := []byte{
		1, 2, 3, 4, 0xee, 0xee,
		5, 6, 7, 8,
	}
	if _, err := repackRows(data, 1, 2, 6); err != nil {
		t.Fatalf("repackRows failed: %v", err)
	}
}

func TestRepackRowsErrors(t *testing.T) {
	if _, err := repackRows([]byte{1, 2, 3, 4}, 2, 1, 4); err == nil {
		t.Error("rowstride shorter than a row accepted")
	}
	if _, err := repackRows([]byte{1, 2}, 1, 1, 0); err == nil {
		t.Error("truncated pixel data accepted")
	}
}

func TestNewRejectsNilDevice(t *testing.T) {
	if _, err := New(nil, nil); err != ErrNilDevice {
		t.Fatalf("New(nil, nil) error = %v, want ErrNilDevice", err)
	}
}

func TestFromProviderRequiresHALAccess(t *testing.T) {
	if _, err := FromProvider(nil); err == nil {
		t.Fatal("FromProvider(nil) succeeded")
	}
}
