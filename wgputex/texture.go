// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgputex

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/texmat"
)

// ErrDestroyed is returned when operating on a destroyed texture.
var ErrDestroyed = errors.New("wgputex: texture destroyed")

// texture is a GPU texture with an optional power-of-two padded store.
// width/height is the payload region visible to callers; storeW/storeH
// is the allocated extent, which is larger only on the sliced path
// without NPOT support.
type texture struct {
	ctx  *Context
	tex  hal.Texture
	view hal.TextureView

	width, height  int
	storeW, storeH int
	format         gputypes.TextureFormat
}

var _ texmat.Texture = (*texture)(nil)

// Width returns the payload width in pixels.
func (t *texture) Width() int { return t.width }

// Height returns the payload height in pixels.
func (t *texture) Height() int { return t.height }

// Format returns the device storage format.
func (t *texture) Format() gputypes.TextureFormat { return t.format }

// StorageSize returns the allocated extent, which exceeds the payload
// size only for power-of-two padded textures.
func (t *texture) StorageSize() (width, height int) { return t.storeW, t.storeH }

// HalTexture returns the underlying HAL texture.
func (t *texture) HalTexture() hal.Texture { return t.tex }

// View returns a 2D view of the full texture, for sampler binding.
func (t *texture) View() hal.TextureView { return t.view }

// UpdateData replaces the payload region. data must be tightly packed
// width*height pixels of the texture's format.
func (t *texture) UpdateData(data []byte) error {
	if t.tex == nil {
		return ErrDestroyed
	}
	want := t.width * t.height * 4
	if len(data) != want {
		return fmt.Errorf("wgputex: update data is %d bytes, want %d", len(data), want)
	}
	t.ctx.upload(t.tex, t.width, t.height, data)
	return nil
}

// Destroy releases the texture and its view. Safe to call twice.
func (t *texture) Destroy() {
	if t.tex == nil {
		return
	}
	if t.view != nil {
		t.ctx.device.DestroyTextureView(t.view)
		t.view = nil
	}
	t.ctx.device.DestroyTexture(t.tex)
	t.tex = nil
}

// NewTexture2D creates a texture of exactly the requested size. data may
// be nil for uninitialized storage; otherwise it holds height rows of
// rowstride bytes each, repacked tight before upload when needed.
func (c *Context) NewTexture2D(width, height int, format texmat.PixelFormat, rowstride int, data []byte) (texmat.Texture, error) {
	if err := c.checkBounds(width, height); err != nil {
		return nil, err
	}
	devFormat := deviceFormat(format)
	tex, err := c.createTexture(width, height, devFormat)
	if err != nil {
		return nil, err
	}
	if data != nil {
		tight, err := repackRows(data, width, height, rowstride)
		if err != nil {
			tex.Destroy()
			return nil, err
		}
		c.upload(tex.tex, width, height, tight)
	}
	return tex, nil
}

// NewSlicedTexture creates a texture through the legacy flags-based entry
// point. Without NPOT support each axis is padded up to the next power of
// two, unless texmat.FlagNoSlicing forbids it, in which case non-POT
// requests fail. internalFormat selects the storage format when it is not
// texmat.FormatAny.
func (c *Context) NewSlicedTexture(width, height int, flags texmat.TextureFlags, format, internalFormat texmat.PixelFormat, rowstride int, data []byte) (texmat.Texture, error) {
	if err := c.checkBounds(width, height); err != nil {
		return nil, err
	}

	storeW, storeH := width, height
	if !c.npot {
		if flags.Has(texmat.FlagNoSlicing) {
			if !isPow2(width) || !isPow2(height) {
				return nil, fmt.Errorf("%w: %dx%d", ErrNeedsSlicing, width, height)
			}
		} else {
			storeW, storeH = nextPow2(width), nextPow2(height)
			if storeW != width || storeH != height {
				texmat.Logger().Debug("wgputex: padding texture to power of two",
					"width", width, "height", height,
					"storeWidth", storeW, "storeHeight", storeH)
			}
			if err := c.checkBounds(storeW, storeH); err != nil {
				return nil, err
			}
		}
	}

	devFormat := deviceFormat(internalFormat)
	if devFormat == gputypes.TextureFormatUndefined {
		devFormat = deviceFormat(format)
	}

	tex, err := c.createTexture(storeW, storeH, devFormat)
	if err != nil {
		return nil, err
	}
	tex.width, tex.height = width, height
	if data != nil {
		tight, err := repackRows(data, width, height, rowstride)
		if err != nil {
			tex.Destroy()
			return nil, err
		}
		c.upload(tex.tex, width, height, tight)
	}
	return tex, nil
}

// createTexture allocates the HAL texture and its view.
func (c *Context) createTexture(width, height int, format gputypes.TextureFormat) (*texture, error) {
	halTex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label: fmt.Sprintf("texmat_%dx%d", width, height),
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage: gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopyDst |
			gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgputex: create texture: %w", err)
	}

	view, err := c.device.CreateTextureView(halTex, &hal.TextureViewDescriptor{
		Label:         "texmat_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		c.device.DestroyTexture(halTex)
		return nil, fmt.Errorf("wgputex: create texture view: %w", err)
	}

	return &texture{
		ctx:    c,
		tex:    halTex,
		view:   view,
		width:  width,
		height: height,
		storeW: width,
		storeH: height,
		format: format,
	}, nil
}

// upload writes tightly packed pixel data into the top-left width x height
// region of the texture.
func (c *Context) upload(tex hal.Texture, width, height int, data []byte) {
	c.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(width * 4),
			RowsPerImage: uint32(height),
		},
		&hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
	)
}

func (c *Context) checkBounds(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("wgputex: invalid dimensions %dx%d", width, height)
	}
	if maxDim := c.limits.MaxTextureDimension2D; maxDim != 0 {
		if uint32(width) > maxDim || uint32(height) > maxDim {
			return fmt.Errorf("%w: %dx%d > %d", ErrTooLarge, width, height, maxDim)
		}
	}
	return nil
}

// deviceFormat maps a texmat pixel format to the device format, defaulting
// FormatAny to RGBA8.
func deviceFormat(f texmat.PixelFormat) gputypes.TextureFormat {
	if df := f.DeviceFormat(); df != gputypes.TextureFormatUndefined {
		return df
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// repackRows copies height rows of width*4 payload bytes out of a buffer
// with the given rowstride. A rowstride of 0 means tightly packed. The
// input is returned as-is when already tight.
func repackRows(data []byte, width, height, rowstride int) ([]byte, error) {
	rowBytes := width * 4
	if rowstride == 0 {
		rowstride = rowBytes
	}
	if rowstride < rowBytes {
		return nil, fmt.Errorf("wgputex: rowstride %d shorter than row of %d bytes", rowstride, rowBytes)
	}
	if len(data) < (height-1)*rowstride+rowBytes {
		return nil, fmt.Errorf("wgputex: pixel data is %d bytes, want at least %d", len(data), (height-1)*rowstride+rowBytes)
	}
	if rowstride == rowBytes {
		return data[:height*rowBytes], nil
	}
	tight := make([]byte, height*rowBytes)
	for y := 0; y < height; y++ {
		copy(tight[y*rowBytes:(y+1)*rowBytes], data[y*rowstride:y*rowstride+rowBytes])
	}
	return tight, nil
}

// isPow2 reports whether v is a power of two. Zero is not.
func isPow2(v int) bool { return v > 0 && v&(v-1) == 0 }

// nextPow2 returns the smallest power of two >= v.
func nextPow2(v int) int {
	if v <= 1 {
		return 1
	}
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}
