package texmat

import "fmt"

// NewColorTexture creates a 1x1 texture holding the given color.
//
// The color is supplied with straight (unpremultiplied) alpha and is
// premultiplied before upload; storage is premultiplied RGBA8888 with the
// internal format left to the backend. FlagNoSlicing is useful if the
// texture will be hardware-repeated to produce a constant color fill,
// since repeat cannot span slices.
//
// The single-pixel allocation is not expected to fail in practice; an
// error here means the graphics context itself is unavailable or broken.
func NewColorTexture(red, green, blue, alpha uint8, flags TextureFlags) (Texture, error) {
	ctx, err := activeContext()
	if err != nil {
		return nil, err
	}

	pixel := ColorFrom4ub(red, green, blue, alpha).Premultiply().PixelBytes()

	tex, err := ctx.NewSlicedTexture(1, 1, flags, FormatRGBA8Premul, FormatAny, 4, pixel[:])
	if err != nil {
		return nil, fmt.Errorf("%w: color texture: %w", ErrTextureCreationFailed, err)
	}
	return tex, nil
}
