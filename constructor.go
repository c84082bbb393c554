package texmat

import (
	"fmt"
	"sync"

	"github.com/gogpu/texmat/internal/imageio"
)

// constructor is the texture construction strategy. Two implementations
// exist: texture2DConstructor for contexts with NPOT support and
// slicedConstructor for everything else. The strategy is picked once, on
// the first construction after the context is acquired, and is stable for
// the process lifetime.
type constructor interface {
	fromData(ctx Context, width, height int, flags TextureFlags, format, internalFormat PixelFormat, rowstride int, data []byte) (Texture, error)
	fromFile(ctx Context, path string, flags TextureFlags, internalFormat PixelFormat) (Texture, error)
	withSize(ctx Context, width, height int, flags TextureFlags, internalFormat PixelFormat) (Texture, error)
}

var (
	strategyOnce sync.Once
	strategy     constructor
)

// selectConstructor resolves the graphics context and pins the
// construction strategy matching its capability.
func selectConstructor() (constructor, Context, error) {
	ctx, err := activeContext()
	if err != nil {
		return nil, nil, err
	}
	strategyOnce.Do(func() {
		if supportsNPOT() {
			strategy = texture2DConstructor{}
		} else {
			strategy = slicedConstructor{}
		}
	})
	return strategy, ctx, nil
}

// NewTextureFromData creates a texture from raw pixel data.
//
// width and height are clamped to at most twice the screen size in each
// axis before construction; data is expected to hold rows of rowstride
// bytes each, of which the leading width pixels are uploaded. flags and
// internalFormat only affect the legacy sliced path.
func NewTextureFromData(width, height int, flags TextureFlags, format, internalFormat PixelFormat, rowstride int, data []byte) (Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	c, ctx, err := selectConstructor()
	if err != nil {
		return nil, err
	}
	width, height = clampToScreen(width, height)
	return c.fromData(ctx, width, height, flags, format, internalFormat, rowstride, data)
}

// NewTextureFromFile creates a texture from an image file.
//
// Dimensions come from the decoded file and are not clamped. Supported
// formats: PNG, JPEG, and the formats registered by golang.org/x/image
// (BMP, TIFF, WebP). Decoded pixels are premultiplied before upload.
func NewTextureFromFile(path string, flags TextureFlags, internalFormat PixelFormat) (Texture, error) {
	c, ctx, err := selectConstructor()
	if err != nil {
		return nil, err
	}
	return c.fromFile(ctx, path, flags, internalFormat)
}

// NewTextureWithSize creates an uninitialized texture of the given size.
//
// width and height are clamped to at most twice the screen size in each
// axis before construction.
func NewTextureWithSize(width, height int, flags TextureFlags, internalFormat PixelFormat) (Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	c, ctx, err := selectConstructor()
	if err != nil {
		return nil, err
	}
	width, height = clampToScreen(width, height)
	return c.withSize(ctx, width, height, flags, internalFormat)
}

// texture2DConstructor builds textures through the modern, context-bound
// texture_2d entry point. Failures carry an explicit error, which is
// logged at Debug level and returned. There is no fallback to the sliced
// path and no retry.
type texture2DConstructor struct{}

func (texture2DConstructor) fromData(ctx Context, width, height int, _ TextureFlags, format, _ PixelFormat, rowstride int, data []byte) (Texture, error) {
	tex, err := ctx.NewTexture2D(width, height, format, rowstride, data)
	if err != nil {
		Logger().Debug("texmat: texture_2d creation from data failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
	}
	return tex, nil
}

func (texture2DConstructor) fromFile(ctx Context, path string, _ TextureFlags, _ PixelFormat) (Texture, error) {
	img, err := imageio.Load(path)
	if err != nil {
		Logger().Debug("texmat: texture_2d creation from file failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
	}
	PremultiplyRGBA(img.Pix)
	tex, err := ctx.NewTexture2D(img.Width, img.Height, FormatRGBA8Premul, img.Stride, img.Pix)
	if err != nil {
		Logger().Debug("texmat: texture_2d creation from file failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
	}
	return tex, nil
}

func (texture2DConstructor) withSize(ctx Context, width, height int, _ TextureFlags, _ PixelFormat) (Texture, error) {
	tex, err := ctx.NewTexture2D(width, height, FormatRGBA8Premul, 0, nil)
	if err != nil {
		Logger().Debug("texmat: texture_2d creation with size failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
	}
	return tex, nil
}

// slicedConstructor builds textures through the legacy flags-based entry
// point, passing the format/internal-format pair through untouched.
// Failures surface only as wrapped errors; the legacy path has no error
// object of its own to log.
type slicedConstructor struct{}

func (slicedConstructor) fromData(ctx Context, width, height int, flags TextureFlags, format, internalFormat PixelFormat, rowstride int, data []byte) (Texture, error) {
	tex, err := ctx.NewSlicedTexture(width, height, flags, format, internalFormat, rowstride, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
	}
	return tex, nil
}

func (slicedConstructor) fromFile(ctx Context, path string, flags TextureFlags, internalFormat PixelFormat) (Texture, error) {
	img, err := imageio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
	}
	PremultiplyRGBA(img.Pix)
	tex, err := ctx.NewSlicedTexture(img.Width, img.Height, flags, FormatRGBA8Premul, internalFormat, img.Stride, img.Pix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
	}
	return tex, nil
}

func (slicedConstructor) withSize(ctx Context, width, height int, flags TextureFlags, internalFormat PixelFormat) (Texture, error) {
	tex, err := ctx.NewSlicedTexture(width, height, flags, FormatRGBA8Premul, internalFormat, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
	}
	return tex, nil
}
