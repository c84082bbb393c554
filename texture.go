package texmat

import "github.com/gogpu/gputypes"

// TextureFlags control texture storage behavior on the legacy (sliced)
// construction path. The modern texture_2d path ignores them.
type TextureFlags uint32

// FlagNone requests default storage behavior.
const FlagNone TextureFlags = 0

const (
	// FlagNoSlicing forbids splitting the texture into power-of-two
	// slices. Useful when the texture will be hardware-repeated to
	// produce a constant fill, since repeat cannot span slices.
	FlagNoSlicing TextureFlags = 1 << iota

	// FlagNoAtlas keeps the texture out of any shared atlas.
	FlagNoAtlas

	// FlagNoAutoMipmap disables automatic mipmap generation.
	FlagNoAutoMipmap
)

// Has reports whether all bits of f2 are set in f.
func (f TextureFlags) Has(f2 TextureFlags) bool { return f&f2 == f2 }

// PixelFormat identifies the encoding of a pixel buffer handed to the
// texture constructors, and the requested internal storage format.
type PixelFormat uint8

const (
	// FormatAny lets the backend choose the internal storage format.
	// Only valid as an internal format, never as a source format.
	FormatAny PixelFormat = iota

	// FormatRGBA8 is 32-bit RGBA with straight alpha.
	FormatRGBA8

	// FormatRGBA8Premul is 32-bit RGBA with premultiplied alpha.
	// This is the storage format for all textures texmat creates itself.
	FormatRGBA8Premul

	// FormatBGRA8 is 32-bit BGRA with straight alpha.
	FormatBGRA8

	// FormatBGRA8Premul is 32-bit BGRA with premultiplied alpha.
	FormatBGRA8Premul

	// pixelFormatCount is the number of formats (for internal use).
	pixelFormatCount
)

// PixelFormatInfo contains metadata about a pixel format.
type PixelFormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel, 0 for FormatAny.
	BytesPerPixel int

	// IsPremultiplied indicates if alpha is premultiplied.
	IsPremultiplied bool

	// Device is the corresponding device texture format.
	// Premultiplication is a blending convention, not a storage format,
	// so straight and premultiplied variants share a device format.
	Device gputypes.TextureFormat
}

var pixelFormatInfo = [pixelFormatCount]PixelFormatInfo{
	FormatAny:         {BytesPerPixel: 0, Device: gputypes.TextureFormatUndefined},
	FormatRGBA8:       {BytesPerPixel: 4, Device: gputypes.TextureFormatRGBA8Unorm},
	FormatRGBA8Premul: {BytesPerPixel: 4, IsPremultiplied: true, Device: gputypes.TextureFormatRGBA8Unorm},
	FormatBGRA8:       {BytesPerPixel: 4, Device: gputypes.TextureFormatBGRA8Unorm},
	FormatBGRA8Premul: {BytesPerPixel: 4, IsPremultiplied: true, Device: gputypes.TextureFormatBGRA8Unorm},
}

// Info returns the PixelFormatInfo for this format.
// Unknown formats return the FormatAny entry.
func (f PixelFormat) Info() PixelFormatInfo {
	if f >= pixelFormatCount {
		return pixelFormatInfo[FormatAny]
	}
	return pixelFormatInfo[f]
}

// DeviceFormat returns the device texture format this pixel format maps to.
func (f PixelFormat) DeviceFormat() gputypes.TextureFormat {
	return f.Info().Device
}

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatAny:
		return "any"
	case FormatRGBA8:
		return "rgba8"
	case FormatRGBA8Premul:
		return "rgba8-premul"
	case FormatBGRA8:
		return "bgra8"
	case FormatBGRA8Premul:
		return "bgra8-premul"
	default:
		return "unknown"
	}
}

// Texture is a GPU-resident 2D image resource.
//
// Textures returned by the texmat constructors are owned by the caller;
// call Destroy when done. The one exception is the material template's
// dummy texture, which lives for the process lifetime.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Format returns the device pixel format of the texture storage.
	Format() gputypes.TextureFormat

	// UpdateData replaces the full texture contents. The data layout
	// must match the texture dimensions and format, tightly packed.
	UpdateData(data []byte) error

	// Destroy releases the GPU resources associated with this texture.
	Destroy()
}
