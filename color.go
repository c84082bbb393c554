package texmat

import "image/color"

// Color is an 8-bit-per-channel RGBA color with straight (unpremultiplied)
// alpha. This is the input form for the color-texture factory; device
// storage is always premultiplied.
type Color struct {
	R, G, B, A uint8
}

// ColorFrom4ub creates a Color from four 8-bit channel values.
func ColorFrom4ub(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard color.Color to a straight-alpha Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Color converts to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Premultiply returns the color with R, G and B scaled by A.
// Rounding rule: (c*a + 127) / 255, so (255, 0, 0, 128) premultiplies
// to (128, 0, 0, 128). Alpha is unchanged.
func (c Color) Premultiply() Color {
	a := uint32(c.A)
	return Color{
		R: uint8((uint32(c.R)*a + 127) / 255),
		G: uint8((uint32(c.G)*a + 127) / 255),
		B: uint8((uint32(c.B)*a + 127) / 255),
		A: c.A,
	}
}

// PixelBytes returns the four channel bytes in RGBA order.
// The result is exactly 4 bytes regardless of the color value.
func (c Color) PixelBytes() [4]byte {
	return [4]byte{c.R, c.G, c.B, c.A}
}

// Common colors.
var (
	ColorWhite       = Color{255, 255, 255, 255}
	ColorBlack       = Color{0, 0, 0, 255}
	ColorTransparent = Color{0, 0, 0, 0}
)

// PremultiplyRGBA premultiplies a straight-alpha RGBA8 pixel buffer in
// place, using the same rounding rule as [Color.Premultiply]. The buffer
// length must be a multiple of 4; trailing bytes are ignored.
func PremultiplyRGBA(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint32(pix[i+3])
		if a == 255 {
			continue
		}
		pix[i] = uint8((uint32(pix[i])*a + 127) / 255)
		pix[i+1] = uint8((uint32(pix[i+1])*a + 127) / 255)
		pix[i+2] = uint8((uint32(pix[i+2])*a + 127) / 255)
	}
}
