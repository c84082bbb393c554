// Package imageio decodes image files into tightly packed RGBA8 buffers
// ready for texture upload.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	// Standard library decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Extended decoders from golang.org/x/image.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Image is a decoded image as a tightly packed straight-alpha RGBA8
// pixel buffer.
type Image struct {
	Width  int
	Height int
	Stride int // bytes per row, always Width*4
	Pix    []byte
}

// Load decodes the image file at path, auto-detecting the format.
func Load(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadBytes decodes an in-memory image, auto-detecting the format.
func LoadBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from the given reader, auto-detecting the
// format from the registered decoders.
func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return fromStdImage(img), nil
}

// fromStdImage converts a standard library image to a tightly packed
// straight-alpha RGBA8 buffer.
func fromStdImage(img image.Image) *Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := &Image{
		Width:  width,
		Height: height,
		Stride: width * 4,
		Pix:    make([]byte, width*height*4),
	}

	// Fast path for NRGBA images (straight alpha, same layout).
	if nrgba, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) {
		for y := range height {
			srcStart := y * nrgba.Stride
			copy(out.Pix[y*out.Stride:], nrgba.Pix[srcStart:srcStart+width*4])
		}
		return out
	}

	// Generic path for any image type. Conversion through the NRGBA
	// model keeps the buffer straight-alpha so the caller controls
	// premultiplication.
	for y := range height {
		for x := range width {
			n := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			off := y*out.Stride + x*4
			out.Pix[off] = n.R
			out.Pix[off+1] = n.G
			out.Pix[off+2] = n.B
			out.Pix[off+3] = n.A
		}
	}

	return out
}
