// Package qrimage is the decoder's sole image representation: a raw pixel
// buffer plus the width/height/bytesPerPixel triple needed to read it. It
// deliberately knows nothing about any file format — JPEG/PNG decoding is
// the caller's job (see cmd/qrscan, which uses the standard image package
// and golang.org/x/image to get here).
package qrimage

import "fmt"

// Image is a raw, row-major, top-left-origin pixel buffer. BytesPerPixel is
// 1 for pre-computed grayscale, 3 for RGB or 4 for RGBA; channel order
// within a pixel is always R,G,B[,A].
type Image struct {
	Width, Height int
	Bytes         []byte
	BytesPerPixel int
}

// New validates and constructs an Image, inferring BytesPerPixel from
// len(bytes)/(width*height) as spec'd: that quotient must be exactly one of
// {1,3,4}.
func New(width, height int, bytes []byte) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("qrimage: dimensions must be positive, got %dx%d", width, height)
	}
	if len(bytes) == 0 {
		return nil, fmt.Errorf("qrimage: empty buffer")
	}
	pixels := width * height
	if len(bytes)%pixels != 0 {
		return nil, fmt.Errorf("qrimage: buffer length %d is not a multiple of %d pixels", len(bytes), pixels)
	}
	bpp := len(bytes) / pixels
	if bpp != 1 && bpp != 3 && bpp != 4 {
		return nil, fmt.Errorf("qrimage: %d bytes per pixel is not one of 1, 3, 4", bpp)
	}
	return &Image{Width: width, Height: height, Bytes: bytes, BytesPerPixel: bpp}, nil
}

// Luma returns the luma value of the pixel at (x, y), per the spec's
// Y = (R + 2G + B) / 4 approximation. Grayscale input is returned as-is.
func (img *Image) Luma(x, y int) byte {
	offset := (y*img.Width + x) * img.BytesPerPixel
	if img.BytesPerPixel == 1 {
		return img.Bytes[offset]
	}
	r := int(img.Bytes[offset])
	g := int(img.Bytes[offset+1])
	b := int(img.Bytes[offset+2])
	return byte((r + 2*g + b) / 4)
}
