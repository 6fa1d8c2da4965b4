package renderer

import (
	"image"
	"image/color"
)

// bytesPerPixel is the size of one interleaved RGB triplet
const bytesPerPixel = 3

// Image is a row-major buffer of interleaved RGB bytes, top row first
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*bytesPerPixel),
	}
}

// RGB returns the bytes of the pixel at column x, row y (row 0 is the top)
func (img *Image) RGB(x, y int) (r, g, b uint8) {
	i := (y*img.Width + x) * bytesPerPixel
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// ToRGBA converts the buffer to an opaque *image.RGBA
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := img.RGB(x, y)
			rgba.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return rgba
}
