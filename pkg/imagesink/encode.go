// Package imagesink encodes rendered images and writes them to local files
// or Google Cloud Storage.
package imagesink

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
)

// Format is an output image encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatPPM  Format = "ppm"
)

// ErrUnknownFormat is returned for extensions and format names with no encoder
var ErrUnknownFormat = errors.New("unknown image format")

// FormatFromPath picks the encoding from the destination's extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".ppm":
		return FormatPPM, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// ContentType returns the MIME type used when uploading the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	case FormatPPM:
		return "image/x-portable-pixmap"
	default:
		return "application/octet-stream"
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img.ToRGBA())
	case FormatBMP:
		err = bmp.Encode(w, img.ToRGBA())
	case FormatTIFF:
		err = tiff.Encode(w, img.ToRGBA(), &tiff.Options{Compression: tiff.Deflate})
	case FormatPPM:
		err = encodePPM(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("while encoding %s: %w", format, err)
	}
	return nil
}

// encodePPM writes binary P6. The pixel buffer is already in P6 order.
func encodePPM(w io.Writer, img *renderer.Image) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}
	_, err := w.Write(img.Pix)
	return err
}
