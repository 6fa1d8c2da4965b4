package renderer

import (
	"image/color"
	"testing"
)

func TestImage_ToRGBA(t *testing.T) {
	img := NewImage(2, 2)
	copy(img.Pix, []byte{
		255, 0, 0, 0, 255, 0, // top row
		0, 0, 255, 10, 20, 30, // bottom row
	})

	rgba := img.ToRGBA()
	if rgba.Bounds().Dx() != 2 || rgba.Bounds().Dy() != 2 {
		t.Fatalf("Expected 2x2 image, got %v", rgba.Bounds())
	}

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{0, 0, color.RGBA{255, 0, 0, 255}},
		{1, 0, color.RGBA{0, 255, 0, 255}},
		{0, 1, color.RGBA{0, 0, 255, 255}},
		{1, 1, color.RGBA{10, 20, 30, 255}},
	}
	for _, tt := range tests {
		if got := rgba.RGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.expected)
		}
	}

	r, g, b := img.RGB(1, 1)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("RGB(1,1) = (%d,%d,%d), want (10,20,30)", r, g, b)
	}
}
