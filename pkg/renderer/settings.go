package renderer

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidSettings is returned (wrapped with the offending field) by Settings.Validate
var ErrInvalidSettings = errors.New("invalid render settings")

// Settings is the fixed configuration of one render
type Settings struct {
	ImageWidth      int     // Output width in pixels
	AspectRatio     float64 // Width / height; height = floor(width / aspect)
	SamplesPerPixel int     // Jittered rays averaged per pixel
	MaxDepth        int     // Bounce budget per camera ray
	NumWorkers      int     // Parallel chunks; 0 means runtime.NumCPU()
	Seed            int64   // 0 means entropy-seeded
}

// DefaultSettings returns sensible default values
func DefaultSettings() Settings {
	return Settings{
		ImageWidth:      400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// ImageHeight derives the height from the width and aspect ratio by truncation
func (s Settings) ImageHeight() int {
	return int(float64(s.ImageWidth) / s.AspectRatio)
}

// Workers returns the effective worker count
func (s Settings) Workers() int {
	if s.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return s.NumWorkers
}

// Validate reports the first setting outside its allowed range
func (s Settings) Validate() error {
	switch {
	case s.ImageWidth <= 0:
		return fmt.Errorf("%w: image width must be positive, got %d", ErrInvalidSettings, s.ImageWidth)
	case !(s.AspectRatio > 0):
		return fmt.Errorf("%w: aspect ratio must be positive, got %g", ErrInvalidSettings, s.AspectRatio)
	case s.ImageHeight() <= 0:
		return fmt.Errorf("%w: width %d and aspect ratio %g give an empty image", ErrInvalidSettings, s.ImageWidth, s.AspectRatio)
	case s.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidSettings, s.SamplesPerPixel)
	case s.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidSettings, s.MaxDepth)
	case s.NumWorkers < 0:
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidSettings, s.NumWorkers)
	}
	return nil
}
