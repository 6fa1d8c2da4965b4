package config

import (
	"fmt"
	"strings"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"golang.org/x/image/colornames"
)

// Vector is a YAML triple such as [0, 1, -2]
type Vector [3]float64

// Vec3 converts the triple to a core vector
func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// IsZero reports whether all components are zero
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// Color is a linear RGB color in [0,1]. In YAML it is written either as an
// [r, g, b] list or as a CSS color name (e.g. "skyblue").
type Color [3]float64

// Vec3 converts the color to a core vector
func (c Color) Vec3() core.Vec3 {
	return core.NewVec3(c[0], c[1], c[2])
}

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Color) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var components []float64
	if err := unmarshal(&components); err == nil {
		if len(components) != 3 {
			return fmt.Errorf("color needs 3 components, got %d", len(components))
		}
		copy(c[:], components)
		return nil
	}

	var name string
	if err := unmarshal(&name); err != nil {
		return fmt.Errorf("color must be [r, g, b] or a color name: %w", err)
	}
	parsed, err := ParseColorName(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (c Color) MarshalYAML() (interface{}, error) {
	return []float64{c[0], c[1], c[2]}, nil
}

// ParseColorName resolves a CSS color name to a Color scaled to [0,1]
func ParseColorName(name string) (Color, error) {
	rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, fmt.Errorf("unknown color name %q", name)
	}
	return Color{
		float64(rgba.R) / 255.0,
		float64(rgba.G) / 255.0,
		float64(rgba.B) / 255.0,
	}, nil
}
