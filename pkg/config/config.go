package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Material and object type names accepted in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"

	ObjectSphere = "sphere"
	ObjectPlane  = "plane"
	ObjectQuad   = "quad"
)

// Config represents a complete render description: settings, camera, sky,
// materials and objects
type Config struct {
	Render     RenderConfig              `yaml:"render"`
	Camera     CameraConfig              `yaml:"camera"`
	Background BackgroundConfig          `yaml:"background"`
	Materials  map[string]MaterialConfig `yaml:"materials,omitempty"`
	Objects    []ObjectConfig            `yaml:"objects,omitempty"`
}

// RenderConfig contains render settings
type RenderConfig struct {
	ImageWidth      int     `yaml:"image_width"`
	AspectRatio     float64 `yaml:"aspect_ratio"`
	SamplesPerPixel int     `yaml:"samples_per_pixel"`
	MaxDepth        int     `yaml:"max_depth"`
	NumWorkers      int     `yaml:"num_workers"` // 0 means one per CPU
	Seed            int64   `yaml:"seed"`        // Optional: 0 means random
	Integrator      string  `yaml:"integrator"`  // path, normals
}

// CameraConfig contains camera placement. The aspect ratio comes from RenderConfig.
type CameraConfig struct {
	Center      Vector  `yaml:"center"`
	LookAt      Vector  `yaml:"look_at"`
	Up          Vector  `yaml:"up"`
	VFov        float64 `yaml:"vfov"`
	FocalLength float64 `yaml:"focal_length"`
}

// BackgroundConfig contains the sky gradient colors
type BackgroundConfig struct {
	Horizon Color `yaml:"horizon"`
	Zenith  Color `yaml:"zenith"`
}

// MaterialConfig describes one named material
type MaterialConfig struct {
	Type            string  `yaml:"type"` // lambertian, metal, dielectric
	Albedo          Color   `yaml:"albedo,omitempty"`
	Fuzz            float64 `yaml:"fuzz,omitempty"`
	RefractiveIndex float64 `yaml:"refractive_index,omitempty"`
}

// ObjectConfig describes one primitive. Which fields apply depends on Type:
// sphere uses center/radius, plane uses point/normal, quad uses corner/u/v.
type ObjectConfig struct {
	Type     string  `yaml:"type"`
	Material string  `yaml:"material"`
	Center   Vector  `yaml:"center,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
	Point    Vector  `yaml:"point,omitempty"`
	Normal   Vector  `yaml:"normal,omitempty"`
	Corner   Vector  `yaml:"corner,omitempty"`
	U        Vector  `yaml:"u,omitempty"`
	V        Vector  `yaml:"v,omitempty"`
}

// ErrInvalidConfig is returned (wrapped) by Validate
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfig creates a default configuration with no objects
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			ImageWidth:      400,
			AspectRatio:     16.0 / 9.0,
			SamplesPerPixel: 100,
			MaxDepth:        50,
			NumWorkers:      0,
			Seed:            0, // Random seed
			Integrator:      "path",
		},
		Camera: CameraConfig{
			Center: Vector{0, 0, 0},
			LookAt: Vector{0, 0, -1},
			Up:     Vector{0, 1, 0},
			VFov:   90,
		},
		Background: BackgroundConfig{
			Horizon: Color{1.0, 1.0, 1.0},
			Zenith:  Color{0.5, 0.7, 1.0},
		},
		Materials: map[string]MaterialConfig{},
	}
}

// ParseConfig parses YAML on top of the defaults
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config: %w", err)
	}
	return config, nil
}

// LoadConfig loads the configuration from a file. On failure the returned
// config holds the defaults.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("config file not found, using defaults: %w", err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("while loading %s: %w", filePath, err)
	}
	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks settings ranges and material references
func (c *Config) Validate() error {
	r := c.Render
	switch {
	case r.ImageWidth <= 0:
		return fmt.Errorf("%w: render.image_width must be positive, got %d", ErrInvalidConfig, r.ImageWidth)
	case r.AspectRatio <= 0:
		return fmt.Errorf("%w: render.aspect_ratio must be positive, got %g", ErrInvalidConfig, r.AspectRatio)
	case r.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: render.samples_per_pixel must be positive, got %d", ErrInvalidConfig, r.SamplesPerPixel)
	case r.MaxDepth < 0:
		return fmt.Errorf("%w: render.max_depth must not be negative, got %d", ErrInvalidConfig, r.MaxDepth)
	case r.NumWorkers < 0:
		return fmt.Errorf("%w: render.num_workers must not be negative, got %d", ErrInvalidConfig, r.NumWorkers)
	}

	if c.Camera.Center == c.Camera.LookAt {
		return fmt.Errorf("%w: camera.center and camera.look_at coincide", ErrInvalidConfig)
	}
	viewDir := c.Camera.LookAt.Vec3().Subtract(c.Camera.Center.Vec3())
	if c.Camera.Up.Vec3().Cross(viewDir).NearZero() {
		return fmt.Errorf("%w: camera.up is zero or parallel to the view direction", ErrInvalidConfig)
	}

	for name, m := range c.Materials {
		switch m.Type {
		case MaterialLambertian, MaterialMetal:
		case MaterialDielectric:
			if m.RefractiveIndex <= 0 {
				return fmt.Errorf("%w: material %q needs a positive refractive_index", ErrInvalidConfig, name)
			}
		default:
			return fmt.Errorf("%w: material %q has unknown type %q", ErrInvalidConfig, name, m.Type)
		}
	}

	for i, o := range c.Objects {
		if _, ok := c.Materials[o.Material]; !ok {
			return fmt.Errorf("%w: object %d references unknown material %q", ErrInvalidConfig, i, o.Material)
		}
		switch o.Type {
		case ObjectSphere:
			if o.Radius == 0 {
				return fmt.Errorf("%w: sphere %d has zero radius", ErrInvalidConfig, i)
			}
		case ObjectPlane:
			if o.Normal.IsZero() {
				return fmt.Errorf("%w: plane %d has zero normal", ErrInvalidConfig, i)
			}
		case ObjectQuad:
			if o.U.Vec3().Cross(o.V.Vec3()).NearZero() {
				return fmt.Errorf("%w: quad %d has degenerate edges", ErrInvalidConfig, i)
			}
		default:
			return fmt.Errorf("%w: object %d has unknown type %q", ErrInvalidConfig, i, o.Type)
		}
	}

	return nil
}
