package scene

import (
	"fmt"

	"github.com/df07/go-montecarlo-raytracer/pkg/config"
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// FromConfig validates cfg and builds the scene it describes
func FromConfig(cfg *config.Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	integratorType := integrator.Type(cfg.Render.Integrator)
	if _, err := integrator.New(integratorType); err != nil {
		return nil, fmt.Errorf("while building scene: %w", err)
	}

	cameraConfig := geometry.CameraConfig{
		Center:      cfg.Camera.Center.Vec3(),
		LookAt:      cfg.Camera.LookAt.Vec3(),
		Up:          cfg.Camera.Up.Vec3(),
		AspectRatio: cfg.Render.AspectRatio,
		VFov:        cfg.Camera.VFov,
		FocalLength: cfg.Camera.FocalLength,
	}
	sampling := SamplingConfig{
		Width:           cfg.Render.ImageWidth,
		AspectRatio:     cfg.Render.AspectRatio,
		SamplesPerPixel: cfg.Render.SamplesPerPixel,
		MaxDepth:        cfg.Render.MaxDepth,
		NumWorkers:      cfg.Render.NumWorkers,
		Seed:            cfg.Render.Seed,
	}

	s := newScene(cameraConfig, sampling, nil)
	s.Background = integrator.Gradient{
		Horizon: cfg.Background.Horizon.Vec3(),
		Zenith:  cfg.Background.Zenith.Vec3(),
	}
	if integratorType != "" {
		s.Integrator = integratorType
	}

	// Shapes referencing the same name share one material
	materials := make(map[string]core.Material, len(cfg.Materials))
	for name, m := range cfg.Materials {
		materials[name] = buildMaterial(m)
	}

	for _, o := range cfg.Objects {
		m := materials[o.Material]
		switch o.Type {
		case config.ObjectSphere:
			s.Add(geometry.NewSphere(o.Center.Vec3(), o.Radius, m))
		case config.ObjectPlane:
			s.Add(geometry.NewPlane(o.Point.Vec3(), o.Normal.Vec3(), m))
		case config.ObjectQuad:
			s.Add(geometry.NewQuad(o.Corner.Vec3(), o.U.Vec3(), o.V.Vec3(), m))
		}
	}

	return s, nil
}

func buildMaterial(m config.MaterialConfig) core.Material {
	switch m.Type {
	case config.MaterialMetal:
		return material.NewMetal(m.Albedo.Vec3(), m.Fuzz)
	case config.MaterialDielectric:
		return material.NewDielectric(m.RefractiveIndex)
	default:
		return material.NewLambertian(m.Albedo.Vec3())
	}
}

// LoadFile reads a YAML scene file and builds it
func LoadFile(path string) (*Scene, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	s, err := FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("while building %s: %w", path, err)
	}
	return s, nil
}
