package scene

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// NewNormalsScene creates the two-sphere scene shaded by surface normal.
// Materials are irrelevant to the normal integrator but set so the scene
// also renders with path tracing.
func NewNormalsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	sampling := DefaultSamplingConfig()
	sampling.SamplesPerPixel = 1
	sampling.MaxDepth = 1

	s := newScene(geometry.DefaultCameraConfig(), sampling, cameraOverrides)
	s.Integrator = integrator.TypeNormals

	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, gray),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray),
	)

	return s
}
