package scene

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []core.Shape        // Objects in the scene, in insertion order
	Background     integrator.Gradient // Sky seen by rays that hit nothing
	SamplingConfig SamplingConfig
	Integrator     integrator.Type // Preferred integrator for this scene
}

// SamplingConfig contains the scene's preferred render settings
type SamplingConfig struct {
	Width           int     // Image width
	AspectRatio     float64 // Width / height
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	NumWorkers      int     // 0 means one per CPU
	Seed            int64   // 0 means entropy-seeded
}

// DefaultSamplingConfig returns the settings used when a scene doesn't override them
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...core.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// Hit returns the closest hit over all shapes. The window's upper bound
// shrinks to each accepted hit; on an exact tie the earlier shape wins.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range s.Shapes {
		hit, isHit := shape.Hit(ray, tMin, closestSoFar)
		if !isHit {
			continue
		}
		if closestHit != nil && hit.T >= closestSoFar {
			continue
		}
		closestSoFar = hit.T
		closestHit = hit
	}

	return closestHit, closestHit != nil
}

// BackgroundColor returns the sky gradient along a ray
func (s *Scene) BackgroundColor(ray core.Ray) core.Vec3 {
	return s.Background.Color(ray)
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() core.Camera {
	return s.Camera
}

// newScene builds an empty scene with the given camera and sampling defaults
func newScene(cameraConfig geometry.CameraConfig, sampling SamplingConfig, cameraOverrides []geometry.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	if cameraConfig.AspectRatio == 0 {
		cameraConfig.AspectRatio = sampling.AspectRatio
	}
	sampling.AspectRatio = cameraConfig.AspectRatio

	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Shapes:         make([]core.Shape, 0),
		Background:     integrator.DefaultSky(),
		SamplingConfig: sampling,
		Integrator:     integrator.TypePath,
	}
}
