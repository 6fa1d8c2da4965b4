package integrator

import (
	"math/rand"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// NormalIntegrator shades each hit by its face-corrected normal mapped to
// RGB as 0.5*(n+1). Misses see the background. Useful for checking geometry
// without any sampling noise.
type NormalIntegrator struct{}

// NewNormalIntegrator creates a new normal visualization integrator
func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{}
}

// RayColor returns the normal color of the first hit
func (ni *NormalIntegrator) RayColor(ray core.Ray, world World, random *rand.Rand, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := closestHit(ray, world)
	if !isHit {
		return world.BackgroundColor(ray)
	}

	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
