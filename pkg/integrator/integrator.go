package integrator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// ShadowAcneEpsilon is the minimum t accepted when probing the world.
// Scattered rays start on a surface; round-off must not re-hit it.
const ShadowAcneEpsilon = 0.001

// World is what an integrator traces rays against
type World interface {
	core.Shape
	// BackgroundColor returns the radiance seen along a ray that hits nothing
	BackgroundColor(ray core.Ray) core.Vec3
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray with a budget of depth bounces
	RayColor(ray core.Ray, world World, random *rand.Rand, depth int) core.Vec3
}

// Type names an integrator implementation
type Type string

const (
	TypePath    Type = "path"
	TypeNormals Type = "normals"
)

// New creates an integrator by name
func New(t Type) (Integrator, error) {
	switch t {
	case TypePath, "":
		return NewPathTracingIntegrator(), nil
	case TypeNormals:
		return NewNormalIntegrator(), nil
	default:
		return nil, fmt.Errorf("unknown integrator type %q", t)
	}
}

// closestHit probes the world over (ShadowAcneEpsilon, +Inf)
func closestHit(ray core.Ray, world World) (*core.HitRecord, bool) {
	return world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
}
