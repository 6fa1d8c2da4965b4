package integrator

import "github.com/df07/go-montecarlo-raytracer/pkg/core"

// Gradient is a vertical sky gradient from Horizon (looking straight down)
// to Zenith (looking straight up)
type Gradient struct {
	Horizon core.Vec3
	Zenith  core.Vec3
}

// DefaultSky returns the white to sky-blue gradient
func DefaultSky() Gradient {
	return Gradient{
		Horizon: core.NewVec3(1.0, 1.0, 1.0),
		Zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the gradient color for a ray's direction
func (g Gradient) Color(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return g.Horizon.Lerp(g.Zenith, t)
}
