package integrator

import (
	"math/rand"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// testWorld is a minimal World: a linear closest-hit scan under the default sky
type testWorld struct {
	shapes []core.Shape
	sky    Gradient
}

func newTestWorld(shapes ...core.Shape) *testWorld {
	return &testWorld{shapes: shapes, sky: DefaultSky()}
}

func (w *testWorld) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	for _, shape := range w.shapes {
		if hit, ok := shape.Hit(ray, tMin, tMax); ok {
			closest = hit
			tMax = hit.T
		}
	}
	return closest, closest != nil
}

func (w *testWorld) BackgroundColor(ray core.Ray) core.Vec3 {
	return w.sky.Color(ray)
}

// absorber never scatters
type absorber struct{}

func (absorber) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}
