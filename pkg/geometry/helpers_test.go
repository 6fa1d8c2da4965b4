package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// DummyMaterial absorbs every ray; shape tests only care about geometry.
type DummyMaterial struct{}

func (DummyMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}
