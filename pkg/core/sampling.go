package core

import (
	"math/rand"
)

// RandomVec3 returns a vector with each component uniform in [0, 1)
func RandomVec3(random *rand.Rand) Vec3 {
	return NewVec3(random.Float64(), random.Float64(), random.Float64())
}

// RandomVec3InRange returns a vector with each component uniform in [min, max)
func RandomVec3InRange(random *rand.Rand, minVal, maxVal float64) Vec3 {
	span := maxVal - minVal
	return NewVec3(
		minVal+span*random.Float64(),
		minVal+span*random.Float64(),
		minVal+span*random.Float64(),
	)
}

// RandomInUnitSphere rejection-samples a point strictly inside the unit ball
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1)³ cube
		p := RandomVec3InRange(random, -1, 1)
		// Accept if inside unit sphere
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector returns a uniformly distributed direction on the unit sphere
func RandomUnitVector(random *rand.Rand) Vec3 {
	for {
		p := RandomInUnitSphere(random)
		// The origin itself has no direction
		if p.LengthSquared() > 0 {
			return p.Normalize()
		}
	}
}

// RandomInHemisphere samples the unit ball and flips the sample into the
// hemisphere around normal
func RandomInHemisphere(normal Vec3, random *rand.Rand) Vec3 {
	p := RandomInUnitSphere(random)
	if p.Dot(normal) > 0.0 {
		return p
	}
	return p.Negate()
}
