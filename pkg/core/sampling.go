package core

import (
	"math"
	"math/rand"
)

// RandomInUnitSphere returns a uniformly distributed point inside the unit
// sphere, via rejection sampling.
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
			Z: 2*random.Float64() - 1,
		}
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a uniformly distributed point on the unit
// sphere's surface.
func RandomUnitVector(random *rand.Rand) Vec3 {
	return RandomInUnitSphere(random).Normalize()
}

// RandomInUnitDisk returns a uniformly distributed point in the unit disk
// (Z=0), used for thin-lens depth-of-field sampling (spec.md §4.4).
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := Vec3{X: 2*random.Float64() - 1, Y: 2*random.Float64() - 1}
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomCosineDirection returns a cosine-weighted random direction in the
// hemisphere around normal, used by Lambertian scattering (spec.md §3:
// "r_out direction = n + random_unit_vector").
func RandomCosineDirection(normal Vec3, random *rand.Rand) Vec3 {
	return normal.Add(RandomUnitVector(random)).Normalize()
}

// Reflect computes the reflection of v off a surface with normal n.
func Reflect(v, n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract computes the refraction of uv through a surface with normal n and
// relative index of refraction etaiOverEtat, via Snell's law.
func Refract(uv, n Vec3, etaiOverEtat float64) Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance computes Fresnel reflectance via Schlick's approximation
// (spec.md §3, Dielectric: "Schlick-approximated refraction/reflection").
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
