package material

import (
	"math"
	"math/rand"

	"github.com/dorahawk/voxelray/pkg/core"
)

// Dielectric is a transparent, refractive material such as glass or water
// (spec.md §3): Schlick-approximated Fresnel reflectance, attenuation is
// always (1,1,1) (no color absorption).
type Dielectric struct {
	RefractiveIndex float64
}

// NewDielectric creates a Dielectric material with the given index of
// refraction (e.g. 1.5 for glass).
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter always succeeds: it either reflects or refracts, chosen by
// Schlick reflectance and total-internal-reflection (spec.md §4.2/§4.5).
func (d *Dielectric) Scatter(rIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	attenuation := core.NewVec3(1, 1, 1)

	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	} else {
		refractionRatio = d.RefractiveIndex
	}

	unitDirection := rIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || core.Reflectance(cosTheta, refractionRatio) > random.Float64() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// Emitted is always zero for a Dielectric surface.
func (d *Dielectric) Emitted(u, v float64, p core.Vec3) core.Vec3 { return core.Vec3{} }
