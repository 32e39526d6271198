package material

import (
	"math/rand"

	"github.com/dorahawk/voxelray/pkg/core"
)

// Metal is a specular-reflective material with optional fuzz (spec.md §3).
type Metal struct {
	Albedo core.Vec3
	Fuzz   float64 // 0 = perfect mirror, 1 = very fuzzy
}

// NewMetal creates a Metal material, clamping fuzz to [0, 1].
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	if fuzz > 1 {
		fuzz = 1
	}
	if fuzz < 0 {
		fuzz = 0
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter reflects the incoming ray about the normal, perturbed by fuzz;
// scatter succeeds iff the result stays above the surface (spec.md §3:
// "scatter succeeds iff dot(r_out, n) > 0").
func (m *Metal) Scatter(rIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	reflected := core.Reflect(rIn.Direction.Normalize(), hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzz))
	}

	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo,
	}, true
}

// Emitted is always zero for a Metal surface.
func (m *Metal) Emitted(u, v float64, p core.Vec3) core.Vec3 { return core.Vec3{} }
