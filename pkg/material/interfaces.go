// Package material implements the scatter/emit contracts of spec.md §3-4.2
// (Lambertian, Metal, Dielectric, Emissive).
package material

import (
	"math/rand"

	"github.com/dorahawk/voxelray/pkg/core"
)

// HitRecord is produced by a successful intersection (spec.md §3): the hit
// point, outward (front-face-corrected) unit normal, ray parameter t,
// surface UV, front-face flag and the hit material.
type HitRecord struct {
	Point     core.Vec3
	Normal    core.Vec3
	T         float64
	UV        core.Vec2
	FrontFace bool
	Material  Material
}

// SetFaceNormal derives FrontFace and Normal from the ray and the geometric
// (not necessarily outward-correct) normal, per spec.md §3: "front-face flag
// (true iff dot(ray.dir, geometric_normal) < 0; n is then flipped
// accordingly)".
func (h *HitRecord) SetFaceNormal(r core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = r.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// ScatterResult is what a material's Scatter produces on success: an
// outgoing ray and the attenuation to apply to whatever it returns.
type ScatterResult struct {
	Scattered   core.Ray
	Attenuation core.Vec3
}

// Material is the polymorphic capability spec.md §3 describes: scatter an
// incoming ray into an attenuated outgoing ray, and/or self-emit.
type Material interface {
	// Scatter returns (result, true) if the ray continues; (_, false) if
	// the path terminates here (emissive materials, or a metal/grazing
	// rejection).
	Scatter(rIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
	// Emitted returns this material's self-emission at the given surface
	// point/UV, independent of incoming light. Zero for non-emissive
	// materials.
	Emitted(u, v float64, p core.Vec3) core.Vec3
}
