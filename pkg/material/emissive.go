package material

import (
	"math/rand"

	"github.com/dorahawk/voxelray/pkg/core"
)

// Emissive is a light-emitting material that never scatters (spec.md §3).
type Emissive struct {
	Emission core.Vec3
}

// NewEmissive creates an Emissive material with the given emitted color.
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter never succeeds for an emissive surface.
func (e *Emissive) Scatter(rIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns this surface's constant emission.
func (e *Emissive) Emitted(u, v float64, p core.Vec3) core.Vec3 { return e.Emission }
