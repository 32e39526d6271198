package material

import (
	"math/rand"

	"github.com/dorahawk/voxelray/pkg/core"
)

// Lambertian is a perfectly diffuse material (spec.md §3).
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a Lambertian material with the given albedo.
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter always succeeds for a Lambertian surface: the outgoing direction
// is the normal plus a random unit vector (spec.md §3), which is equivalent
// to a cosine-weighted hemisphere sample.
func (l *Lambertian) Scatter(rIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	direction := hit.Normal.Add(core.RandomUnitVector(random))
	if direction.NearZero() {
		// Degenerate: random vector exactly cancelled the normal.
		direction = hit.Normal
	}
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: l.Albedo,
	}, true
}

// Emitted is always zero for a Lambertian surface.
func (l *Lambertian) Emitted(u, v float64, p core.Vec3) core.Vec3 { return core.Vec3{} }
