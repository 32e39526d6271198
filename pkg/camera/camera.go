// Package camera implements the pinhole / thin-lens ray generator described
// in spec.md §4.4 (C7).
package camera

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dorahawk/voxelray/pkg/core"
)

// Config describes the parameters used to build a Camera.
type Config struct {
	LookFrom      core.Vec3
	LookAt        core.Vec3
	WorldUp       core.Vec3
	VFOV          float64 // vertical field of view, degrees
	AspectRatio   float64
	Aperture      float64
	FocusDistance float64
}

// Camera generates primary rays for screen coordinates (s, t) in [0, 1].
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// toMgl and fromMgl convert between core.Vec3 and mgl64.Vec3 so the
// orthonormal basis construction can be expressed with mathgl's vector
// operations (spec.md §4.4).
func toMgl(v core.Vec3) mgl64.Vec3   { return mgl64.Vec3{v.X, v.Y, v.Z} }
func fromMgl(v mgl64.Vec3) core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

// NewCamera builds a Camera from cfg, constructing the orthonormal basis
// (u, v, w) with w = unit(lookFrom - lookAt), u = unit(cross(up, w)),
// v = cross(w, u) (spec.md §4.4).
func NewCamera(cfg Config) *Camera {
	theta := cfg.VFOV * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := cfg.AspectRatio * viewportHeight

	w := fromMgl(toMgl(cfg.LookFrom.Subtract(cfg.LookAt)).Normalize())
	u := fromMgl(toMgl(cfg.WorldUp).Cross(toMgl(w)).Normalize())
	v := fromMgl(toMgl(w).Cross(toMgl(u)))

	origin := cfg.LookFrom
	horizontal := u.Multiply(cfg.FocusDistance * viewportWidth)
	vertical := v.Multiply(cfg.FocusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(cfg.FocusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      cfg.Aperture / 2,
	}
}

// GetRay generates a ray through screen coordinates (s, t). When the
// camera has a nonzero aperture, the ray origin is jittered across the
// lens disk to produce depth-of-field (spec.md §4.4).
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
		origin = origin.Add(offset)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}
