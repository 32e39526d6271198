package hittable

import (
	"math"

	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/material"
)

// Sphere is defined by a center and radius (spec.md §3).
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a Sphere.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Hit solves the ray-sphere quadratic |O + tD - C|^2 = r^2 (spec.md §4.2),
// preferring the smaller root in (tMin, tMax) and falling back to the
// larger root.
func (s *Sphere) Hit(r core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	oc := r.Origin.Subtract(s.Center)
	a := r.Direction.Dot(r.Direction)
	halfB := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	point := r.At(root)
	outwardNormal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	u, v := sphereUV(outwardNormal)

	rec := &material.HitRecord{
		T:        root,
		Point:    point,
		UV:       core.NewVec2(u, v),
		Material: s.Material,
	}
	rec.SetFaceNormal(r, outwardNormal)
	return rec, true
}

// sphereUV computes (u, v) = (phi/2pi, theta/pi) from a point on the unit
// sphere (spec.md §4.2).
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

// BoundingBox returns the sphere's axis-aligned bounds.
func (s *Sphere) BoundingBox() (core.AABB, bool) {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r)), true
}
