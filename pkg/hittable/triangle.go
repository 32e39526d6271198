package hittable

import (
	"math"

	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/material"
)

// triangleEpsilon guards the Möller–Trumbore test against rays parallel to
// the triangle's plane.
const triangleEpsilon = 1e-8

// Triangle is a single triangle with per-vertex normals and UVs, so it can
// represent both a flat face and a smooth-shaded mesh face (spec.md §4.2).
type Triangle struct {
	V0, V1, V2 core.Vec3
	N0, N1, N2 core.Vec3
	UV0, UV1, UV2 core.Vec2
	Material   material.Material
}

// NewTriangle creates a flat-shaded Triangle: all three vertex normals are
// the geometric face normal, and UVs default to (0,0),(1,0),(0,1).
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	n := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return &Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n, N1: n, N2: n,
		UV0: core.NewVec2(0, 0), UV1: core.NewVec2(1, 0), UV2: core.NewVec2(0, 1),
		Material: mat,
	}
}

// Hit implements the Möller–Trumbore ray-triangle intersection (spec.md
// §4.2), interpolating the per-vertex normal and UV by barycentric weight.
func (tr *Triangle) Hit(r core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < triangleEpsilon {
		return nil, false
	}

	f := 1.0 / a
	s := r.Origin.Subtract(tr.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil, false
	}

	t := f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return nil, false
	}

	w := 1 - u - v
	point := r.At(t)
	outwardNormal := tr.N0.Multiply(w).Add(tr.N1.Multiply(u)).Add(tr.N2.Multiply(v)).Normalize()
	uv := core.NewVec2(
		tr.UV0.X*w+tr.UV1.X*u+tr.UV2.X*v,
		tr.UV0.Y*w+tr.UV1.Y*u+tr.UV2.Y*v,
	)

	rec := &material.HitRecord{
		T:        t,
		Point:    point,
		UV:       uv,
		Material: tr.Material,
	}
	rec.SetFaceNormal(r, outwardNormal)
	return rec, true
}

// BoundingBox returns the bounds of the triangle's three vertices.
func (tr *Triangle) BoundingBox() (core.AABB, bool) {
	return core.NewAABBFromPoints(tr.V0, tr.V1, tr.V2), true
}
