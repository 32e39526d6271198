// Package hittable implements the primitives, mesh, BVH and World described
// in spec.md §3/§4.2-4.3/§4.6 (C3-C6).
package hittable

import (
	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/material"
)

// Hittable is the polymorphic capability every primitive, mesh, BVH node and
// the World itself implements (spec.md §3: "Primitive is a polymorphic
// Hittable").
type Hittable interface {
	Hit(r core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() (core.AABB, bool)
}
