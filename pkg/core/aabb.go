package core

import "math"

// AABB is an axis-aligned bounding box: a pair of opposite corners.
// Invariant: Min.<axis> <= Max.<axis> for every axis (spec.md §3).
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates an AABB from explicit min/max corners.
func NewAABB(min, max Vec3) AABB { return AABB{Min: min, Max: max} }

// NewAABBFromPoints returns the smallest AABB enclosing all given points.
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min.X, max.X = math.Min(min.X, p.X), math.Max(max.X, p.X)
		min.Y, max.Y = math.Min(min.Y, p.Y), math.Max(max.Y, p.Y)
		min.Z, max.Z = math.Min(min.Z, p.Z), math.Max(max.Z, p.Z)
	}
	return AABB{Min: min, Max: max}
}

// Hit tests ray-box intersection using the slab method (spec.md §4.1): for
// each axis compute the two slab crossings, swap so t0 <= t1, tighten the
// running [tMin, tMax] interval, and reject once the interval is empty. A
// ray parallel to an axis (direction ~ 0) is rejected only if its origin
// lies outside that axis's slab.
func (b AABB) Hit(r Ray, tMin, tMax float64) bool {
	_, ok := b.HitInterval(r, tMin, tMax)
	return ok
}

// HitInterval returns the overlap interval of the ray's [tMin, tMax] with the
// box's slabs, and whether any overlap exists. Exposed separately from Hit
// so tests can assert the returned interval actually contains a known t*
// (spec.md §8 property 1).
func (b AABB) HitInterval(r Ray, tMin, tMax float64) (interval [2]float64, ok bool) {
	for axis := 0; axis < 3; axis++ {
		var lo, hi, origin, dir float64
		switch axis {
		case 0:
			lo, hi, origin, dir = b.Min.X, b.Max.X, r.Origin.X, r.Direction.X
		case 1:
			lo, hi, origin, dir = b.Min.Y, b.Max.Y, r.Origin.Y, r.Direction.Y
		default:
			lo, hi, origin, dir = b.Min.Z, b.Max.Z, r.Origin.Z, r.Direction.Z
		}

		if math.Abs(dir) < 1e-12 {
			if origin < lo || origin > hi {
				return [2]float64{}, false
			}
			continue
		}

		invDir := 1.0 / dir
		t0 := (lo - origin) * invDir
		t1 := (hi - origin) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMax <= tMin {
			return [2]float64{}, false
		}
	}
	return [2]float64{tMin, tMax}, true
}

// Union returns the AABB bounding both receivers.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Center returns the box's midpoint.
func (b AABB) Center() Vec3 { return b.Min.Add(b.Max).Multiply(0.5) }

// Size returns the per-axis extent of the box.
func (b AABB) Size() Vec3 { return b.Max.Subtract(b.Min) }

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the greatest extent.
func (b AABB) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsValid reports whether Min <= Max on every axis.
func (b AABB) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}
