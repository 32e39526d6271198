package core

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestAABBHitBasic(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	r := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1))

	if !box.Hit(r, 0.001, math.MaxFloat64) {
		t.Fatal("expected ray through the box center to hit")
	}

	miss := NewRay(NewVec3(5, 5, -5), NewVec3(0, 0, 1))
	if box.Hit(miss, 0.001, math.MaxFloat64) {
		t.Fatal("expected a ray that misses the box entirely to miss")
	}
}

func TestAABBHitAxisParallelOriginOutsideSlab(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	// Ray parallel to X axis, origin outside the Y slab.
	r := NewRay(NewVec3(-5, 5, 0), NewVec3(1, 0, 0))
	if box.Hit(r, 0.001, math.MaxFloat64) {
		t.Fatal("expected axis-parallel ray with origin outside the slab to miss")
	}
}

func TestAABBUnionEnclosesBoth(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(2, -1, 0), NewVec3(3, 0, 2))
	u := a.Union(b)

	if u.Min != (Vec3{0, -1, 0}) || u.Max != (Vec3{3, 1, 2}) {
		t.Errorf("Union = {%v %v}, want {{0 -1 0} {3 1 2}}", u.Min, u.Max)
	}
}

// TestAABBSoundnessForSphereHits is spec.md §8 property 1: for any ray that
// intersects a sphere at t*, the box's slab interval must contain t*.
func TestAABBSoundnessForSphereHits(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		center := NewVec3(
			rapid.Float64Range(-10, 10).Draw(rt, "cx"),
			rapid.Float64Range(-10, 10).Draw(rt, "cy"),
			rapid.Float64Range(-10, 10).Draw(rt, "cz"),
		)
		radius := rapid.Float64Range(0.1, 5).Draw(rt, "radius")

		box := NewAABB(
			center.Subtract(NewVec3(radius, radius, radius)),
			center.Add(NewVec3(radius, radius, radius)),
		)

		origin := NewVec3(
			rapid.Float64Range(-20, 20).Draw(rt, "ox"),
			rapid.Float64Range(-20, 20).Draw(rt, "oy"),
			rapid.Float64Range(-20, 20).Draw(rt, "oz"),
		)
		dir := center.Subtract(origin)
		if dir.LengthSquared() < 1e-12 {
			return // degenerate: origin == center, not a useful ray
		}
		r := NewRay(origin, dir.Normalize())

		// Solve the sphere quadratic directly for a ground-truth t*.
		oc := r.Origin.Subtract(center)
		a := r.Direction.Dot(r.Direction)
		halfB := oc.Dot(r.Direction)
		c := oc.Dot(oc) - radius*radius
		disc := halfB*halfB - a*c
		if disc < 0 {
			return // ray misses the sphere; nothing to assert
		}
		tStar := (-halfB - math.Sqrt(disc)) / a
		if tStar < 0 {
			return // behind the origin; not in our [0, inf) convention
		}

		interval, ok := box.HitInterval(r, 0, 1e9)
		if !ok {
			rt.Fatalf("AABB slab test missed a ray that hits its own sphere at t=%v", tStar)
		}
		if tStar < interval[0]-1e-6 || tStar > interval[1]+1e-6 {
			rt.Fatalf("slab interval [%v, %v] does not contain t*=%v", interval[0], interval[1], tStar)
		}
	})
}
