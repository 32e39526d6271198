package hittable

import (
	"testing"

	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/material"
)

func TestTriangleHitCenter(t *testing.T) {
	tr := NewTriangle(
		core.NewVec3(-1, -1, -1),
		core.NewVec3(1, -1, -1),
		core.NewVec3(0, 1, -1),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
	)
	r := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	rec, ok := tr.Hit(r, 0.001, 1000)
	if !ok {
		t.Fatal("expected a hit through the triangle's interior")
	}
	if rec.T <= 0 {
		t.Errorf("t = %v, want > 0", rec.T)
	}
	if !rec.FrontFace {
		t.Error("expected front-face hit looking at the triangle from +Z")
	}
}

func TestTriangleMissOutsideEdges(t *testing.T) {
	tr := NewTriangle(
		core.NewVec3(-1, -1, -1),
		core.NewVec3(1, -1, -1),
		core.NewVec3(0, 1, -1),
		material.NewLambertian(core.Vec3{}),
	)
	r := core.NewRay(core.Vec3{}, core.NewVec3(5, 5, -1))

	if _, ok := tr.Hit(r, 0.001, 1000); ok {
		t.Error("expected a miss outside the triangle's edges")
	}
}

func TestTriangleUVInterpolation(t *testing.T) {
	tr := NewTriangle(
		core.NewVec3(-1, -1, -1),
		core.NewVec3(1, -1, -1),
		core.NewVec3(0, 1, -1),
		material.NewLambertian(core.Vec3{}),
	)
	// Default UVs are (0,0),(1,0),(0,1); hitting v0 exactly should yield UV (0,0).
	r := core.NewRay(core.NewVec3(-1, -1, 0), core.NewVec3(0, 0, -1))
	rec, ok := tr.Hit(r, 0.001, 1000)
	if !ok {
		t.Fatal("expected a hit at v0")
	}
	if rec.UV.X > 0.01 || rec.UV.Y > 0.01 {
		t.Errorf("UV at v0 = %+v, want near (0,0)", rec.UV)
	}
}

func TestTriangleParallelRayMisses(t *testing.T) {
	tr := NewTriangle(
		core.NewVec3(-1, -1, -1),
		core.NewVec3(1, -1, -1),
		core.NewVec3(0, 1, -1),
		material.NewLambertian(core.Vec3{}),
	)
	r := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))
	if _, ok := tr.Hit(r, 0.001, 1000); ok {
		t.Error("expected a miss for a ray parallel to the triangle's plane")
	}
}
