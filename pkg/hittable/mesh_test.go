package hittable

import (
	"testing"

	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/material"
)

func TestMeshHitDelegatesToLocalBVH(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	triangles := []*Triangle{
		NewTriangle(core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, -1), core.NewVec3(0, 1, -1), mat),
		NewTriangle(core.NewVec3(-1, -1, 3), core.NewVec3(1, -1, 3), core.NewVec3(0, 1, 3), mat),
	}
	mesh := NewMesh(triangles)

	r := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	rec, ok := mesh.Hit(r, 0.001, 1000)
	if !ok {
		t.Fatal("expected a hit on the nearer triangle")
	}
	if rec.T <= 0 || rec.T >= 1.5 {
		t.Errorf("t = %v, want near the z=-1 triangle", rec.T)
	}
}

func TestMeshEmptyFallsBackToLinearScanAndMisses(t *testing.T) {
	mesh := NewMesh(nil)
	r := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	if _, ok := mesh.Hit(r, 0.001, 1000); ok {
		t.Error("an empty mesh must never report a hit")
	}
	if _, ok := mesh.BoundingBox(); ok {
		t.Error("an empty mesh must report no bounding box")
	}
}

func TestMeshBoundingBoxEnclosesTriangles(t *testing.T) {
	mat := material.NewLambertian(core.Vec3{})
	triangles := []*Triangle{
		NewTriangle(core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, -1), core.NewVec3(0, 1, -1), mat),
	}
	mesh := NewMesh(triangles)
	box, ok := mesh.BoundingBox()
	if !ok {
		t.Fatal("expected a bounding box for a nonempty mesh")
	}
	tbox, _ := triangles[0].BoundingBox()
	if box != tbox {
		t.Errorf("mesh box = %+v, want %+v", box, tbox)
	}
}
