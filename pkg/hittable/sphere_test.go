package hittable

import (
	"testing"

	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/material"
)

func TestSphereHitCentered(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)))
	r := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	rec, ok := s.Hit(r, 0.001, 1000)
	if !ok {
		t.Fatal("expected a hit")
	}
	if rec.T <= 0 || rec.T >= 1 {
		t.Errorf("t = %v, want in (0, 1) for a sphere of radius 0.5 at z=-1", rec.T)
	}
	if !rec.FrontFace {
		t.Error("expected a front-face hit from outside the sphere")
	}
	if rec.Normal.Dot(r.Direction) > 0 {
		t.Errorf("front-face normal %v must oppose ray direction %v", rec.Normal, r.Direction)
	}
}

func TestSphereMiss(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.Vec3{}))
	r := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))

	if _, ok := s.Hit(r, 0.001, 1000); ok {
		t.Error("expected a miss for a ray pointing away from the sphere")
	}
}

func TestSphereBoundingBox(t *testing.T) {
	s := NewSphere(core.NewVec3(1, 2, 3), 2, material.NewLambertian(core.Vec3{}))
	box, ok := s.BoundingBox()
	if !ok {
		t.Fatal("sphere must always have a bounding box")
	}
	want := core.NewAABB(core.NewVec3(-1, 0, 1), core.NewVec3(3, 4, 5))
	if box != want {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}
