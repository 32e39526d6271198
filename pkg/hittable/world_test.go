package hittable

import (
	"testing"

	"github.com/dorahawk/voxelray/pkg/camera"
	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/lights"
	"github.com/dorahawk/voxelray/pkg/material"
)

func testCamera() *camera.Camera {
	return camera.NewCamera(camera.Config{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		WorldUp:       core.NewVec3(0, 1, 0),
		VFOV:          90,
		AspectRatio:   1,
		FocusDistance: 1,
	})
}

func TestWorldHitUsesBVHWhenEnabled(t *testing.T) {
	cfg := core.Config{Acceleration: core.AccelerationBVH}
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)))
	w := NewWorld(cfg, testCamera(), lights.Sun{}, nil, nil, []Hittable{sphere})

	r := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	if _, ok := w.Hit(r, 0.001, 1000); !ok {
		t.Error("expected world to report a hit via its BVH")
	}
	if _, _, _, ok := w.BVHStats(); !ok {
		t.Error("expected BVH stats to be available when acceleration is enabled")
	}
}

func TestWorldHitLinearFallbackWhenAccelerationDisabled(t *testing.T) {
	cfg := core.Config{Acceleration: core.AccelerationLinear}
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)))
	w := NewWorld(cfg, testCamera(), lights.Sun{}, nil, nil, []Hittable{sphere})

	r := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	if _, ok := w.Hit(r, 0.001, 1000); !ok {
		t.Error("expected world to report a hit via linear scan")
	}
	if _, _, _, ok := w.BVHStats(); ok {
		t.Error("expected no BVH stats when acceleration is disabled")
	}
}

func TestWorldWithNoPrimitivesMisses(t *testing.T) {
	w := NewWorld(core.DefaultConfig(), testCamera(), lights.Sun{}, nil, nil, nil)
	r := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	if _, ok := w.Hit(r, 0.001, 1000); ok {
		t.Error("an empty world must never report a hit")
	}
}
