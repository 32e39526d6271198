package scene

import (
	"github.com/dorahawk/voxelray/pkg/camera"
	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/hittable"
	"github.com/dorahawk/voxelray/pkg/lights"
	"github.com/dorahawk/voxelray/pkg/material"
)

// groundTriangles builds a large flat quad (two triangles) centered at
// center, standing in for an infinite ground plane (spec.md's primitive
// set has no dedicated plane/quad type — C3 is sphere/triangle/mesh only).
func groundTriangles(center core.Vec3, size float64, mat material.Material) []hittable.Hittable {
	half := size / 2
	a := core.NewVec3(center.X-half, center.Y, center.Z-half)
	b := core.NewVec3(center.X+half, center.Y, center.Z-half)
	c := core.NewVec3(center.X+half, center.Y, center.Z+half)
	d := core.NewVec3(center.X-half, center.Y, center.Z+half)
	return []hittable.Hittable{
		hittable.NewTriangle(a, b, c, mat),
		hittable.NewTriangle(a, c, d, mat),
	}
}

// NewDefaultScene builds a built-in scene: a few spheres with varied
// materials over a ground plane, lit by a sun and the default sky gradient.
// The CLI does not fall back to it; a missing --scene file exits with code 2.
func NewDefaultScene() *hittable.World {
	cfg := core.DefaultConfig()
	cfg.Width = 400
	cfg.Height = 225

	cam := camera.NewCamera(camera.Config{
		LookFrom:      core.NewVec3(0, 0.75, 2),
		LookAt:        core.NewVec3(0, 0.5, -1),
		WorldUp:       core.NewVec3(0, 1, 0),
		VFOV:          40,
		AspectRatio:   float64(cfg.Width) / float64(cfg.Height),
		Aperture:      0.05,
		FocusDistance: 3.0,
	})

	lambertianGreen := material.NewLambertian(core.NewVec3(0.48, 0.48, 0.0))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	var primitives []hittable.Hittable
	primitives = append(primitives, hittable.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed))
	primitives = append(primitives, hittable.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver))
	primitives = append(primitives, hittable.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold))
	primitives = append(primitives, hittable.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass))
	primitives = append(primitives, groundTriangles(core.NewVec3(0, 0, 0), 10000, lambertianGreen)...)

	sun := lights.NewSun(core.NewVec3(0.3, 1, 0.2), core.NewVec3(1, 0.95, 0.9))
	env := lights.NewDefaultEnvironment()

	return hittable.NewWorld(cfg, cam, sun, nil, env, primitives)
}
