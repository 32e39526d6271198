package hittable

import (
	"github.com/dorahawk/voxelray/pkg/camera"
	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/lights"
	"github.com/dorahawk/voxelray/pkg/material"
)

// World is the root Hittable container: primitives, sun, point lights and
// an optional environment, plus the render configuration and camera needed
// to drive a render job (spec.md §3). It is fully populated by the scene
// loader before rendering and is immutable during a render.
type World struct {
	Config      core.Config
	Camera      *camera.Camera
	Sun         lights.Sun
	PointLights []lights.PointLight
	Environment *lights.Environment

	Primitives []Hittable
	bvh        *BVH
}

// NewWorld constructs a World over primitives. When cfg.Acceleration is
// AccelerationBVH, a BVH is built once over primitives; otherwise Hit falls
// back to a linear scan (spec.md §3: "World... optional BVH root built over
// that primitive list").
func NewWorld(cfg core.Config, cam *camera.Camera, sun lights.Sun, pointLights []lights.PointLight, env *lights.Environment, primitives []Hittable) *World {
	w := &World{
		Config:      cfg,
		Camera:      cam,
		Sun:         sun,
		PointLights: pointLights,
		Environment: env,
		Primitives:  primitives,
	}

	if cfg.Acceleration == core.AccelerationBVH && len(primitives) > 0 {
		w.bvh = NewBVH(primitives)
	}

	return w
}

// Hit finds the nearest intersection among the world's primitives, via the
// BVH when built, else a linear scan over Primitives.
func (w *World) Hit(r core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if w.bvh != nil {
		return w.bvh.Hit(r, tMin, tMax)
	}

	closest := tMax
	var best *material.HitRecord
	for _, p := range w.Primitives {
		if rec, ok := p.Hit(r, tMin, closest); ok {
			best = rec
			closest = rec.T
		}
	}
	return best, best != nil
}

// BoundingBox returns the bounds enclosing every primitive in the world.
func (w *World) BoundingBox() (core.AABB, bool) {
	if w.bvh != nil {
		return w.bvh.BoundingBox()
	}
	if len(w.Primitives) == 0 {
		return core.AABB{}, false
	}
	box := combinedBounds(w.Primitives)
	return box, true
}

// BVHStats exposes construction diagnostics of the world's top-level BVH,
// if one was built (spec.md §4.3: "node count, leaf count, and max depth
// for diagnostics").
func (w *World) BVHStats() (nodeCount, leafCount, maxDepth int, ok bool) {
	if w.bvh == nil {
		return 0, 0, 0, false
	}
	return w.bvh.NodeCount(), w.bvh.LeafCount(), w.bvh.MaxDepth(), true
}
