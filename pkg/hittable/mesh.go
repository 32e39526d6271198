package hittable

import (
	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/material"
)

// Mesh owns a list of triangles and, once built, a mesh-local BVH over
// them, plus a cached overall AABB (spec.md §3/§4.2). Meshes own their
// triangles exclusively; no other component shares mesh triangle storage.
type Mesh struct {
	Triangles []*Triangle

	bvh   *BVH
	box   core.AABB
	valid bool
}

// NewMesh builds a mesh-local BVH over triangles and caches the overall
// AABB. A mesh with fewer than one triangle is degenerate: it falls back to
// linear scan (an always-empty one in that case) rather than building a BVH
// (spec.md §4.2).
func NewMesh(triangles []*Triangle) *Mesh {
	m := &Mesh{Triangles: triangles}

	if len(triangles) == 0 {
		return m
	}

	shapes := make([]Hittable, len(triangles))
	for i, tr := range triangles {
		shapes[i] = tr
	}

	m.bvh = NewBVH(shapes)
	box, ok := m.bvh.BoundingBox()
	m.box = box
	m.valid = ok
	return m
}

// Hit delegates to the mesh-local BVH; if one was never built (a degenerate,
// empty mesh) it falls back to a linear scan, which trivially misses.
func (m *Mesh) Hit(r core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if m.bvh != nil {
		return m.bvh.Hit(r, tMin, tMax)
	}

	closest := tMax
	var best *material.HitRecord
	for _, tr := range m.Triangles {
		if rec, ok := tr.Hit(r, tMin, closest); ok {
			best = rec
			closest = rec.T
		}
	}
	return best, best != nil
}

// BoundingBox returns the mesh's cached overall AABB.
func (m *Mesh) BoundingBox() (core.AABB, bool) {
	if m.bvh == nil {
		return core.AABB{}, false
	}
	return m.box, m.valid
}
