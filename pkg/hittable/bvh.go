package hittable

import (
	"sort"

	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/material"
)

// BVHNode is either a leaf holding exactly one primitive, or an internal
// node with two owned children and their combined bounding box (spec.md
// §3/§4.3).
type BVHNode struct {
	box         core.AABB
	left, right *BVHNode
	leaf        Hittable
}

// BVH is a binary bounding-volume hierarchy built once over a flat list of
// Hittables, immutable thereafter (spec.md §4.3).
type BVH struct {
	root *BVHNode

	nodeCount int
	leafCount int
	maxDepth  int
}

// NewBVH builds a BVH over shapes. Construction is top-down and
// deterministic: at each level the splitting axis is the longest extent of
// the set's centroid range, primitives are sorted by their minimum corner
// on that axis, and the set is split into two equal halves. An empty input
// is a construction error per spec.md §4.3 ("an empty set is an error");
// callers must not invoke NewBVH with zero primitives.
func NewBVH(shapes []Hittable) *BVH {
	if len(shapes) == 0 {
		panic("hittable: NewBVH requires at least one primitive")
	}

	ordered := make([]Hittable, len(shapes))
	copy(ordered, shapes)

	bvh := &BVH{}
	bvh.root = bvh.build(ordered, 0)
	return bvh
}

func boundsOf(h Hittable) core.AABB {
	box, ok := h.BoundingBox()
	if !ok {
		return core.AABB{}
	}
	return box
}

func combinedBounds(shapes []Hittable) core.AABB {
	box := boundsOf(shapes[0])
	for _, s := range shapes[1:] {
		box = box.Union(boundsOf(s))
	}
	return box
}

// build recursively constructs a subtree over shapes, following spec.md
// §4.3 exactly: singleton sets become leaves holding that one primitive;
// larger sets are sorted by min-corner along the longest centroid-extent
// axis and split into two equal halves.
func (bvh *BVH) build(shapes []Hittable, depth int) *BVHNode {
	bvh.nodeCount++
	if depth > bvh.maxDepth {
		bvh.maxDepth = depth
	}

	box := combinedBounds(shapes)

	if len(shapes) == 1 {
		bvh.leafCount++
		return &BVHNode{box: box, leaf: shapes[0]}
	}

	axis := centroidLongestAxis(shapes)
	sort.SliceStable(shapes, func(i, j int) bool {
		return minCorner(shapes[i], axis) < minCorner(shapes[j], axis)
	})

	mid := len(shapes) / 2
	left := bvh.build(shapes[:mid], depth+1)
	right := bvh.build(shapes[mid:], depth+1)

	return &BVHNode{box: box, left: left, right: right}
}

// centroidLongestAxis returns the axis (0=X, 1=Y, 2=Z) with the greatest
// extent across the set's bounding-box centroids.
func centroidLongestAxis(shapes []Hittable) int {
	min := boundsOf(shapes[0]).Center()
	max := min
	for _, s := range shapes[1:] {
		c := boundsOf(s).Center()
		if c.X < min.X {
			min.X = c.X
		}
		if c.Y < min.Y {
			min.Y = c.Y
		}
		if c.Z < min.Z {
			min.Z = c.Z
		}
		if c.X > max.X {
			max.X = c.X
		}
		if c.Y > max.Y {
			max.Y = c.Y
		}
		if c.Z > max.Z {
			max.Z = c.Z
		}
	}
	ext := max.Subtract(min)
	if ext.X > ext.Y && ext.X > ext.Z {
		return 0
	}
	if ext.Y > ext.Z {
		return 1
	}
	return 2
}

func minCorner(h Hittable, axis int) float64 {
	box := boundsOf(h)
	switch axis {
	case 0:
		return box.Min.X
	case 1:
		return box.Min.Y
	default:
		return box.Min.Z
	}
}

// Hit traverses the BVH: misses are culled by the node AABB test, leaves
// delegate to their primitive, and internal nodes test the left child
// first, tightening tMax to any hit found, then the right child. Order is
// intentionally left-then-right rather than sorted by ray direction (spec.md
// §4.3), preserving determinism of the per-pixel result for a fixed seed.
func (bvh *BVH) Hit(r core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh.root == nil {
		return nil, false
	}
	return hitNode(bvh.root, r, tMin, tMax)
}

func hitNode(node *BVHNode, r core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !node.box.Hit(r, tMin, tMax) {
		return nil, false
	}

	if node.leaf != nil {
		return node.leaf.Hit(r, tMin, tMax)
	}

	closest := tMax
	var best *material.HitRecord

	if rec, ok := hitNode(node.left, r, tMin, closest); ok {
		best = rec
		closest = rec.T
	}
	if rec, ok := hitNode(node.right, r, tMin, closest); ok {
		best = rec
	}

	return best, best != nil
}

// BoundingBox returns the root node's bounding box.
func (bvh *BVH) BoundingBox() (core.AABB, bool) {
	if bvh.root == nil {
		return core.AABB{}, false
	}
	return bvh.root.box, true
}

// NodeCount, LeafCount and MaxDepth expose construction diagnostics; they
// do not affect correctness (spec.md §4.3).
func (bvh *BVH) NodeCount() int { return bvh.nodeCount }
func (bvh *BVH) LeafCount() int { return bvh.leafCount }
func (bvh *BVH) MaxDepth() int  { return bvh.maxDepth }
