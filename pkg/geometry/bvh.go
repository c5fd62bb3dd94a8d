package geometry

import (
	"sort"

	"github.com/kjhall/pathlight/pkg/core"
)

// leafThreshold is the number of triangles at or below which a node
// stores them directly rather than splitting further.
const leafThreshold = 8

// BVHNode is a node in the bounding volume hierarchy.
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Triangles   []*Triangle // non-nil only for leaf nodes
}

// BVH accelerates ray intersection against a set of triangles with a
// bounding volume hierarchy built by a median split along the longest axis.
type BVH struct {
	Root *BVHNode
}

// NewBVH builds a BVH over triangles. The input slice is copied so the
// caller's slice is left untouched.
func NewBVH(triangles []*Triangle) *BVH {
	if len(triangles) == 0 {
		return &BVH{}
	}
	working := make([]*Triangle, len(triangles))
	copy(working, triangles)
	return &BVH{Root: buildBVH(working)}
}

func buildBVH(triangles []*Triangle) *BVHNode {
	bbox := triangles[0].BoundingBox()
	for _, tri := range triangles[1:] {
		bbox = bbox.Union(tri.BoundingBox())
	}

	if len(triangles) <= leafThreshold {
		return &BVHNode{BoundingBox: bbox, Triangles: triangles}
	}

	axis := bbox.LongestAxis()
	sortTrianglesByAxis(triangles, axis)

	mid := len(triangles) / 2
	return &BVHNode{
		BoundingBox: bbox,
		Left:        buildBVH(triangles[:mid]),
		Right:       buildBVH(triangles[mid:]),
	}
}

func sortTrianglesByAxis(triangles []*Triangle, axis int) {
	sort.Slice(triangles, func(i, j int) bool {
		ci := triangles[i].BoundingBox().Center()
		cj := triangles[j].BoundingBox().Center()
		switch axis {
		case 0:
			return ci.X < cj.X
		case 1:
			return ci.Y < cj.Y
		default:
			return ci.Z < cj.Z
		}
	})
}

// Hit finds the closest intersection between ray and any triangle stored
// in the BVH within [tMin, tMax].
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	if bvh.Root == nil {
		return HitRecord{}, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax)
}

func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return HitRecord{}, false
	}

	if node.Triangles != nil {
		var closest HitRecord
		hitAnything := false
		closestSoFar := tMax
		for _, tri := range node.Triangles {
			if hit, ok := tri.Hit(ray, tMin, closestSoFar); ok {
				hitAnything = true
				closestSoFar = hit.T
				closest = hit
			}
		}
		return closest, hitAnything
	}

	var closest HitRecord
	hitAnything := false
	closestSoFar := tMax

	if node.Left != nil {
		if hit, ok := bvh.hitNode(node.Left, ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}
	if node.Right != nil {
		if hit, ok := bvh.hitNode(node.Right, ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}
