package geometry

import (
	"math"

	"github.com/kjhall/pathlight/pkg/core"
)

// AABB represents an axis-aligned bounding box, used by the BVH to prune
// ray-triangle intersection tests.
type AABB struct {
	Min core.Vec3
	Max core.Vec3
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...core.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min := points[0]
	max := points[0]
	for _, p := range points[1:] {
		min = core.NewVec3(math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z))
		max = core.NewVec3(math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z))
	}
	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects this AABB using the slab method.
func (b AABB) Hit(ray core.Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		var lo, hi, origin, direction float64
		switch axis {
		case 0:
			lo, hi, origin, direction = b.Min.X, b.Max.X, ray.Origin.X, ray.Direction.X
		case 1:
			lo, hi, origin, direction = b.Min.Y, b.Max.Y, ray.Origin.Y, ray.Direction.Y
		default:
			lo, hi, origin, direction = b.Min.Z, b.Max.Z, ray.Origin.Z, ray.Direction.Z
		}

		if math.Abs(direction) < 1e-8 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invD := 1.0 / direction
		t1 := (lo - origin) * invD
		t2 := (hi - origin) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Union returns an AABB that bounds both this AABB and another.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: core.NewVec3(math.Min(b.Min.X, other.Min.X), math.Min(b.Min.Y, other.Min.Y), math.Min(b.Min.Z, other.Min.Z)),
		Max: core.NewVec3(math.Max(b.Max.X, other.Max.X), math.Max(b.Max.Y, other.Max.Y), math.Max(b.Max.Z, other.Max.Z)),
	}
}

// Center returns the center point of the AABB.
func (b AABB) Center() core.Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis.
func (b AABB) Size() core.Vec3 {
	return b.Max.Subtract(b.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
func (b AABB) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}
