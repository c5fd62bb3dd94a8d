package geometry

import (
	"github.com/kjhall/pathlight/pkg/core"
	"github.com/kjhall/pathlight/pkg/material"
)

// Triangle is a single triangle carrying a material and a global ID used
// to identify emissive triangles for light sampling.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   material.Material
	ID         int
	normal     core.Vec3
	bbox       AABB
}

// NewTriangle creates a triangle from three vertices, computing its
// geometric normal from the winding order and caching its bounding box.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material, id int) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat, ID: id}
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	t.normal = edge1.Cross(edge2).Normalize()
	t.bbox = NewAABBFromPoints(v0, v1, v2)
	return t
}

// HitRecord describes a ray/triangle intersection.
type HitRecord struct {
	T        float64
	Point    core.Vec3
	Normal   core.Vec3 // always faces the incoming ray
	Front    bool
	Triangle *Triangle
}

// Hit tests the ray against the triangle using the Moller-Trumbore algorithm.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return HitRecord{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return HitRecord{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return HitRecord{}, false
	}

	dist := f * edge2.Dot(q)
	if dist < tMin || dist > tMax {
		return HitRecord{}, false
	}

	front := ray.Direction.Dot(t.normal) < 0
	normal := t.normal
	if !front {
		normal = normal.Negate()
	}

	return HitRecord{
		T:        dist,
		Point:    ray.At(dist),
		Normal:   normal,
		Front:    front,
		Triangle: t,
	}, true
}

// BoundingBox returns the triangle's cached axis-aligned bounding box.
func (t *Triangle) BoundingBox() AABB {
	return t.bbox
}

// Area returns the triangle's surface area, used as the PDF denominator
// for uniform-area emitter sampling.
func (t *Triangle) Area() float64 {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	return edge1.Cross(edge2).Length() * 0.5
}

// SamplePoint draws a uniformly distributed point on the triangle's
// surface from a 2D sample, returning the point and the geometric normal.
func (t *Triangle) SamplePoint(sample core.Vec2) (core.Vec3, core.Vec3) {
	u, v := core.SampleTriangleUniform(sample)
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	point := t.V0.Add(edge1.Multiply(u)).Add(edge2.Multiply(v))
	return point, t.normal
}

// Normal returns the triangle's geometric normal, computed from its
// winding order at construction.
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// RelativeLocationToPlane returns the signed distance of p from the
// plane this triangle's normal supports, used to skip light-sampling a
// triangle whose emitting side faces away from the shading point.
func (t *Triangle) RelativeLocationToPlane(p core.Vec3) float64 {
	return t.normal.Dot(p.Subtract(t.V0))
}
