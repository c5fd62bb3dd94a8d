package geometry

import (
	"math"

	"github.com/kjhall/pathlight/pkg/core"
	"github.com/kjhall/pathlight/pkg/material"
)

// TriangleMesh is a collection of triangles sharing a BVH for fast
// ray intersection.
type TriangleMesh struct {
	triangles []*Triangle
	bvh       *BVH
	bbox      AABB
}

// TriangleMeshOptions holds optional parameters for mesh construction.
type TriangleMeshOptions struct {
	Normals   []core.Vec3         // one custom normal per triangle, if set
	Materials []material.Material // one material per triangle, if set
	Rotation  *core.Vec3          // rotation (radians) applied about Center
	Center    *core.Vec3
}

// NewTriangleMesh builds a mesh from vertices and face indices (each
// run of three indices is one triangle). startID is assigned to the
// first triangle and each subsequent triangle gets the next integer,
// so callers can keep a contiguous global ID space across meshes.
func NewTriangleMesh(vertices []core.Vec3, faces []int, defaultMaterial material.Material, startID int, options *TriangleMeshOptions) *TriangleMesh {
	if len(faces)%3 != 0 {
		panic("face indices must be a multiple of 3")
	}
	numTriangles := len(faces) / 3

	if options != nil {
		if options.Normals != nil && len(options.Normals) != numTriangles {
			panic("number of normals must match number of triangles")
		}
		if options.Materials != nil && len(options.Materials) != numTriangles {
			panic("number of materials must match number of triangles")
		}
	}

	workingVertices := vertices
	if options != nil && options.Rotation != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = rotateVertex(vertex, *options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
			workingVertices[i] = vertex
		}
	}

	triangles := make([]*Triangle, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 >= len(workingVertices) || i1 >= len(workingVertices) || i2 >= len(workingVertices) ||
			i0 < 0 || i1 < 0 || i2 < 0 {
			panic("face index out of bounds")
		}

		triMaterial := defaultMaterial
		if options != nil && options.Materials != nil {
			triMaterial = options.Materials[i]
		}

		tri := NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], triMaterial, startID+i)
		if options != nil && options.Normals != nil {
			tri.normal = options.Normals[i].Normalize()
		}
		triangles[i] = tri
	}

	var bbox AABB
	if len(triangles) > 0 {
		bbox = triangles[0].BoundingBox()
		for _, tri := range triangles[1:] {
			bbox = bbox.Union(tri.BoundingBox())
		}
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
		bbox:      bbox,
	}
}

// Hit tests the ray against the mesh's BVH.
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the mesh's overall axis-aligned bounding box.
func (tm *TriangleMesh) BoundingBox() AABB {
	return tm.bbox
}

// Triangles returns the mesh's individual triangles, used by the scene
// to enumerate emissive geometry for light sampling.
func (tm *TriangleMesh) Triangles() []*Triangle {
	return tm.triangles
}

// rotateVertex applies rotation around X, Y, Z axes in that order.
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVec3(vertex.X, y, z)
	}
	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVec3(x, vertex.Y, z)
	}
	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVec3(x, y, vertex.Z)
	}
	return vertex
}
