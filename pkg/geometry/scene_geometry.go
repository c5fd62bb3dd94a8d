package geometry

import "github.com/kjhall/pathlight/pkg/core"

// SceneGeometry aggregates one or more triangle meshes behind a single
// BVH and implements core.SceneGeometry.Query, translating the package's
// own HitRecord into the core's IntersectionInfo.
type SceneGeometry struct {
	meshes []*TriangleMesh
	bvh    *BVH
	bbox   AABB
	byID   map[int]*Triangle
}

// NewSceneGeometry flattens every mesh's triangles into one BVH so a
// single ray query finds the globally closest intersection across
// meshes, not just the closest per mesh.
func NewSceneGeometry(meshes ...*TriangleMesh) *SceneGeometry {
	var all []*Triangle
	var bbox AABB
	byID := make(map[int]*Triangle)
	for i, m := range meshes {
		for _, tri := range m.Triangles() {
			all = append(all, tri)
			byID[tri.ID] = tri
		}
		if i == 0 {
			bbox = m.BoundingBox()
		} else {
			bbox = bbox.Union(m.BoundingBox())
		}
	}
	return &SceneGeometry{
		meshes: meshes,
		bvh:    NewBVH(all),
		bbox:   bbox,
		byID:   byID,
	}
}

// Query implements core.SceneGeometry.
func (sg *SceneGeometry) Query(ray core.Ray) core.IntersectionInfo {
	hit, ok := sg.bvh.Hit(ray, ray.TMin, 1e8)
	if !ok {
		return core.IntersectionInfo{Intersected: false}
	}
	return core.IntersectionInfo{
		Intersected: true,
		Front:       hit.Front,
		Pos:         hit.Point,
		Normal:      hit.Normal,
		Dist:        hit.T,
		TriangleID:  hit.Triangle.ID,
	}
}

// EmissiveTriangles returns every triangle across all meshes whose
// material is emissive, used by the scene to build its light list.
func (sg *SceneGeometry) EmissiveTriangles() []*Triangle {
	var emissive []*Triangle
	for _, m := range sg.meshes {
		for _, tri := range m.Triangles() {
			bsdf := tri.Material.AtHit(tri.normal, tri.V0)
			if bsdf.IsEmissive() {
				emissive = append(emissive, tri)
			}
		}
	}
	return emissive
}

// TriangleByID returns the triangle with the given global ID, or nil
// if none matches. Used to resolve a hit's TriangleID back to the
// triangle's BSDF and surface data.
func (sg *SceneGeometry) TriangleByID(id int) *Triangle {
	return sg.byID[id]
}

// BoundingBox returns the overall bounding box across all meshes.
func (sg *SceneGeometry) BoundingBox() AABB {
	return sg.bbox
}
