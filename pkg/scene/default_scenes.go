package scene

import (
	"github.com/kjhall/pathlight/pkg/camera"
	"github.com/kjhall/pathlight/pkg/core"
	"github.com/kjhall/pathlight/pkg/geometry"
	"github.com/kjhall/pathlight/pkg/material"
	"github.com/kjhall/pathlight/pkg/volume"
)

// quad appends two triangles spanning corner, corner+u, and
// corner+u+v, corner+v, the same corner/u/v convention the original
// quad-light helpers used, generalized to the triangle-only geometry
// this engine works with.
func quad(vertices []core.Vec3, faces []int, corner, u, v core.Vec3) ([]core.Vec3, []int) {
	base := len(vertices)
	vertices = append(vertices,
		corner,
		corner.Add(u),
		corner.Add(u).Add(v),
		corner.Add(v),
	)
	faces = append(faces, base, base+1, base+2, base, base+2, base+3)
	return vertices, faces
}

func defaultCamera(center, lookAt core.Vec3, aspectRatio float64) core.Camera {
	return camera.New(camera.Config{
		Center:      center,
		LookAt:      lookAt,
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: aspectRatio,
	})
}

// NewEmptyScene is a scene whose only geometry is one placeholder
// triangle far below the camera's view, plus a valid camera, used to
// exercise miss handling: every primary ray escapes to the background.
func NewEmptyScene(width, height int) *Scene {
	vertices := []core.Vec3{core.NewVec3(0, -1e6, 0), core.NewVec3(1, -1e6, 0), core.NewVec3(0, -1e6, 1)}
	faces := []int{0, 1, 2}
	mesh := geometry.NewTriangleMesh(vertices, faces, material.NewLambertian(core.Vec3{}), 0, nil)
	geo := geometry.NewSceneGeometry(mesh)
	cam := defaultCamera(core.NewVec3(0, 2, -10), core.NewVec3(0, 0, 100), float64(width)/float64(height))
	return New(geo, cam, nil, width, height)
}

// NewSingleLightScene is a diffuse quad floor lit by a single emissive
// quad overhead, the minimal scene that exercises next-event estimation
// and MIS against one light.
func NewSingleLightScene(width, height int) *Scene {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	lightEmission := material.NewEmissive(core.NewVec3(15, 15, 15))

	var vertices []core.Vec3
	var faces []int
	vertices, faces = quad(vertices, faces, core.NewVec3(-5, 0, -5), core.NewVec3(10, 0, 0), core.NewVec3(0, 0, 10))
	floor := geometry.NewTriangleMesh(vertices, faces, white, 0, nil)

	var lightVertices []core.Vec3
	var lightFaces []int
	lightVertices, lightFaces = quad(lightVertices, lightFaces, core.NewVec3(-1, 5, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2))
	light := geometry.NewTriangleMesh(lightVertices, lightFaces, lightEmission, len(faces)/3, nil)

	geo := geometry.NewSceneGeometry(floor, light)
	cam := defaultCamera(core.NewVec3(0, 3, -8), core.NewVec3(0, 1, 0), float64(width)/float64(height))
	return New(geo, cam, nil, width, height)
}

// NewEmissiveMeshScene places a small emissive mesh directly in the
// camera's view with nothing else in the scene, so a renderer configured
// with max_path_length=1 sees only direct emission and no indirect
// light contribution.
func NewEmissiveMeshScene(width, height int) *Scene {
	emission := material.NewEmissive(core.NewVec3(8, 6, 4))
	vertices := []core.Vec3{
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	}
	faces := []int{0, 2, 1} // wound so the emitting front face points at the camera (-z)
	mesh := geometry.NewTriangleMesh(vertices, faces, emission, 0, nil)
	geo := geometry.NewSceneGeometry(mesh)
	cam := defaultCamera(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 0), float64(width)/float64(height))
	return New(geo, cam, nil, width, height)
}

// NewMirrorScene places a delta mirror between the camera and an
// emissive quad that faces the mirror, so the mirror blocks the
// camera's direct view of the light. The floor behind the mirror still
// sees the light directly through next-event estimation.
func NewMirrorScene(width, height int) *Scene {
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	lightEmission := material.NewEmissive(core.NewVec3(20, 20, 20))
	floorMat := material.NewLambertian(core.NewVec3(0.6, 0.6, 0.6))

	var vertices []core.Vec3
	var faces []int
	vertices, faces = quad(vertices, faces, core.NewVec3(-5, 0, -5), core.NewVec3(10, 0, 0), core.NewVec3(0, 0, 10))
	floor := geometry.NewTriangleMesh(vertices, faces, floorMat, 0, nil)

	mirrorVertices := []core.Vec3{
		core.NewVec3(-2, 0, 2),
		core.NewVec3(2, 0, 2),
		core.NewVec3(2, 4, 2),
		core.NewVec3(-2, 4, 2),
	}
	mirrorFaces := []int{0, 1, 2, 0, 2, 3}
	mirrorMesh := geometry.NewTriangleMesh(mirrorVertices, mirrorFaces, mirror, len(faces)/3, nil)

	var lightVertices []core.Vec3
	var lightFaces []int
	lightVertices, lightFaces = quad(lightVertices, lightFaces, core.NewVec3(-1, 3, 6), core.NewVec3(0, 2, 0), core.NewVec3(2, 0, 0))
	light := geometry.NewTriangleMesh(lightVertices, lightFaces, lightEmission, len(faces)/3+len(mirrorFaces)/3, nil)

	geo := geometry.NewSceneGeometry(floor, mirrorMesh, light)
	cam := defaultCamera(core.NewVec3(0, 2, -6), core.NewVec3(0, 2, 2), float64(width)/float64(height))
	return New(geo, cam, nil, width, height)
}

// NewMediumCorridorScene is a lit corridor filled with a homogeneous
// absorbing-and-scattering medium, exercising free-flight sampling,
// in-scattering, and Beer-Lambert attenuation. The medium is the
// scene's global atmosphere, so it fills all space and has no bounding
// geometry.
func NewMediumCorridorScene(width, height int) *Scene {
	white := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	lightEmission := material.NewEmissive(core.NewVec3(30, 30, 30))

	var vertices []core.Vec3
	var faces []int
	vertices, faces = quad(vertices, faces, core.NewVec3(-3, 0, 0), core.NewVec3(6, 0, 0), core.NewVec3(0, 0, 40))
	floor := geometry.NewTriangleMesh(vertices, faces, white, 0, nil)

	var lightVertices []core.Vec3
	var lightFaces []int
	lightVertices, lightFaces = quad(lightVertices, lightFaces, core.NewVec3(-1, 0.01, 38), core.NewVec3(0, 0, 2), core.NewVec3(2, 0, 0))
	light := geometry.NewTriangleMesh(lightVertices, lightFaces, lightEmission, len(faces)/3, nil)

	geo := geometry.NewSceneGeometry(floor, light)
	fog := volume.NewHomogeneous(core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(0.1, 0.1, 0.1))
	cam := defaultCamera(core.NewVec3(0, 1, -5), core.NewVec3(0, 1, 35), float64(width)/float64(height))
	return New(geo, cam, fog, width, height)
}
