package geometry

import (
	"testing"

	"github.com/kjhall/pathlight/pkg/core"
	"github.com/kjhall/pathlight/pkg/material"
)

func TestSceneGeometry_QueryFindsNearestAcrossMeshes(t *testing.T) {
	lambert := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	near := NewTriangleMesh(
		[]core.Vec3{core.NewVec3(-1, -1, 1), core.NewVec3(1, -1, 1), core.NewVec3(0, 1, 1)},
		[]int{0, 1, 2}, lambert, 0, nil,
	)
	far := NewTriangleMesh(
		[]core.Vec3{core.NewVec3(-1, -1, 5), core.NewVec3(1, -1, 5), core.NewVec3(0, 1, 5)},
		[]int{0, 1, 2}, lambert, 10, nil,
	)

	sg := NewSceneGeometry(near, far)

	ray := core.NewRay(core.NewVec3(0, -0.5, -5), core.NewVec3(0, 0, 1))
	info := sg.Query(ray)

	if !info.Intersected {
		t.Fatal("expected an intersection")
	}
	if info.TriangleID != 0 {
		t.Errorf("TriangleID = %d, want 0 (nearest mesh)", info.TriangleID)
	}
}

func TestSceneGeometry_QueryMissReportsNotIntersected(t *testing.T) {
	lambert := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	mesh := NewTriangleMesh(
		[]core.Vec3{core.NewVec3(-1, -1, 1), core.NewVec3(1, -1, 1), core.NewVec3(0, 1, 1)},
		[]int{0, 1, 2}, lambert, 0, nil,
	)
	sg := NewSceneGeometry(mesh)

	ray := core.NewRay(core.NewVec3(100, 100, -5), core.NewVec3(0, 0, 1))
	info := sg.Query(ray)
	if info.Intersected {
		t.Error("expected no intersection far from geometry")
	}
}

func TestSceneGeometry_EmissiveTrianglesFindsOnlyEmitters(t *testing.T) {
	lambert := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	emissive := material.NewEmissive(core.NewVec3(5, 5, 5))

	mesh := NewTriangleMesh(
		[]core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
			core.NewVec3(2, 0, 0), core.NewVec3(3, 0, 0), core.NewVec3(2, 1, 0)},
		[]int{0, 1, 2, 3, 4, 5},
		lambert, 0,
		&TriangleMeshOptions{Materials: []material.Material{lambert, emissive}},
	)
	sg := NewSceneGeometry(mesh)

	lights := sg.EmissiveTriangles()
	if len(lights) != 1 {
		t.Fatalf("expected 1 emissive triangle, got %d", len(lights))
	}
	if lights[0].ID != 1 {
		t.Errorf("emissive triangle ID = %d, want 1", lights[0].ID)
	}
}

func TestSceneGeometry_TriangleByID(t *testing.T) {
	lambert := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	mesh := NewTriangleMesh(
		[]core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		[]int{0, 1, 2}, lambert, 7, nil,
	)
	sg := NewSceneGeometry(mesh)

	if tri := sg.TriangleByID(7); tri == nil {
		t.Error("expected to find triangle with ID 7")
	}
	if tri := sg.TriangleByID(99); tri != nil {
		t.Error("expected nil for unknown ID")
	}
}
