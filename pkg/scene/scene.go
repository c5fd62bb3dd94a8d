package scene

import (
	"fmt"

	"github.com/kjhall/pathlight/pkg/core"
	"github.com/kjhall/pathlight/pkg/geometry"
	"github.com/kjhall/pathlight/pkg/material"
)

// Scene aggregates the read-only collaborators a renderer needs: the
// acceleration structure, the camera, and an optional participating
// medium filling the space outside any mesh's interior.
type Scene struct {
	Geometry   *geometry.SceneGeometry
	Camera     core.Camera
	Atmosphere core.Volume // nil for vacuum
	Width      int
	Height     int

	emissive []*geometry.Triangle
}

// New builds a scene. Call Preprocess before rendering.
func New(geo *geometry.SceneGeometry, cam core.Camera, atmosphere core.Volume, width, height int) *Scene {
	return &Scene{Geometry: geo, Camera: cam, Atmosphere: atmosphere, Width: width, Height: height}
}

// Preprocess validates the scene and caches its emissive-triangle list.
// It must run once before render_stage and reports configuration
// errors the renderer should treat as fatal.
func (s *Scene) Preprocess() error {
	if s.Camera == nil {
		return fmt.Errorf("scene: no camera configured")
	}
	if s.Geometry == nil {
		return fmt.Errorf("scene: no geometry configured")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("scene: invalid resolution %dx%d", s.Width, s.Height)
	}
	s.emissive = s.Geometry.EmissiveTriangles()
	return nil
}

// Query intersects ray against the scene's geometry, delegating to the
// acceleration structure so the integrator never touches geometry
// package types directly.
func (s *Scene) Query(ray core.Ray) core.IntersectionInfo {
	return s.Geometry.Query(ray)
}

// EmissiveTriangles returns every emissive triangle in the scene,
// cached by Preprocess.
func (s *Scene) EmissiveTriangles() []*geometry.Triangle {
	return s.emissive
}

// SampleTriangleLightEmission picks one emissive triangle uniformly at
// random using u ∈ [0,1), returning the triangle and the discrete pdf
// of having picked it. Returns (nil, 0) if the scene has no emitters.
func (s *Scene) SampleTriangleLightEmission(u float64) (*geometry.Triangle, float64) {
	n := len(s.emissive)
	if n == 0 {
		return nil, 0
	}
	idx := int(u * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return s.emissive[idx], 1.0 / float64(n)
}

// BSDFAt resolves an intersection back to the BSDF of the triangle it
// hit, the Go equivalent of the original engine's BSDF(scene, &info)
// constructor.
func (s *Scene) BSDFAt(info core.IntersectionInfo) material.BSDF {
	tri := s.Geometry.TriangleByID(info.TriangleID)
	if tri == nil {
		return nil
	}
	return tri.Material.AtHit(info.Normal, info.Pos)
}

// TriangleByID resolves a triangle ID (as reported in IntersectionInfo)
// back to its Triangle.
func (s *Scene) TriangleByID(id int) *geometry.Triangle {
	return s.Geometry.TriangleByID(id)
}
