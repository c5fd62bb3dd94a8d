package integrator

import (
	"math/rand"
	"testing"

	"github.com/kjhall/pathlight/pkg/core"
	"github.com/kjhall/pathlight/pkg/geometry"
	"github.com/kjhall/pathlight/pkg/material"
)

// fakeScene is a minimal sceneQuery: Query replays a fixed sequence of
// intersections (one per call, then a miss for any further calls),
// and BSDFAt/EmissiveTriangles/SampleTriangleLightEmission are wired to
// constant, test-controlled values.
type fakeScene struct {
	hits      []core.IntersectionInfo
	call      int
	materials map[int]material.BSDF
	emissive  []*geometry.Triangle
}

func (f *fakeScene) Query(ray core.Ray) core.IntersectionInfo {
	if f.call >= len(f.hits) {
		return core.IntersectionInfo{Intersected: false}
	}
	info := f.hits[f.call]
	f.call++
	return info
}

func (f *fakeScene) BSDFAt(info core.IntersectionInfo) material.BSDF {
	return f.materials[info.TriangleID]
}

func (f *fakeScene) EmissiveTriangles() []*geometry.Triangle { return f.emissive }

func (f *fakeScene) SampleTriangleLightEmission(u float64) (*geometry.Triangle, float64) {
	if len(f.emissive) == 0 {
		return nil, 0
	}
	return f.emissive[0], 1.0 / float64(len(f.emissive))
}

func newSampler(seed int64) core.Sampler {
	return core.NewIndependentSampler(seed)
}

func TestPathIntegrator_PrimaryRayHitsEmissiveReturnsEmission(t *testing.T) {
	emission := core.NewVec3(5, 4, 3)
	scene := &fakeScene{
		hits: []core.IntersectionInfo{
			{Intersected: true, Front: true, TriangleID: 0, Normal: core.NewVec3(0, 0, -1), Pos: core.NewVec3(0, 0, 1), Dist: 1},
		},
		materials: map[int]material.BSDF{0: material.NewEmissive(emission).AtHit(core.Vec3{}, core.Vec3{})},
	}
	pi := &PathIntegrator{
		Scene:  scene,
		Direct: &DirectLightingEstimator{Scene: scene, BSDFSamples: 1, LightSamples: 1},
		Config: Config{DirectLighting: true, RussianRoulette: false, MinPathLength: 1, MaxPathLength: 5},
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	result := pi.Trace(ray, nil, newSampler(1))

	if result.Subtract(emission).Length() > 1e-9 {
		t.Errorf("Trace() = %v, want %v", result, emission)
	}
}

func TestPathIntegrator_BackFaceEmissiveContributesNothing(t *testing.T) {
	emission := core.NewVec3(5, 4, 3)
	scene := &fakeScene{
		hits: []core.IntersectionInfo{
			{Intersected: true, Front: false, TriangleID: 0, Normal: core.NewVec3(0, 0, 1), Pos: core.NewVec3(0, 0, 1), Dist: 1},
		},
		materials: map[int]material.BSDF{0: material.NewEmissive(emission).AtHit(core.Vec3{}, core.Vec3{})},
	}
	pi := &PathIntegrator{
		Scene:  scene,
		Direct: &DirectLightingEstimator{Scene: scene, BSDFSamples: 1, LightSamples: 1},
		Config: Config{DirectLighting: true, RussianRoulette: false, MinPathLength: 1, MaxPathLength: 5},
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	result := pi.Trace(ray, nil, newSampler(1))

	if result.Length() > 1e-12 {
		t.Errorf("Trace() = %v, want zero contribution from a back-facing emissive hit", result)
	}
}

func TestPathIntegrator_MissReturnsZero(t *testing.T) {
	scene := &fakeScene{hits: nil}
	pi := &PathIntegrator{
		Scene:  scene,
		Direct: &DirectLightingEstimator{Scene: scene, BSDFSamples: 1, LightSamples: 1},
		Config: Config{DirectLighting: true, RussianRoulette: false, MinPathLength: 1, MaxPathLength: 5},
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	result := pi.Trace(ray, nil, newSampler(1))
	if result.Length() != 0 {
		t.Errorf("Trace() on a scene with no geometry should return zero, got %v", result)
	}
}

func TestPathIntegrator_MaxPathLengthOneSkipsDirectLightingAtDepth2(t *testing.T) {
	lambert := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	normal := core.NewVec3(0, 1, 0)
	scene := &fakeScene{
		hits: []core.IntersectionInfo{
			{Intersected: true, Front: true, TriangleID: 0, Normal: normal, Pos: core.NewVec3(0, 0, 1), Dist: 1},
		},
		materials: map[int]material.BSDF{0: lambert.AtHit(normal, core.Vec3{})},
	}
	pi := &PathIntegrator{
		Scene:  scene,
		Direct: &DirectLightingEstimator{Scene: scene, BSDFSamples: 1, LightSamples: 1},
		Config: Config{DirectLighting: true, RussianRoulette: false, MinPathLength: 1, MaxPathLength: 1},
	}
	ray := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))
	result := pi.Trace(ray, nil, newSampler(2))
	if result.Length() != 0 {
		t.Errorf("direct lighting at depth+1=2 should be skipped when max_path_length=1, got %v", result)
	}
}

func TestPathIntegrator_RussianRouletteTerminatesLowThroughputPaths(t *testing.T) {
	lambert := material.NewLambertian(core.NewVec3(0.01, 0.01, 0.01))
	normal := core.NewVec3(0, 1, 0)
	scene := &fakeScene{
		hits: []core.IntersectionInfo{
			{Intersected: true, Front: true, TriangleID: 0, Normal: normal, Pos: core.NewVec3(0, 0, 0), Dist: 1},
			{Intersected: true, Front: true, TriangleID: 0, Normal: normal, Pos: core.NewVec3(0, 0, 1), Dist: 1},
			{Intersected: true, Front: true, TriangleID: 0, Normal: normal, Pos: core.NewVec3(0, 0, 2), Dist: 1},
		},
		materials: map[int]material.BSDF{0: lambert.AtHit(normal, core.Vec3{})},
	}
	pi := &PathIntegrator{
		Scene:  scene,
		Direct: &DirectLightingEstimator{Scene: scene, BSDFSamples: 1, LightSamples: 1},
		Config: Config{DirectLighting: false, RussianRoulette: true, MinPathLength: 1, MaxPathLength: 50},
	}
	ray := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))

	rng := rand.New(rand.NewSource(3))
	sampler := &replaySampler{rng: rng}
	result := pi.Trace(ray, nil, sampler)
	if result.Length() < 0 {
		t.Error("result should never go negative")
	}
	// Without Russian roulette the walk would use all three scripted hits
	// and then a miss (4 queries).
	if scene.call >= len(scene.hits) {
		t.Errorf("expected Russian roulette to end the path before all %d scripted hits were used, got %d queries", len(scene.hits), scene.call)
	}
}

type replaySampler struct{ rng *rand.Rand }

func (s *replaySampler) Next() float64    { return s.rng.Float64() }
func (s *replaySampler) Get2D() core.Vec2 { return core.NewVec2(s.Next(), s.Next()) }
