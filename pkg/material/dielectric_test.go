package material

import (
	"testing"

	"github.com/kjhall/pathlight/pkg/core"
)

func TestDielectric_NormalIncidenceRefractsStraightThrough(t *testing.T) {
	d := NewDielectric(1.5)
	normal := core.NewVec3(0, 1, 0)
	bsdf := d.AtHit(normal, core.Vec3{})

	out := core.NewVec3(0, 1, 0) // viewer directly above, ray came straight down
	dir, f, pdf, delta := bsdf.Sample(out, 1.0, 0) // u1=1 forces refraction over Schlick reflectance
	if !delta {
		t.Error("Dielectric.Sample reported delta=false")
	}
	if pdf != 1.0 {
		t.Errorf("pdf = %v, want 1", pdf)
	}
	if f != (core.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("f = %v, want (1,1,1)", f)
	}
	if dir.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-9 {
		t.Errorf("normal-incidence refraction direction = %v, want straight through", dir)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	d := NewDielectric(1.5)
	normal := core.NewVec3(0, 1, 0)
	bsdf := d.AtHit(normal, core.Vec3{})

	// Grazing angle from inside the medium (out points below the surface):
	// cannotRefract forces reflection, which keeps the direction inside.
	// u1=1 rules out a Schlick-chosen reflection.
	out := core.NewVec3(0.99, -0.01, 0).Normalize()
	dir, _, _, delta := bsdf.Sample(out, 1.0, 0)
	if !delta {
		t.Error("Dielectric.Sample reported delta=false")
	}
	if dir.Y >= 0 {
		t.Errorf("total internal reflection should stay inside the medium (y < 0), got %v", dir)
	}
}
