package core

import (
	"math"
	"testing"
)

func TestVec3_Dot(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)
	if got := a.Dot(b); got != 1*4+2*-5+3*6 {
		t.Errorf("Dot() = %v, want %v", got, 1*4+2*-5+3*6)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	got := x.Cross(y)
	want := NewVec3(0, 0, 1)
	if got != want {
		t.Errorf("Cross() = %v, want %v", got, want)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	got := v.Normalize()
	if math.Abs(got.Length()-1.0) > 1e-9 {
		t.Errorf("Normalize() length = %v, want 1", got.Length())
	}
}

func TestVec3_Normalize_Zero(t *testing.T) {
	got := NewVec3(0, 0, 0).Normalize()
	if got != (Vec3{0, 0, 0}) {
		t.Errorf("Normalize() of zero vector = %v, want zero", got)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want bool
	}{
		{"finite", NewVec3(1, 2, 3), true},
		{"nan", NewVec3(math.NaN(), 0, 0), false},
		{"inf", NewVec3(math.Inf(1), 0, 0), false},
		{"negative", NewVec3(-1, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3_Luminance(t *testing.T) {
	white := NewVec3(1, 1, 1)
	if got := white.Luminance(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
	black := NewVec3(0, 0, 0)
	if got := black.Luminance(); got != 0 {
		t.Errorf("Luminance(black) = %v, want 0", got)
	}
}

func TestSampleTriangleUniform_InTriangle(t *testing.T) {
	for _, s := range []Vec2{{0, 0}, {0.3, 0.7}, {1, 1}, {0.99, 0.01}} {
		u, v := SampleTriangleUniform(s)
		if u < -1e-9 || v < -1e-9 || u+v > 1+1e-9 {
			t.Errorf("SampleTriangleUniform(%v) = (%v, %v), not inside triangle", s, u, v)
		}
	}
}
