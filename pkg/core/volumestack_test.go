package core

import "testing"

type fakeVolume struct{}

func (fakeVolume) SampleFreeDistance(ray Ray, sampler Sampler) float64 { return 0 }
func (fakeVolume) SampleEvent(sampler Sampler) VolumeEvent             { return VolumeAbsorption }
func (fakeVolume) SamplePhase(out Vec3, sampler Sampler) Vec3          { return Vec3{} }
func (fakeVolume) GetAttenuation(dist float64) Vec3                   { return NewVec3(1, 1, 1) }

func TestVolumeStack_NilAtmosphereIsVacuum(t *testing.T) {
	vs := NewVolumeStack(nil)
	if vs.Top() != nil {
		t.Error("expected a nil top for a vacuum stack")
	}
}

func TestVolumeStack_SeededWithAtmosphere(t *testing.T) {
	atmosphere := fakeVolume{}
	vs := NewVolumeStack(atmosphere)
	if vs.Top() != atmosphere {
		t.Error("expected Top() to return the seeded atmosphere")
	}
}

func TestVolumeStack_PushPop(t *testing.T) {
	vs := NewVolumeStack(nil)
	inner := fakeVolume{}
	vs.Push(inner)
	if vs.Top() != inner {
		t.Error("expected Top() to return the pushed volume")
	}
	vs.Pop()
	if vs.Top() != nil {
		t.Error("expected Top() to return nil after popping back to vacuum")
	}
}

func TestVolumeStack_PopOnEmptyIsNoOp(t *testing.T) {
	vs := NewVolumeStack(nil)
	vs.Pop()
	if vs.Top() != nil {
		t.Error("popping an empty stack should remain empty")
	}
}
