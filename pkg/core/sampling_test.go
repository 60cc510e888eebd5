package core

import (
	"math/rand"
	"testing"
)

// sequenceSampler replays a fixed list of values
type sequenceSampler struct {
	values []float32
	next   int
}

func (s *sequenceSampler) Get1D() float32 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestRandomSampler_Get1DRange(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 10000; i++ {
		v := sampler.Get1D()
		if v < 0 || v >= 1 {
			t.Fatalf("Get1D returned %f, outside [0, 1)", v)
		}
	}
}

func TestRandomSampler_UnitVectorLength(t *testing.T) {
	sampler := NewSeededSampler(7)

	var sum Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		v := sampler.UnitVector()
		if l := v.Length(); Abs(l-1) > 1e-5 {
			t.Fatalf("Unit vector %v has length %f", v, l)
		}
		sum = sum.Add(v)
	}

	// Uniform directions should average out close to the origin
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Mean direction %v is too far from zero", mean)
	}
}

func TestSampleUnitVector_Rejection(t *testing.T) {
	// First triple maps to (0.9, 0.9, 0.9), outside the ball and rejected.
	// Second maps to (0.5, 0, 0), accepted and normalized to +X.
	sampler := &sequenceSampler{values: []float32{0.95, 0.95, 0.95, 0.75, 0.5, 0.5}}

	got := SampleUnitVector(sampler)
	if got != NewVec3(1, 0, 0) {
		t.Errorf("Expected +X after one rejection, got %v", got)
	}
	if sampler.next != 6 {
		t.Errorf("Expected 6 draws, got %d", sampler.next)
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)

	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Samplers with the same seed diverged")
		}
		if a.UnitVector() != b.UnitVector() {
			t.Fatal("Unit vectors with the same seed diverged")
		}
	}
}
