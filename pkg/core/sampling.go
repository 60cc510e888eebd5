package core

import "math/rand"

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing or different sampling patterns.
// A Sampler is owned by a single task and is not safe for concurrent use.
type Sampler interface {
	Get1D() float32   // Uniform value in [0, 1)
	UnitVector() Vec3 // Uniformly distributed direction on the unit sphere
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic stream
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float32 in [0, 1)
func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

// UnitVector returns a random unit vector using rejection sampling
func (r *RandomSampler) UnitVector() Vec3 {
	return SampleUnitVector(r)
}

// SampleUnitVector draws points in the cube [-1, 1)³ from sampler until one lies
// inside the unit ball, then normalizes it.
func SampleUnitVector(sampler interface{ Get1D() float32 }) Vec3 {
	p := Splat(1)
	for p.LengthSquared() > 1 {
		p = NewVec3(
			2*sampler.Get1D()-1,
			2*sampler.Get1D()-1,
			2*sampler.Get1D()-1,
		)
	}
	return p.Normalize()
}
