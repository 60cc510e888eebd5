package integrator

import (
	"github.com/BlockOG/ray-tracing/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace estimates the radiance arriving along ray.
	// The sampler is owned by the caller's task.
	Trace(scene core.Intersector, ray core.Ray, sampler core.Sampler) core.Vec3
}
