package geometry

import "github.com/BlockOG/ray-tracing/pkg/core"

// Shape interface for primitives that can be hit by rays.
// The set is closed: only *Sphere and *Triangle implement it.
type Shape interface {
	core.Intersector
	BoundingBox() core.AABB
	primitive()
}
