package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Intersector resolves the nearest hit along a ray.
// Implemented by individual shapes, the scene and acceleration structures.
type Intersector interface {
	Intersect(ray Ray) (HitInfo, bool)
}
