package geometry

import (
	"github.com/BlockOG/ray-tracing/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float32
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

func (s *Sphere) primitive() {}

// Intersect tests if a ray hits the sphere from outside.
// The ray direction must be normalized. Only the near root is considered,
// so a ray starting inside the sphere reports no hit.
func (s *Sphere) Intersect(ray core.Ray) (core.HitInfo, bool) {
	// Solve in the sphere's local frame
	origin := ray.Origin.Subtract(s.Center)

	const a = 1
	b := 2 * origin.Dot(ray.Direction)
	c := origin.Dot(origin) - s.Radius*s.Radius
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return core.HitInfo{}, false
	}

	distance := (-b - core.Sqrt(discriminant)) / (2 * a)
	if distance < 0 {
		return core.HitInfo{}, false
	}

	position := ray.At(distance)
	return core.HitInfo{
		Distance: distance,
		Position: position,
		Normal:   position.Subtract(s.Center).Normalize(),
		Material: s.Material,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.Splat(s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
