package geometry

import (
	"github.com/BlockOG/ray-tracing/pkg/core"
)

// Triangle represents a single-sided triangle with per-vertex normals
type Triangle struct {
	A, B, C    core.Vec3 // Vertices
	NA, NB, NC core.Vec3 // Vertex normals, interpolated for smooth shading
	Material   core.Material
}

// NewTriangle creates a triangle with explicit vertex normals
func NewTriangle(a, b, c, na, nb, nc core.Vec3, material core.Material) *Triangle {
	return &Triangle{
		A: a, B: b, C: c,
		NA: na, NB: nb, NC: nc,
		Material: material,
	}
}

// NewFlatTriangle creates a triangle whose vertex normals all equal the face normal
func NewFlatTriangle(a, b, c core.Vec3, material core.Material) *Triangle {
	n := b.Subtract(a).Cross(c.Subtract(a)).Normalize()
	return NewTriangle(a, b, c, n, n, n, material)
}

func (t *Triangle) primitive() {}

// FaceNormal returns the unnormalized geometric normal (B-A)×(C-A).
// Rays arriving against this normal are the ones that can hit.
func (t *Triangle) FaceNormal() core.Vec3 {
	return t.B.Subtract(t.A).Cross(t.C.Subtract(t.A))
}

// Intersect tests ray intersection using a Möller–Trumbore style formulation.
// Back faces and near-grazing rays are culled.
func (t *Triangle) Intersect(ray core.Ray) (core.HitInfo, bool) {
	edgeAB := t.B.Subtract(t.A)
	edgeAC := t.C.Subtract(t.A)
	normal := edgeAB.Cross(edgeAC)
	ao := ray.Origin.Subtract(t.A)
	dao := ao.Cross(ray.Direction)

	determinant := -ray.Direction.Dot(normal)
	if determinant < core.Epsilon {
		return core.HitInfo{}, false
	}
	invDeterminant := 1 / determinant

	distance := ao.Dot(normal) * invDeterminant
	u := edgeAC.Dot(dao) * invDeterminant
	v := -edgeAB.Dot(dao) * invDeterminant
	w := 1 - u - v
	if distance < 0 || u < 0 || v < 0 || w < 0 {
		return core.HitInfo{}, false
	}

	return core.HitInfo{
		Distance: distance,
		Position: ray.At(distance),
		Normal:   t.NA.Multiply(w).Add(t.NB.Multiply(u)).Add(t.NC.Multiply(v)).Normalize(),
		Material: t.Material,
	}, true
}

// Barycentric returns the weights (u, v, w) of point p with respect to B, C and A,
// so that p = A*w + B*u + C*v for points in the triangle's plane.
func (t *Triangle) Barycentric(p core.Vec3) (u, v, w float32) {
	edgeAB := t.B.Subtract(t.A)
	edgeAC := t.C.Subtract(t.A)
	ap := p.Subtract(t.A)

	d00 := edgeAB.Dot(edgeAB)
	d01 := edgeAB.Dot(edgeAC)
	d11 := edgeAC.Dot(edgeAC)
	d20 := ap.Dot(edgeAB)
	d21 := ap.Dot(edgeAC)
	denominator := d00*d11 - d01*d01

	u = (d11*d20 - d01*d21) / denominator
	v = (d00*d21 - d01*d20) / denominator
	return u, v, 1 - u - v
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.A, t.B, t.C)
}
