package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/BlockOG/ray-tracing/pkg/core"
	"github.com/BlockOG/ray-tracing/pkg/geometry"
)

// NewCornellScene creates a 2x2x2 box of coloured walls around the origin, lit by an
// emissive patch just below the ceiling, with a diagonal row of six spheres whose
// smoothness increases from 0 to 1.
func NewCornellScene() *Scene {
	camera := geometry.NewCamera(90, core.NewVec3(0, 0, -2), mgl32.QuatIdent())
	s := NewScene(camera)

	s.AddShapes(cornellBox()...)

	// Ceiling light, the second half reflects specularly
	light := core.NewEmissive(core.Splat(1), 1)
	specularLight := light
	specularLight.SpecularProbability = 1
	down := core.NewVec3(0, -1, 0)
	s.AddShapes(
		geometry.NewTriangle(
			core.NewVec3(-0.5, 0.99, 0.5), core.NewVec3(-0.5, 0.99, -0.5), core.NewVec3(0.5, 0.99, 0.5),
			down, down, down, light),
		geometry.NewTriangle(
			core.NewVec3(0.5, 0.99, -0.5), core.NewVec3(0.5, 0.99, 0.5), core.NewVec3(-0.5, 0.99, -0.5),
			down, down, down, specularLight),
	)

	// Spheres along the diagonal, from rough to mirror
	for i := 0; i < 6; i++ {
		offset := -0.75 + 0.3*float32(i)
		smoothness := 0.2 * float32(i)
		s.AddShapes(geometry.NewSphere(
			core.NewVec3(offset, offset, 0),
			0.15,
			core.NewGlossy(core.Splat(1), smoothness, 1, core.Splat(1)),
		))
	}

	return s
}

// cornellBox returns the twelve wall triangles of the unit Cornell box.
// Walls face inward, so the front wall is invisible from a camera looking in.
func cornellBox() []geometry.Shape {
	white := core.NewDiffuse(core.Splat(1))
	red := core.NewDiffuse(core.NewVec3(1, 0, 0))
	green := core.NewDiffuse(core.NewVec3(0, 1, 0))
	blue := core.NewDiffuse(core.NewVec3(0, 0, 1))

	var shapes []geometry.Shape
	// Back
	shapes = append(shapes, wallQuad(
		core.NewVec3(-1, -1, 1), core.NewVec3(-1, 1, 1), core.NewVec3(1, -1, 1),
		core.NewVec3(0, 0, -1), white)...)
	// Left
	shapes = append(shapes, wallQuad(
		core.NewVec3(-1, -1, -1), core.NewVec3(-1, 1, -1), core.NewVec3(-1, -1, 1),
		core.NewVec3(1, 0, 0), red)...)
	// Right
	shapes = append(shapes, wallQuad(
		core.NewVec3(1, -1, 1), core.NewVec3(1, 1, 1), core.NewVec3(1, -1, -1),
		core.NewVec3(-1, 0, 0), green)...)
	// Front
	shapes = append(shapes, wallQuad(
		core.NewVec3(1, -1, -1), core.NewVec3(1, 1, -1), core.NewVec3(-1, -1, -1),
		core.NewVec3(0, 0, 1), blue)...)
	// Floor
	shapes = append(shapes, wallQuad(
		core.NewVec3(-1, -1, -1), core.NewVec3(-1, -1, 1), core.NewVec3(1, -1, -1),
		core.NewVec3(0, 1, 0), white)...)
	// Ceiling
	shapes = append(shapes, wallQuad(
		core.NewVec3(-1, 1, 1), core.NewVec3(-1, 1, -1), core.NewVec3(1, 1, 1),
		core.NewVec3(0, -1, 0), white)...)
	return shapes
}

// wallQuad splits the parallelogram spanned by p0, p1 and p2 into the triangles
// (p0, p1, p2) and (p3, p2, p1), where p3 is the corner opposite p0
func wallQuad(p0, p1, p2, normal core.Vec3, material core.Material) []geometry.Shape {
	p3 := p1.Add(p2).Subtract(p0)
	return []geometry.Shape{
		geometry.NewTriangle(p0, p1, p2, normal, normal, normal, material),
		geometry.NewTriangle(p3, p2, p1, normal, normal, normal, material),
	}
}
