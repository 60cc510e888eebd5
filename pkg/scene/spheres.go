package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/BlockOG/ray-tracing/pkg/core"
	"github.com/BlockOG/ray-tracing/pkg/geometry"
)

// NewSpheresScene creates a few spheres resting on a large ground sphere,
// lit only by the sky
func NewSpheresScene() *Scene {
	// Tilted down so the horizon sits in the upper part of the frame
	rotation := mgl32.QuatRotate(mgl32.DegToRad(15), mgl32.Vec3{1, 0, 0})
	camera := geometry.NewCamera(60, core.NewVec3(0, 1.2, -4), rotation)
	s := NewScene(camera)

	ground := geometry.NewSphere(
		core.NewVec3(0, -100.5, 0),
		100,
		core.NewDiffuse(core.NewVec3(0.8, 0.8, 0.3)),
	)

	matte := geometry.NewSphere(
		core.NewVec3(0, 0, 0),
		0.5,
		core.NewDiffuse(core.NewVec3(0.7, 0.3, 0.3)),
	)

	mirror := geometry.NewSphere(
		core.NewVec3(1.1, 0, 0.3),
		0.5,
		core.NewGlossy(core.NewVec3(0.8, 0.8, 0.8), 1, 1, core.NewVec3(0.8, 0.8, 0.8)),
	)

	// Clear coat: mostly diffuse red with occasional white highlights
	coated := geometry.NewSphere(
		core.NewVec3(-1.1, 0, 0.3),
		0.5,
		core.NewGlossy(core.NewVec3(0.8, 0.1, 0.1), 0.9, 0.15, core.Splat(1)),
	)

	glow := geometry.NewSphere(
		core.NewVec3(0.4, -0.35, -0.9),
		0.15,
		core.NewEmissive(core.NewVec3(1, 0.6, 0.2), 4),
	)

	s.AddShapes(ground, matte, mirror, coated, glow)
	return s
}
