package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/BlockOG/ray-tracing/pkg/core"
	"github.com/BlockOG/ray-tracing/pkg/geometry"
	"github.com/BlockOG/ray-tracing/pkg/loaders"
)

// Placement of the mesh inside the box
const (
	meshSize = 1.0  // Longest side of the fitted mesh
	meshYaw  = 30.0 // Degrees around +Y
)

// NewMeshScene creates the Cornell box with the PLY mesh at path standing on its floor.
// The mesh is scaled to fit the box and shaded with smooth vertex normals.
func NewMeshScene(path string) (*Scene, error) {
	data, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}
	if len(data.Faces) == 0 {
		return nil, fmt.Errorf("mesh %s has no faces", path)
	}

	camera := geometry.NewCamera(90, core.NewVec3(0, 0, -2), mgl32.QuatIdent())
	s := NewScene(camera)
	s.AddShapes(cornellBox()...)

	down := core.NewVec3(0, -1, 0)
	s.AddShapes(wallQuad(
		core.NewVec3(-0.5, 0.99, 0.5), core.NewVec3(-0.5, 0.99, -0.5), core.NewVec3(0.5, 0.99, 0.5),
		down, core.NewEmissive(core.Splat(1), 1))...)

	transform := fitTransform(core.NewAABBFromPoints(data.Vertices...), core.NewVec3(0, -1, 0.1), meshSize, meshYaw)
	mesh, err := geometry.NewTriangleMesh(
		data.Vertices,
		data.Faces,
		core.NewGlossy(core.NewVec3(0.9, 0.85, 0.7), 0.6, 0.3, core.Splat(1)),
		&geometry.TriangleMeshOptions{Normals: data.Normals, Transform: &transform},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build mesh %s: %w", path, err)
	}
	s.AddShapes(mesh.Shapes()...)

	return s, nil
}

// fitTransform maps bounds so that its longest side becomes size, its bottom centre
// lands on base and it is turned yaw degrees around +Y
func fitTransform(bounds core.AABB, base core.Vec3, size, yaw float32) mgl32.Mat4 {
	extent := bounds.Size()
	longest := max(extent.X, extent.Y, extent.Z)
	scale := float32(1)
	if longest > 0 {
		scale = size / longest
	}

	center := bounds.Center()
	bottom := core.NewVec3(center.X, bounds.Min.Y, center.Z)

	return mgl32.Translate3D(base.X, base.Y, base.Z).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(yaw))).
		Mul4(mgl32.Scale3D(scale, scale, scale)).
		Mul4(mgl32.Translate3D(-bottom.X, -bottom.Y, -bottom.Z))
}
