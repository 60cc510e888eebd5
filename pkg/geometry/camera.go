package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/BlockOG/ray-tracing/pkg/core"
)

// Camera is a pinhole camera looking down its local +Z axis
type Camera struct {
	FieldOfView float32    // Vertical field of view in degrees
	Position    core.Vec3  // World position
	Rotation    mgl32.Quat // World orientation, unit length
}

// NewCamera creates a camera
func NewCamera(fieldOfView float32, position core.Vec3, rotation mgl32.Quat) *Camera {
	return &Camera{
		FieldOfView: fieldOfView,
		Position:    position,
		Rotation:    rotation,
	}
}

// LocalToWorld returns the camera-to-world transform (rotation, then translation)
func (c *Camera) LocalToWorld() mgl32.Mat4 {
	return mgl32.Translate3D(c.Position.X, c.Position.Y, c.Position.Z).Mul4(c.Rotation.Mat4())
}

// WorldToLocal returns the world-to-camera transform
func (c *Camera) WorldToLocal() mgl32.Mat4 {
	return c.LocalToWorld().Inv()
}

// GetRay generates a ray through pixel coordinates (x, y) of a width×height image.
// Coordinates are continuous, so x+0.5 addresses the center of pixel column x.
// y grows upwards.
func (c *Camera) GetRay(x, y float32, width, height uint32) core.Ray {
	w, h := float32(width), float32(height)
	u := x/w - 0.5
	v := y/h - 0.5

	aspect := w / h
	planeHeight := core.Tan(core.Radians(c.FieldOfView/2)) * 2
	planeWidth := planeHeight * aspect

	local := mgl32.Vec4{u * planeWidth, v * planeHeight, 1, 1}
	target := core.FromMgl(c.LocalToWorld().Mul4x1(local).Vec3())

	return core.NewRay(c.Position, target.Subtract(c.Position).Normalize())
}
