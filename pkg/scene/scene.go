package scene

import (
	"fmt"
	"sort"

	"github.com/BlockOG/ray-tracing/pkg/core"
	"github.com/BlockOG/ray-tracing/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera *geometry.Camera
	Shapes []geometry.Shape // Objects in the scene, in insertion order
	BVH    *geometry.BVH    // Optional acceleration structure, nil for a linear scan
}

// NewScene creates a scene viewed through the given camera
func NewScene(camera *geometry.Camera, shapes ...geometry.Shape) *Scene {
	return &Scene{
		Camera: camera,
		Shapes: shapes,
	}
}

// Intersect returns the nearest hit over all shapes.
// On equal distances the earliest shape wins.
func (s *Scene) Intersect(ray core.Ray) (core.HitInfo, bool) {
	if s.BVH != nil {
		return s.BVH.Intersect(ray)
	}

	var closest core.HitInfo
	found := false
	for _, shape := range s.Shapes {
		hit, ok := shape.Intersect(ray)
		if ok && (!found || hit.Distance < closest.Distance) {
			closest = hit
			found = true
		}
	}
	return closest, found
}

// AddShapes appends shapes to the scene. Any previously built BVH is discarded.
func (s *Scene) AddShapes(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
	s.BVH = nil
}

// Preprocess prepares the scene for rendering. With useBVH the scene builds an
// acceleration structure, otherwise it stays a linear scan.
func (s *Scene) Preprocess(useBVH bool) {
	if useBVH {
		s.BVH = geometry.NewBVH(s.Shapes)
	} else {
		s.BVH = nil
	}
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetShapes returns the shapes in the scene
func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Shapes)
}

// builders maps scene names to their constructors
var builders = map[string]func(plyPath string) (*Scene, error){
	"cornell": func(string) (*Scene, error) { return NewCornellScene(), nil },
	"spheres": func(string) (*Scene, error) { return NewSpheresScene(), nil },
	"mesh": func(plyPath string) (*Scene, error) {
		if plyPath == "" {
			return nil, fmt.Errorf("mesh scene requires a PLY file")
		}
		return NewMeshScene(plyPath)
	},
}

// Names returns the sorted list of built-in scene names
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NeedsPLY reports whether the named scene can only be built from a PLY file
func NeedsPLY(name string) bool {
	return name == "mesh"
}

// NewByName creates a built-in scene by name. plyPath is only used by the mesh scene.
func NewByName(name, plyPath string) (*Scene, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	return build(plyPath)
}
