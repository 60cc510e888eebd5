package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/BlockOG/ray-tracing/pkg/core"
)

// quadMesh is a unit square in the z=1 plane facing -Z, split into two triangles
func quadMesh() ([]core.Vec3, []int) {
	vertices := []core.Vec3{
		core.NewVec3(-1, -1, 1),
		core.NewVec3(-1, 1, 1),
		core.NewVec3(1, 1, 1),
		core.NewVec3(1, -1, 1),
	}
	faces := []int{0, 1, 3, 1, 2, 3}
	return vertices, faces
}

func TestTriangleMesh_Basic(t *testing.T) {
	vertices, faces := quadMesh()
	mesh, err := NewTriangleMesh(vertices, faces, testMaterial, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if mesh.GetTriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.GetTriangleCount())
	}
	if len(mesh.Shapes()) != 2 {
		t.Errorf("Expected 2 shapes, got %d", len(mesh.Shapes()))
	}

	bbox := mesh.BoundingBox()
	if bbox.Min != core.NewVec3(-1, -1, 1) || bbox.Max != core.NewVec3(1, 1, 1) {
		t.Errorf("Unexpected bounding box %v", bbox)
	}

	// Both halves are hit from the camera side with the computed -Z normal
	for _, origin := range []core.Vec3{core.NewVec3(-0.5, -0.2, 0), core.NewVec3(0.5, 0.6, 0)} {
		ray := core.NewRay(origin, core.NewVec3(0, 0, 1))
		hit, isHit := NewBVH(mesh.Shapes()).Intersect(ray)
		if !isHit {
			t.Fatalf("Expected hit from %v", origin)
		}
		if !vecNear(hit.Normal, core.NewVec3(0, 0, -1), 1e-6) {
			t.Errorf("Expected -Z normal, got %v", hit.Normal)
		}
	}
}

func TestTriangleMesh_InvalidInput(t *testing.T) {
	vertices, _ := quadMesh()

	tests := []struct {
		name    string
		faces   []int
		normals []core.Vec3
	}{
		{"Faces not multiple of 3", []int{0, 1}, nil},
		{"Index out of bounds", []int{0, 1, 7}, nil},
		{"Negative index", []int{0, -1, 2}, nil},
		{"Normal count mismatch", []int{0, 1, 2}, []core.Vec3{core.NewVec3(0, 0, -1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTriangleMesh(vertices, tt.faces, testMaterial, &TriangleMeshOptions{Normals: tt.normals})
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestTriangleMesh_Transform(t *testing.T) {
	vertices, faces := quadMesh()
	transform := mgl32.Translate3D(0, 0, 2).Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))

	mesh, err := NewTriangleMesh(vertices, faces, testMaterial, &TriangleMeshOptions{Transform: &transform})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bbox := mesh.BoundingBox()
	if !vecNear(bbox.Min, core.NewVec3(-0.5, -0.5, 2.5), 1e-6) || !vecNear(bbox.Max, core.NewVec3(0.5, 0.5, 2.5), 1e-6) {
		t.Errorf("Unexpected transformed bounds %v", bbox)
	}
}

func TestTriangleMesh_TransformsNormals(t *testing.T) {
	vertices, faces := quadMesh()
	normals := []core.Vec3{
		core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1),
		core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1),
	}
	// Quarter turn about Y maps -Z normals to -X
	transform := mgl32.HomogRotate3DY(mgl32.DegToRad(90))

	mesh, err := NewTriangleMesh(vertices, faces, testMaterial, &TriangleMeshOptions{Normals: normals, Transform: &transform})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, shape := range mesh.Shapes() {
		tri := shape.(*Triangle)
		for _, n := range []core.Vec3{tri.NA, tri.NB, tri.NC} {
			if !vecNear(n, core.NewVec3(-1, 0, 0), 1e-5) {
				t.Errorf("Expected -X normal, got %v", n)
			}
		}
	}
}

func TestVertexNormals_Smooth(t *testing.T) {
	// Two faces of a tent meeting along the shared edge 1-2
	vertices := []core.Vec3{
		core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, -1),
		core.NewVec3(0, 1, 1),
		core.NewVec3(1, 0, 0),
	}
	faces := []int{0, 2, 1, 3, 1, 2}

	normals := VertexNormals(vertices, faces)

	// Ridge vertices average both slopes and point straight up
	for _, i := range []int{1, 2} {
		if !vecNear(normals[i], core.NewVec3(0, 1, 0), 1e-6) {
			t.Errorf("Vertex %d: expected +Y normal, got %v", i, normals[i])
		}
	}
	// Outer vertices keep their own slope
	if !vecNear(normals[0], core.NewVec3(-1, 1, 0).Normalize(), 1e-6) {
		t.Errorf("Vertex 0: unexpected normal %v", normals[0])
	}
	if !vecNear(normals[3], core.NewVec3(1, 1, 0).Normalize(), 1e-6) {
		t.Errorf("Vertex 3: unexpected normal %v", normals[3])
	}
}
