package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/BlockOG/ray-tracing/pkg/core"
)

// TriangleMesh is an indexed set of triangles sharing one material.
// The mesh itself is not a Shape; scenes add its triangles individually.
type TriangleMesh struct {
	triangles []*Triangle
	bbox      core.AABB
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals   []core.Vec3 // Optional per-vertex normals; computed from faces when empty
	Transform *mgl32.Mat4 // Optional placement applied to vertices and normals
}

// NewTriangleMesh creates a triangle mesh from vertices and face indices.
// Each group of 3 indices forms a triangle.
func NewTriangleMesh(vertices []core.Vec3, faces []int, material core.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}
	for _, index := range faces {
		if index < 0 || index >= len(vertices) {
			return nil, fmt.Errorf("face index %d out of bounds for %d vertices", index, len(vertices))
		}
	}
	if options == nil {
		options = &TriangleMeshOptions{}
	}
	if len(options.Normals) != 0 && len(options.Normals) != len(vertices) {
		return nil, fmt.Errorf("got %d normals for %d vertices", len(options.Normals), len(vertices))
	}

	workingVertices := vertices
	normals := options.Normals

	if options.Transform != nil {
		m := *options.Transform
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			workingVertices[i] = core.FromMgl(mgl32.TransformCoordinate(vertex.Mgl(), m))
		}
		if len(normals) != 0 {
			normalMatrix := m.Inv().Transpose()
			transformed := make([]core.Vec3, len(normals))
			for i, n := range normals {
				transformed[i] = core.FromMgl(mgl32.TransformNormal(n.Mgl(), normalMatrix)).Normalize()
			}
			normals = transformed
		}
	}

	if len(normals) == 0 {
		normals = VertexNormals(workingVertices, faces)
	}

	triangles := make([]*Triangle, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		triangles = append(triangles, NewTriangle(
			workingVertices[i0], workingVertices[i1], workingVertices[i2],
			normals[i0], normals[i1], normals[i2],
			material,
		))
	}

	var bbox core.AABB
	if len(triangles) > 0 {
		bbox = triangles[0].BoundingBox()
		for _, tri := range triangles[1:] {
			bbox = bbox.Union(tri.BoundingBox())
		}
	}

	return &TriangleMesh{triangles: triangles, bbox: bbox}, nil
}

// VertexNormals computes smooth per-vertex normals as the area-weighted
// average of the face normals surrounding each vertex.
// The face normal points against the rays that can hit the front side.
func VertexNormals(vertices []core.Vec3, faces []int) []core.Vec3 {
	normals := make([]core.Vec3, len(vertices))
	for i := 0; i+2 < len(faces); i += 3 {
		a, b, c := vertices[faces[i]], vertices[faces[i+1]], vertices[faces[i+2]]
		// Cross product length is twice the area, which gives the weighting
		n := b.Subtract(a).Cross(c.Subtract(a))
		for _, index := range faces[i : i+3] {
			normals[index] = normals[index].Add(n)
		}
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

// Shapes returns the triangles as scene shapes
func (tm *TriangleMesh) Shapes() []Shape {
	shapes := make([]Shape, len(tm.triangles))
	for i, tri := range tm.triangles {
		shapes[i] = tri
	}
	return shapes
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.triangles)
}
