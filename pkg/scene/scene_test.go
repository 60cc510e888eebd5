package scene

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/BlockOG/ray-tracing/pkg/core"
	"github.com/BlockOG/ray-tracing/pkg/geometry"
)

func testCamera() *geometry.Camera {
	return geometry.NewCamera(90, core.Vec3{}, mgl32.QuatIdent())
}

func TestScene_NearestHitWins(t *testing.T) {
	near := core.NewDiffuse(core.NewVec3(1, 0, 0))
	far := core.NewDiffuse(core.NewVec3(0, 1, 0))

	// Far sphere added first so insertion order does not decide the result
	s := NewScene(testCamera(),
		geometry.NewSphere(core.NewVec3(0, 0, 6), 1, far),
		geometry.NewSphere(core.NewVec3(0, 0, 3), 1, near),
	)

	for _, useBVH := range []bool{false, true} {
		s.Preprocess(useBVH)
		hit, ok := s.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
		if !ok {
			t.Fatalf("useBVH=%v: expected a hit", useBVH)
		}
		if core.Abs(hit.Distance-2) > 1e-5 {
			t.Errorf("useBVH=%v: distance = %v, want 2", useBVH, hit.Distance)
		}
		if hit.Material != near {
			t.Errorf("useBVH=%v: hit the far sphere", useBVH)
		}
	}
}

func TestScene_EqualDistanceFirstShapeWins(t *testing.T) {
	first := core.NewDiffuse(core.NewVec3(1, 0, 0))
	second := core.NewDiffuse(core.NewVec3(0, 0, 1))
	s := NewScene(testCamera(),
		geometry.NewSphere(core.NewVec3(0, 0, 3), 1, first),
		geometry.NewSphere(core.NewVec3(0, 0, 3), 1, second),
	)

	hit, ok := s.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	if !ok || hit.Material != first {
		t.Errorf("Expected the first shape to win a tie")
	}
}

func TestScene_Miss(t *testing.T) {
	s := NewScene(testCamera(), geometry.NewSphere(core.NewVec3(0, 0, 3), 1, core.NewDiffuse(core.Splat(1))))
	if _, ok := s.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); ok {
		t.Error("Expected a miss")
	}

	empty := NewScene(testCamera())
	if _, ok := empty.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))); ok {
		t.Error("Empty scene should never report a hit")
	}
}

func TestScene_AddShapesDropsBVH(t *testing.T) {
	s := NewScene(testCamera())
	s.Preprocess(true)
	if s.BVH == nil {
		t.Fatal("Preprocess(true) should build a BVH")
	}
	s.AddShapes(geometry.NewSphere(core.NewVec3(0, 0, 3), 1, core.NewDiffuse(core.Splat(1))))
	if s.BVH != nil {
		t.Error("AddShapes should discard a stale BVH")
	}
	if _, ok := s.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))); !ok {
		t.Error("Expected the new sphere to be hit")
	}
}

func TestCornellScene_BVHMatchesLinear(t *testing.T) {
	linear := NewCornellScene()
	accelerated := NewCornellScene()
	accelerated.Preprocess(true)

	random := rand.New(rand.NewSource(42))
	sampler := core.NewRandomSampler(random)
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(random.Float32()*1.6-0.8, random.Float32()*1.6-0.8, random.Float32()*1.6-0.8)
		ray := core.NewRay(origin, sampler.UnitVector())

		want, wantOK := linear.Intersect(ray)
		got, gotOK := accelerated.Intersect(ray)
		if wantOK != gotOK {
			t.Fatalf("ray %d: linear hit=%v, bvh hit=%v", i, wantOK, gotOK)
		}
		if wantOK && core.Abs(want.Distance-got.Distance) > 1e-5 {
			t.Errorf("ray %d: linear distance %v, bvh distance %v", i, want.Distance, got.Distance)
		}
	}
}

func TestCornellScene_Layout(t *testing.T) {
	s := NewCornellScene()

	// 12 wall triangles, 2 light triangles, 6 spheres
	if got := s.PrimitiveCount(); got != 20 {
		t.Errorf("PrimitiveCount() = %d, want 20", got)
	}
	if s.GetCamera().FieldOfView != 90 {
		t.Errorf("FieldOfView = %v, want 90", s.GetCamera().FieldOfView)
	}

	// Rays from inside the box always hit something
	sampler := core.NewSeededSampler(7)
	for i := 0; i < 200; i++ {
		if _, ok := s.Intersect(core.NewRay(core.Vec3{}, sampler.UnitVector())); !ok {
			t.Fatal("Ray from the box center escaped")
		}
	}

	// The camera sees through the inward-facing front wall.
	// Off axis, clear of the spheres and the split diagonals.
	hit, ok := s.Intersect(core.NewRay(core.NewVec3(0.5, -0.3, -2), core.NewVec3(0, 0, 1)))
	if !ok {
		t.Fatal("Expected the camera ray to hit the back wall")
	}
	if core.Abs(hit.Distance-3) > 1e-5 {
		t.Errorf("Camera ray distance = %v, want 3", hit.Distance)
	}

	// Straight up from below the light reaches it
	hit, ok = s.Intersect(core.NewRay(core.NewVec3(0.3, -0.5, -0.3), core.NewVec3(0, 1, 0)))
	if !ok || hit.Material.Emitted().IsZero() {
		t.Error("Expected the ceiling light above")
	}
}

func TestSpheresScene(t *testing.T) {
	s := NewSpheresScene()
	if s.PrimitiveCount() == 0 {
		t.Fatal("Spheres scene has no shapes")
	}

	// Straight down from above lands on a sphere or the ground
	if _, ok := s.Intersect(core.NewRay(core.NewVec3(3, 5, 3), core.NewVec3(0, -1, 0))); !ok {
		t.Error("Expected to hit the ground")
	}
	// Straight up escapes to the sky
	if _, ok := s.Intersect(core.NewRay(core.NewVec3(3, 5, 3), core.NewVec3(0, 1, 0))); ok {
		t.Error("Expected upward ray to miss")
	}
}

const tetrahedronPLY = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 4
property list uchar int vertex_indices
end_header
0 0 0
2 0 0
0 2 0
0 0 2
3 0 2 1
3 0 1 3
3 0 3 2
3 1 2 3
`

func TestMeshScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.ply")
	if err := os.WriteFile(path, []byte(tetrahedronPLY), 0644); err != nil {
		t.Fatalf("Failed to write PLY: %v", err)
	}

	s, err := NewMeshScene(path)
	if err != nil {
		t.Fatalf("NewMeshScene failed: %v", err)
	}

	// Box, light and the four mesh triangles
	if got := s.PrimitiveCount(); got != 12+2+4 {
		t.Errorf("PrimitiveCount() = %d, want 18", got)
	}

	// Every mesh vertex ends up inside the box
	for _, shape := range s.GetShapes()[14:] {
		bbox := shape.BoundingBox()
		for _, p := range []core.Vec3{bbox.Min, bbox.Max} {
			if core.Abs(p.X) > 1 || core.Abs(p.Y) > 1.0001 || core.Abs(p.Z) > 1 {
				t.Errorf("Mesh point %v lies outside the box", p)
			}
		}
	}
}

func TestMeshScene_Errors(t *testing.T) {
	if _, err := NewMeshScene(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestFitTransform(t *testing.T) {
	bounds := core.NewAABB(core.NewVec3(10, 10, 10), core.NewVec3(14, 12, 11))
	m := fitTransform(bounds, core.NewVec3(0, -1, 0), 1, 0)

	bottom := core.FromMgl(mgl32.TransformCoordinate(mgl32.Vec3{12, 10, 10.5}, m))
	if bottom.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-5 {
		t.Errorf("Bottom centre maps to %v, want (0,-1,0)", bottom)
	}

	corner := core.FromMgl(mgl32.TransformCoordinate(mgl32.Vec3{14, 12, 11}, m))
	if corner.Subtract(core.NewVec3(0.5, -0.5, 0.125)).Length() > 1e-5 {
		t.Errorf("Max corner maps to %v, want (0.5,-0.5,0.125)", corner)
	}
}

func TestNewByName(t *testing.T) {
	for _, name := range []string{"cornell", "spheres"} {
		t.Run(name, func(t *testing.T) {
			s, err := NewByName(name, "")
			if err != nil {
				t.Fatalf("NewByName(%q) failed: %v", name, err)
			}
			if s.GetCamera() == nil || len(s.GetShapes()) == 0 {
				t.Error("Scene is incomplete")
			}
		})
	}

	if _, err := NewByName("teapot", ""); err == nil {
		t.Error("Expected error for unknown scene")
	}
	if _, err := NewByName("mesh", ""); err == nil {
		t.Error("Expected error for mesh scene without a PLY path")
	}

	names := Names()
	if len(names) != 3 || names[0] != "cornell" || names[1] != "mesh" || names[2] != "spheres" {
		t.Errorf("Names() = %v", names)
	}
	for _, name := range names {
		if got := NeedsPLY(name); got != (name == "mesh") {
			t.Errorf("NeedsPLY(%q) = %v", name, got)
		}
	}
}
