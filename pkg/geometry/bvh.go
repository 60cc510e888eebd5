package geometry

import (
	"math"

	"github.com/BlockOG/ray-tracing/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Shapes for leaf nodes (nil for internal nodes)
}

// BVH is an acceleration structure answering the same nearest-hit query
// as a linear scan over its shapes
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	// Copy so partitioning never reorders the caller's slice
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy)}
}

// buildBVH recursively builds the BVH using median splits along the longest axis
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		boundingBox = boundingBox.Union(shape.BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	axis := boundingBox.LongestAxis()
	lo, hi := boundingBox.Min.Component(axis), boundingBox.Max.Component(axis)
	if hi <= lo {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	leftShapes, rightShapes := partitionShapes(shapes, axis, (lo+hi)*0.5)

	// Ensure we don't create empty partitions
	if len(leftShapes) == 0 || len(rightShapes) == 0 {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(leftShapes),
		Right:       buildBVH(rightShapes),
	}
}

// partitionShapes splits shapes by bounding box center along axis
func partitionShapes(shapes []Shape, axis int, splitPos float32) ([]Shape, []Shape) {
	var leftShapes, rightShapes []Shape
	for _, shape := range shapes {
		if shape.BoundingBox().Center().Component(axis) < splitPos {
			leftShapes = append(leftShapes, shape)
		} else {
			rightShapes = append(rightShapes, shape)
		}
	}
	return leftShapes, rightShapes
}

// Intersect returns the nearest hit among all shapes in the BVH
func (bvh *BVH) Intersect(ray core.Ray) (core.HitInfo, bool) {
	var closest core.HitInfo
	if bvh.Root == nil {
		return closest, false
	}
	hitAnything := bvh.hitNode(bvh.Root, ray, math.MaxFloat32, &closest)
	return closest, hitAnything
}

// hitNode tests ray intersection with a subtree, only accepting hits nearer than closestSoFar
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, closestSoFar float32, closest *core.HitInfo) bool {
	if !node.BoundingBox.Hit(ray, 0, closestSoFar) {
		return false
	}

	hitAnything := false

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if hit, ok := shape.Intersect(ray); ok && hit.Distance < closestSoFar {
				hitAnything = true
				closestSoFar = hit.Distance
				*closest = hit
			}
		}
		return hitAnything
	}

	if node.Left != nil && bvh.hitNode(node.Left, ray, closestSoFar, closest) {
		hitAnything = true
		closestSoFar = closest.Distance
	}
	if node.Right != nil && bvh.hitNode(node.Right, ray, closestSoFar, closest) {
		hitAnything = true
	}

	return hitAnything
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	totalShapes int
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	stats := bvhStats{}
	if bvh.Root != nil {
		bvh.collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	if node.Shapes != nil {
		stats.leafNodes++
		stats.totalShapes += len(node.Shapes)
		return
	}
	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
