package bvh

import "github.com/achilleasa/meshcut/types"

// Slice cuts every triangle crossing the plane and returns the resulting
// segments in traversal order. The segments are unordered with respect to
// each other; use the contour package to assemble them into polylines.
func Slice[T types.Float](tree *Tree[T, types.Triangle[T]], plane types.Plane[T]) []types.Segment[T] {
	var segments []types.Segment[T]
	tree.traverse(PlaneTester[T]{Plane: plane}, nil, func(slot int, _ T) bool {
		if seg, ok := plane.IntersectTriangle(tree.primitives[slot]); ok {
			segments = append(segments, seg)
		}
		return true
	})
	return segments
}
