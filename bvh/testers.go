package bvh

import "github.com/achilleasa/meshcut/types"

// RayTester intersects a ray with triangle primitives. Hit distances are
// measured along the ray.
type RayTester[T types.Float] struct {
	Ray types.Ray[T]
}

func (rt RayTester[T]) TestBox(bounds types.Box[T]) (T, bool) {
	return rt.Ray.IntersectBox(bounds)
}

func (rt RayTester[T]) TestPrimitive(tri types.Triangle[T]) (T, bool) {
	return rt.Ray.IntersectTriangle(tri)
}

// BoxTester reports primitives whose bounding box overlaps a query box. The
// hit distance is measured from the query box center to the primitive
// centroid.
type BoxTester[T types.Float, P types.Bounded[T]] struct {
	Box types.Box[T]
}

func (bt BoxTester[T, P]) TestBox(bounds types.Box[T]) (T, bool) {
	if !bt.Box.Overlaps(bounds) {
		return 0, false
	}
	return types.Sqrt(bounds.DistSq(bt.Box.Center())), true
}

func (bt BoxTester[T, P]) TestPrimitive(prim P) (T, bool) {
	if !bt.Box.Overlaps(prim.Bounds()) {
		return 0, false
	}
	return prim.Centroid().Sub(bt.Box.Center()).Len(), true
}

// SphereTester reports primitives whose bounding box lies within Radius of
// Center. For point primitives this is the exact point distance.
type SphereTester[T types.Float, P types.Bounded[T]] struct {
	Center types.Vec3[T]
	Radius T
}

func (st SphereTester[T, P]) TestBox(bounds types.Box[T]) (T, bool) {
	return st.test(bounds)
}

func (st SphereTester[T, P]) TestPrimitive(prim P) (T, bool) {
	return st.test(prim.Bounds())
}

func (st SphereTester[T, P]) test(bounds types.Box[T]) (T, bool) {
	distSq := bounds.DistSq(st.Center)
	if distSq > st.Radius*st.Radius {
		return 0, false
	}
	return types.Sqrt(distSq), true
}

// PlaneTester reports triangles crossing a plane.
type PlaneTester[T types.Float] struct {
	Plane types.Plane[T]
}

func (pt PlaneTester[T]) TestBox(bounds types.Box[T]) (T, bool) {
	return 0, pt.Plane.IntersectsBox(bounds)
}

func (pt PlaneTester[T]) TestPrimitive(tri types.Triangle[T]) (T, bool) {
	return 0, pt.Plane.IntersectsTriangle(tri)
}
