package contour

import "github.com/achilleasa/meshcut/types"

// Polyline is an ordered list of points. Closed polylines repeat their first
// point at the end.
type Polyline[T types.Float] struct {
	Points []types.Vec3[T]
}

// Closed returns true if the polyline forms a loop.
func (p Polyline[T]) Closed() bool {
	n := len(p.Points)
	return n >= 4 && p.Points[0] == p.Points[n-1]
}

// Vertices returns the distinct polyline vertices; the closing point of a
// loop is omitted.
func (p Polyline[T]) Vertices() []types.Vec3[T] {
	if p.Closed() {
		return p.Points[:len(p.Points)-1]
	}
	return p.Points
}

// Length returns the total length of the polyline.
func (p Polyline[T]) Length() T {
	var length T
	for i := 1; i < len(p.Points); i++ {
		length += p.Points[i].Sub(p.Points[i-1]).Len()
	}
	return length
}

// Area returns the signed area enclosed by a closed polyline when viewed
// from the side normal points to. Counter-clockwise loops have a positive
// area. Open polylines have no area.
func (p Polyline[T]) Area(normal types.Vec3[T]) T {
	if !p.Closed() {
		return 0
	}

	var sum types.Vec3[T]
	for i := 1; i < len(p.Points); i++ {
		sum = sum.Add(p.Points[i-1].Cross(p.Points[i]))
	}
	return 0.5 * normal.Normalize().Dot(sum)
}
