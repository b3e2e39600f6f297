package types

// Segment is a directed line segment.
type Segment[T Float] struct {
	Start Vec3[T]
	End   Vec3[T]
}

// Dir returns the unit direction from Start to End.
func (s Segment[T]) Dir() Vec3[T] {
	return s.End.Sub(s.Start).Normalize()
}

// LenSq returns the squared segment length.
func (s Segment[T]) LenSq() T {
	return s.End.DistSq(s.Start)
}

// Reverse returns the segment with swapped end points.
func (s Segment[T]) Reverse() Segment[T] {
	return Segment[T]{Start: s.End, End: s.Start}
}
