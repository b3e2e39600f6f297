package types

// Vec3 is a 3 component vector or point.
type Vec3[T Float] [3]T

// Define a 3 component vector.
func XYZ[T Float](x, y, z T) Vec3[T] {
	return Vec3[T]{x, y, z}
}

// Convert a vector to a different scalar type.
func ConvertVec3[U, T Float](v Vec3[T]) Vec3[U] {
	return Vec3[U]{U(v[0]), U(v[1]), U(v[2])}
}

// Add a vector.
func (v Vec3[T]) Add(v2 Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3[T]) Sub(v2 Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply a vector with a scalar.
func (v Vec3[T]) Mul(s T) Vec3[T] {
	return Vec3[T]{v[0] * s, v[1] * s, v[2] * s}
}

// Calculate dot product of 2 vectors.
func (v Vec3[T]) Dot(v2 Vec3[T]) T {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Calculate cross product of 2 vectors.
func (v Vec3[T]) Cross(v2 Vec3[T]) Vec3[T] {
	return Vec3[T]{v[1]*v2[2] - v[2]*v2[1], v[2]*v2[0] - v[0]*v2[2], v[0]*v2[1] - v[1]*v2[0]}
}

// Get squared vector length.
func (v Vec3[T]) LenSq() T {
	return v.Dot(v)
}

// Get vector length.
func (v Vec3[T]) Len() T {
	return Sqrt(v.LenSq())
}

// Normalize vector. Vectors too short to be normalized collapse to the zero vector.
func (v Vec3[T]) Normalize() Vec3[T] {
	l := v.Len()
	if l < Epsilon[T]() {
		return Vec3[T]{}
	}
	return v.Mul(1 / l)
}

// Squared distance between two points.
func (v Vec3[T]) DistSq(v2 Vec3[T]) T {
	return v.Sub(v2).LenSq()
}

// Linear interpolation between v and v2.
func (v Vec3[T]) Lerp(v2 Vec3[T], t T) Vec3[T] {
	return v.Add(v2.Sub(v).Mul(t))
}

// Returns true if the squared distance between the two points does not
// exceed tolSq.
func (v Vec3[T]) ApproxEqual(v2 Vec3[T], tolSq T) bool {
	return v.DistSq(v2) <= tolSq
}

// Get the max vector component.
func (v Vec3[T]) MaxComponent() T {
	return max(v[0], v[1], v[2])
}

// Bounds returns the degenerate box enclosing the point.
func (v Vec3[T]) Bounds() Box[T] {
	return Box[T]{Min: v, Max: v}
}

// Centroid returns the point itself.
func (v Vec3[T]) Centroid() Vec3[T] {
	return v
}

// Calc min component from two vectors
func MinVec3[T Float](v1, v2 Vec3[T]) Vec3[T] {
	return Vec3[T]{min(v1[0], v2[0]), min(v1[1], v2[1]), min(v1[2], v2[2])}
}

// Calc max component from two vectors
func MaxVec3[T Float](v1, v2 Vec3[T]) Vec3[T] {
	return Vec3[T]{max(v1[0], v2[0]), max(v1[1], v2[1]), max(v1[2], v2[2])}
}
