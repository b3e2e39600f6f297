package types

// Triangle is a primitive defined by 3 vertices.
type Triangle[T Float] [3]Vec3[T]

// Bounds returns the triangle AABB.
func (t Triangle[T]) Bounds() Box[T] {
	return Box[T]{
		Min: MinVec3(t[0], MinVec3(t[1], t[2])),
		Max: MaxVec3(t[0], MaxVec3(t[1], t[2])),
	}
}

// Centroid returns the average of the triangle vertices.
func (t Triangle[T]) Centroid() Vec3[T] {
	return t[0].Add(t[1]).Add(t[2]).Mul(1.0 / 3.0)
}

// Normal returns the unit face normal following the vertex winding.
func (t Triangle[T]) Normal() Vec3[T] {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Normalize()
}

// Area returns the triangle surface area.
func (t Triangle[T]) Area() T {
	// area = 0.5 * len(cross(v1-v0, v2-v0))
	return 0.5 * t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Len()
}
