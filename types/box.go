package types

// Box is an axis aligned bounding box.
type Box[T Float] struct {
	Min Vec3[T]
	Max Vec3[T]
}

// The Bounded interface is implemented by all primitives that can be
// partitioned by the BVH builder.
type Bounded[T Float] interface {
	Bounds() Box[T]
	Centroid() Vec3[T]
}

// EmptyBox returns a box with inverted infinite extents. It is the identity
// element for Union and contains no points.
func EmptyBox[T Float]() Box[T] {
	inf := Inf[T]()
	return Box[T]{
		Min: Vec3[T]{inf, inf, inf},
		Max: Vec3[T]{-inf, -inf, -inf},
	}
}

// Create a box enclosing all supplied points.
func BoxFromPoints[T Float](points ...Vec3[T]) Box[T] {
	b := EmptyBox[T]()
	for _, p := range points {
		b = b.UnionPoint(p)
	}
	return b
}

// Returns true if the box contains no points.
func (b Box[T]) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Union returns the smallest box enclosing both b and b2.
func (b Box[T]) Union(b2 Box[T]) Box[T] {
	return Box[T]{Min: MinVec3(b.Min, b2.Min), Max: MaxVec3(b.Max, b2.Max)}
}

// UnionPoint grows the box so it encloses p.
func (b Box[T]) UnionPoint(p Vec3[T]) Box[T] {
	return Box[T]{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

// Contains returns true if p lies inside or on the boundary of the box.
func (b Box[T]) Contains(p Vec3[T]) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Overlaps returns true if the two boxes share at least one point.
func (b Box[T]) Overlaps(b2 Box[T]) bool {
	return b.Min[0] <= b2.Max[0] && b.Max[0] >= b2.Min[0] &&
		b.Min[1] <= b2.Max[1] && b.Max[1] >= b2.Min[1] &&
		b.Min[2] <= b2.Max[2] && b.Max[2] >= b2.Min[2]
}

// Size returns the box extents. Empty boxes have a zero size.
func (b Box[T]) Size() Vec3[T] {
	if b.IsEmpty() {
		return Vec3[T]{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint.
func (b Box[T]) Center() Vec3[T] {
	return b.Min.Add(b.Max).Mul(0.5)
}

// SurfaceArea returns the total area of the box faces.
func (b Box[T]) SurfaceArea() T {
	side := b.Size()
	return 2 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

// Corners returns the 8 box corners.
func (b Box[T]) Corners() [8]Vec3[T] {
	var out [8]Vec3[T]
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) == 0 {
				out[i][axis] = b.Min[axis]
			} else {
				out[i][axis] = b.Max[axis]
			}
		}
	}
	return out
}

// DistSq returns the squared distance from p to the closest point of the box.
func (b Box[T]) DistSq(p Vec3[T]) T {
	var d T
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis] {
			d += (b.Min[axis] - p[axis]) * (b.Min[axis] - p[axis])
		} else if p[axis] > b.Max[axis] {
			d += (p[axis] - b.Max[axis]) * (p[axis] - b.Max[axis])
		}
	}
	return d
}
