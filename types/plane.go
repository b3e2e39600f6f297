package types

// Plane is the set of points p where Normal·p = Offset. Normal is always
// unit length.
type Plane[T Float] struct {
	Normal Vec3[T]
	Offset T
}

// Create a plane through point with the given normal.
func NewPlane[T Float](normal, point Vec3[T]) Plane[T] {
	n := normal.Normalize()
	return Plane[T]{Normal: n, Offset: n.Dot(point)}
}

// Create a plane perpendicular to an axis (0=X, 1=Y, 2=Z) at the given level.
func AxisPlane[T Float](axis int, level T) Plane[T] {
	var n Vec3[T]
	n[axis] = 1
	return Plane[T]{Normal: n, Offset: level}
}

// SignedDistance returns the distance of p from the plane; positive values
// lie on the side the normal points to.
func (pl Plane[T]) SignedDistance(p Vec3[T]) T {
	return pl.Normal.Dot(p) - pl.Offset
}

// Origin returns the plane point closest to the world origin.
func (pl Plane[T]) Origin() Vec3[T] {
	return pl.Normal.Mul(pl.Offset)
}

// IntersectsBox returns true if the plane passes through b.
func (pl Plane[T]) IntersectsBox(b Box[T]) bool {
	if b.IsEmpty() {
		return false
	}

	half := b.Size().Mul(0.5)
	radius := half[0]*Abs(pl.Normal[0]) + half[1]*Abs(pl.Normal[1]) + half[2]*Abs(pl.Normal[2])
	return Abs(pl.SignedDistance(b.Center())) <= radius+Epsilon[T]()
}

// IntersectsTriangle returns true if the triangle touches both sides of the
// plane or has an edge on it. An edge on the plane is shared by two
// triangles of a closed surface so it is only reported for the triangle
// lying above the plane. Triangles lying on the plane are not reported.
func (pl Plane[T]) IntersectsTriangle(tri Triangle[T]) bool {
	eps := Epsilon[T]()
	var above, below, on int
	for _, v := range tri {
		switch d := pl.SignedDistance(v); {
		case d > eps:
			above++
		case d < -eps:
			below++
		default:
			on++
		}
	}

	switch {
	case on == 3:
		return false
	case above > 0 && below > 0:
		return true
	default:
		return on == 2 && above == 1
	}
}

// IntersectTriangle cuts the triangle with the plane and returns the
// resulting segment. Segments are oriented along Normal × triangle normal so
// slicing a consistently wound closed surface produces counter-clockwise
// loops when viewed from the side the plane normal points to.
func (pl Plane[T]) IntersectTriangle(tri Triangle[T]) (Segment[T], bool) {
	if !pl.IntersectsTriangle(tri) {
		return Segment[T]{}, false
	}

	eps := Epsilon[T]()
	var dist [3]T
	for i, v := range tri {
		dist[i] = pl.SignedDistance(v)
	}

	var points [3]Vec3[T]
	count := 0
	add := func(p Vec3[T]) bool {
		for i := 0; i < count; i++ {
			if points[i].ApproxEqual(p, eps*eps) {
				return true
			}
		}
		if count == len(points) {
			return false
		}
		points[count] = p
		count++
		return true
	}

	for i := 0; i < 3; i++ {
		if Abs(dist[i]) <= eps {
			add(tri[i])
		}
	}
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if (dist[i] > eps && dist[j] < -eps) || (dist[i] < -eps && dist[j] > eps) {
			if !add(tri[i].Lerp(tri[j], dist[i]/(dist[i]-dist[j]))) {
				return Segment[T]{}, false
			}
		}
	}

	if count != 2 {
		return Segment[T]{}, false
	}

	seg := Segment[T]{Start: points[0], End: points[1]}
	if seg.End.Sub(seg.Start).Dot(pl.Normal.Cross(tri.Normal())) < 0 {
		seg = seg.Reverse()
	}
	return seg, true
}

// Basis returns two unit vectors that together with the plane normal form
// an orthonormal basis.
func (pl Plane[T]) Basis() (u, v Vec3[T]) {
	helper := Vec3[T]{1, 0, 0}
	if Abs(pl.Normal[0]) > 0.9 {
		helper = Vec3[T]{0, 1, 0}
	}
	u = pl.Normal.Cross(helper).Normalize()
	v = pl.Normal.Cross(u)
	return u, v
}

// Project maps p to 2D coordinates on the plane basis.
func (pl Plane[T]) Project(p Vec3[T]) (x, y T) {
	u, v := pl.Basis()
	rel := p.Sub(pl.Origin())
	return rel.Dot(u), rel.Dot(v)
}
