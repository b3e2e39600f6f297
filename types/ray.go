package types

// Ray is a half-line starting at Origin. Intersections further than MaxDist
// are ignored.
type Ray[T Float] struct {
	Origin  Vec3[T]
	Dir     Vec3[T]
	MaxDist T
}

// Create a ray with unbounded length. The direction is normalized so hit
// distances are expressed in world units.
func NewRay[T Float](origin, dir Vec3[T]) Ray[T] {
	return Ray[T]{Origin: origin, Dir: dir.Normalize(), MaxDist: Inf[T]()}
}

// Point returns the point at distance t along the ray.
func (r Ray[T]) Point(t T) Vec3[T] {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IntersectBox runs a slab test against b and returns the distance where the
// ray enters the box. Rays starting inside the box report a zero distance.
func (r Ray[T]) IntersectBox(b Box[T]) (T, bool) {
	if b.IsEmpty() {
		return 0, false
	}

	tMin, tMax := T(0), r.MaxDist
	for axis := 0; axis < 3; axis++ {
		if Abs(r.Dir[axis]) < Epsilon[T]() {
			// Parallel to the slab; the origin must lie between its planes
			if r.Origin[axis] < b.Min[axis] || r.Origin[axis] > b.Max[axis] {
				return 0, false
			}
			continue
		}

		invDir := 1 / r.Dir[axis]
		t0 := (b.Min[axis] - r.Origin[axis]) * invDir
		t1 := (b.Max[axis] - r.Origin[axis]) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = max(tMin, t0)
		tMax = min(tMax, t1)
		if tMin > tMax {
			return 0, false
		}
	}

	return tMin, true
}

// IntersectTriangle implements the Möller-Trumbore ray/triangle test and
// returns the distance to the hit point.
func (r Ray[T]) IntersectTriangle(tri Triangle[T]) (T, bool) {
	eps := Epsilon[T]()
	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if Abs(det) < eps*eps {
		return 0, false
	}

	invDet := 1 / det
	s := r.Origin.Sub(tri[0])
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * invDet
	if t <= eps || t > r.MaxDist {
		return 0, false
	}
	return t, true
}
