// Package contour assembles the unordered segments produced by slicing a
// mesh with a plane into polylines.
package contour

import "github.com/achilleasa/meshcut/types"

// Options control the stitcher.
type Options[T types.Float] struct {
	// Squared distance under which two end points are considered equal.
	// Segments whose squared length is below the tolerance are dropped.
	// When zero, the tolerance is set to half the squared length of the
	// shortest non-degenerate segment.
	Tolerance T

	// Squared sine of the angle under which two directions are treated as
	// parallel. Defaults to 1e-9.
	ParallelTolerance T
}

const defaultParallelTolerance = 1e-9

// Stitch joins segments whose end points match within the tolerance into
// polylines. Runs of parallel segments are merged into a single edge and
// chains whose ends meet are returned as closed loops.
//
// Stitch uses segments as its work queue and overwrites its contents.
func Stitch[T types.Float](segments []types.Segment[T], opts Options[T]) []Polyline[T] {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = autoTolerance(segments)
	}
	parTol := opts.ParallelTolerance
	if parTol <= 0 {
		parTol = defaultParallelTolerance
	}

	queue := segments[:0]
	for _, seg := range segments {
		if seg.LenSq() >= tol {
			queue = append(queue, seg)
		}
	}

	s := stitcher[T]{tol: tol, parTol: parTol}
	checked := 0
	for len(queue) > 0 {
		seg := queue[0]
		queue = queue[1:]

		if s.chain.len() == 0 {
			s.chain.start(seg)
			checked = 0
			continue
		}

		if s.extend(seg) {
			checked = 0
			if s.close() {
				s.emit()
			}
			continue
		}

		// No match; retry later. Once a full pass over the queue fails to
		// extend the chain it can not grow any further.
		queue = append(queue, seg)
		checked++
		if checked > len(queue) {
			s.emit()
			checked = 0
		}
	}

	s.emit()
	return s.out
}

// Calculate a tolerance from the shortest non-degenerate segment. Returns
// +Inf if all segments are degenerate.
func autoTolerance[T types.Float](segments []types.Segment[T]) T {
	shortest := types.Inf[T]()
	for _, seg := range segments {
		if lenSq := seg.LenSq(); lenSq > 0 && lenSq < shortest {
			shortest = lenSq
		}
	}
	return 0.5 * shortest
}

type stitcher[T types.Float] struct {
	tol    T
	parTol T
	chain  chain[T]
	out    []Polyline[T]
}

// Attach seg to whichever chain end it touches. Segments that continue the
// chain direction are tried before reversed ones.
func (s *stitcher[T]) extend(seg types.Segment[T]) bool {
	front, back := s.chain.at(0), s.chain.at(s.chain.len()-1)
	switch {
	case seg.Start.ApproxEqual(back, s.tol):
		s.extendBack(seg.End)
	case seg.End.ApproxEqual(front, s.tol):
		s.extendFront(seg.Start)
	case seg.End.ApproxEqual(back, s.tol):
		s.extendBack(seg.Start)
	case seg.Start.ApproxEqual(front, s.tol):
		s.extendFront(seg.End)
	default:
		return false
	}
	return true
}

// A segment that leads from a chain end back onto the terminal chain segment
// duplicates it. It is consumed without growing the chain.
func (s *stitcher[T]) extendBack(p types.Vec3[T]) {
	n := s.chain.len()
	back := s.chain.at(n - 1)
	if s.onSegment(s.chain.at(n-2), back, p) {
		return
	}
	if s.sameDirection(back.Sub(s.chain.at(n-2)), p.Sub(back)) {
		s.chain.set(n-1, p)
		return
	}
	s.chain.pushBack(p)
}

func (s *stitcher[T]) extendFront(p types.Vec3[T]) {
	front := s.chain.at(0)
	if s.onSegment(front, s.chain.at(1), p) {
		return
	}
	if s.sameDirection(front.Sub(p), s.chain.at(1).Sub(front)) {
		s.chain.set(0, p)
		return
	}
	s.chain.pushFront(p)
}

// Returns true if p lies on the segment a-b within the tolerance.
func (s *stitcher[T]) onSegment(a, b, p types.Vec3[T]) bool {
	ab := b.Sub(a)
	lenSq := ab.LenSq()
	if lenSq == 0 {
		return a.ApproxEqual(p, s.tol)
	}
	t := min(max(p.Sub(a).Dot(ab)/lenSq, 0), 1)
	return a.Add(ab.Mul(t)).ApproxEqual(p, s.tol)
}

// Returns true if a and b point the same way.
func (s *stitcher[T]) sameDirection(a, b types.Vec3[T]) bool {
	a, b = a.Normalize(), b.Normalize()
	return a.Dot(b) > 0 && a.Cross(b).LenSq() <= s.parTol
}

// Detect whether the chain ends met. Closed chains end with an exact copy of
// their first point; if the seam vertex lies on a straight edge it is
// dropped.
func (s *stitcher[T]) close() bool {
	n := s.chain.len()
	if n < 4 || !s.chain.at(0).ApproxEqual(s.chain.at(n-1), s.tol) {
		return false
	}

	s.chain.set(n-1, s.chain.at(0))
	incoming := s.chain.at(n - 1).Sub(s.chain.at(n - 2))
	outgoing := s.chain.at(1).Sub(s.chain.at(0))
	if n >= 5 && s.sameDirection(incoming, outgoing) {
		s.chain.popFront()
		s.chain.popBack()
		s.chain.pushBack(s.chain.at(0))
	}
	return true
}

// Flush the current chain to the output list and reset it.
func (s *stitcher[T]) emit() {
	defer s.chain.reset()

	points := s.chain.points()
	if len(points) < 2 {
		return
	}
	line := Polyline[T]{Points: points}
	if length := line.Length(); length*length <= s.tol {
		return
	}
	s.out = append(s.out, line)
}

// chain is a double ended point list. head stores the points preceding the
// chain start in reverse order so both ends grow by appending.
type chain[T types.Float] struct {
	head []types.Vec3[T]
	tail []types.Vec3[T]
}

func (c *chain[T]) start(seg types.Segment[T]) {
	c.tail = append(c.tail, seg.Start, seg.End)
}

func (c *chain[T]) len() int {
	return len(c.head) + len(c.tail)
}

func (c *chain[T]) at(index int) types.Vec3[T] {
	if index < len(c.head) {
		return c.head[len(c.head)-1-index]
	}
	return c.tail[index-len(c.head)]
}

func (c *chain[T]) set(index int, p types.Vec3[T]) {
	if index < len(c.head) {
		c.head[len(c.head)-1-index] = p
		return
	}
	c.tail[index-len(c.head)] = p
}

func (c *chain[T]) pushBack(p types.Vec3[T]) {
	c.tail = append(c.tail, p)
}

func (c *chain[T]) pushFront(p types.Vec3[T]) {
	c.head = append(c.head, p)
}

func (c *chain[T]) popBack() {
	if len(c.tail) > 0 {
		c.tail = c.tail[:len(c.tail)-1]
		return
	}
	c.head = c.head[1:]
}

func (c *chain[T]) popFront() {
	if len(c.head) > 0 {
		c.head = c.head[:len(c.head)-1]
		return
	}
	c.tail = c.tail[1:]
}

func (c *chain[T]) points() []types.Vec3[T] {
	out := make([]types.Vec3[T], 0, c.len())
	for i := len(c.head) - 1; i >= 0; i-- {
		out = append(out, c.head[i])
	}
	return append(out, c.tail...)
}

func (c *chain[T]) reset() {
	c.head = nil
	c.tail = nil
}
