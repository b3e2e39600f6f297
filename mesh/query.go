package mesh

import (
	"runtime"
	"sort"

	"github.com/achilleasa/meshcut/bvh"
	"github.com/achilleasa/meshcut/contour"
	"github.com/achilleasa/meshcut/types"
)

// RayCast returns the closest triangle hit by the ray.
func (m *Mesh[T]) RayCast(ray types.Ray[T]) (bvh.Hit[T], bool) {
	return m.tree.NearestHit(bvh.RayTester[T]{Ray: ray})
}

// Intersects returns true if the ray hits any triangle.
func (m *Mesh[T]) Intersects(ray types.Ray[T]) bool {
	return m.tree.Any(bvh.RayTester[T]{Ray: ray})
}

// RayHits returns all triangles hit by the ray sorted by distance.
func (m *Mesh[T]) RayHits(ray types.Ray[T]) []bvh.Hit[T] {
	hits := m.tree.All(bvh.RayTester[T]{Ray: ray})
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// The direction used for parity tests is skewed so it is unlikely to graze
// axis aligned edges.
var parityDir = [3]float64{0.5773, 0.5774, 0.5775}

// Contains reports whether p lies inside a closed mesh by counting how many
// surface crossings a ray starting at p makes. Hits closer than the float
// tolerance to the previous one are treated as a single crossing through a
// shared edge.
func (m *Mesh[T]) Contains(p types.Vec3[T]) bool {
	if !m.Bounds().Contains(p) {
		return false
	}

	ray := types.NewRay(p, types.Vec3[T]{T(parityDir[0]), T(parityDir[1]), T(parityDir[2])})
	hits := m.RayHits(ray)
	crossings := 0
	last := -types.Inf[T]()
	for _, hit := range hits {
		if hit.Distance-last > types.Epsilon[T]() {
			crossings++
		}
		last = hit.Distance
	}
	return crossings%2 == 1
}

// Slice cuts the mesh with a plane and stitches the resulting segments into
// polylines.
func (m *Mesh[T]) Slice(plane types.Plane[T], opts contour.Options[T]) []contour.Polyline[T] {
	return contour.Stitch(bvh.Slice(m.tree, plane), opts)
}

// Section is a single cross-section of a mesh.
type Section[T types.Float] struct {
	Plane     types.Plane[T]
	Polylines []contour.Polyline[T]
}

// SliceStack cuts the mesh with parallel planes perpendicular to normal at
// offsets from, from+step, ... up to and including to. Sections are
// calculated by a pool of NumCPU workers and returned in offset order.
func (m *Mesh[T]) SliceStack(normal types.Vec3[T], from, to, step T, opts contour.Options[T]) []Section[T] {
	count := StackLevels(from, to, step)
	if count == 0 {
		return nil
	}

	n := normal.Normalize()
	sections := make([]Section[T], count)
	for index := range sections {
		sections[index].Plane = types.Plane[T]{Normal: n, Offset: from + T(index)*step}
	}

	type result struct {
		index     int
		polylines []contour.Polyline[T]
	}
	workChan := make(chan int, count)
	resChan := make(chan result, count)
	for index := range sections {
		workChan <- index
	}
	close(workChan)

	for worker := min(runtime.NumCPU(), count); worker > 0; worker-- {
		go func() {
			for index := range workChan {
				resChan <- result{index: index, polylines: m.Slice(sections[index].Plane, opts)}
			}
		}()
	}

	for pending := count; pending > 0; pending-- {
		res := <-resChan
		sections[res.index].Polylines = res.polylines
	}
	return sections
}

// StackLevels returns the number of planes SliceStack produces for the given
// range and step.
func StackLevels[T types.Float](from, to, step T) int {
	if step <= 0 || to < from {
		return 0
	}
	return int((to-from)/step+types.Epsilon[T]()) + 1
}
