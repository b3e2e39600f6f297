package bvh

import "github.com/achilleasa/meshcut/types"

// A Tester supplies the intersection tests used by the tree queries.
//
// TestBox is called for every visited node and must return false for nodes
// that cannot contain a hit. The returned distance has to be a lower bound
// for the distance of any primitive hit inside the box; nearest-hit queries
// use it to prune nodes. TestPrimitive tests an individual primitive and
// returns the hit distance.
type Tester[T types.Float, P any] interface {
	TestBox(bounds types.Box[T]) (T, bool)
	TestPrimitive(prim P) (T, bool)
}

// Hit describes a primitive intersection.
type Hit[T types.Float] struct {
	Distance T

	// The primitive slot in tree order.
	Slot int

	// The primitive index in the list passed to the builder.
	Index int
}

// Nearest returns the smallest hit distance over all primitives.
func (t *Tree[T, P]) Nearest(tester Tester[T, P]) (T, bool) {
	best := types.Inf[T]()
	found := false
	t.traverse(tester, &best, func(_ int, dist T) bool {
		if dist < best {
			best = dist
			found = true
		}
		return true
	})
	return best, found
}

// Any returns true as soon as a primitive hit is detected.
func (t *Tree[T, P]) Any(tester Tester[T, P]) bool {
	found := false
	t.traverse(tester, nil, func(_ int, _ T) bool {
		found = true
		return false
	})
	return found
}

// NearestHit returns the closest hit along with the primitive that produced
// it. When several primitives share the minimum distance the first one
// encountered wins.
func (t *Tree[T, P]) NearestHit(tester Tester[T, P]) (Hit[T], bool) {
	best := types.Inf[T]()
	hit := Hit[T]{Distance: best, Slot: -1, Index: -1}
	t.traverse(tester, &best, func(slot int, dist T) bool {
		if dist < best {
			best = dist
			hit = Hit[T]{Distance: dist, Slot: slot, Index: t.indices[slot]}
		}
		return true
	})
	return hit, hit.Slot != -1
}

// All returns every primitive hit in traversal order.
func (t *Tree[T, P]) All(tester Tester[T, P]) []Hit[T] {
	var hits []Hit[T]
	t.traverse(tester, nil, func(slot int, dist T) bool {
		hits = append(hits, Hit[T]{Distance: dist, Slot: slot, Index: t.indices[slot]})
		return true
	})
	return hits
}

// Run a depth-first traversal of the tree. Nodes rejected by the tester or
// whose box distance exceeds *limit (when limit is not nil) are pruned.
// visit is invoked for each primitive hit and stops the traversal by
// returning false.
func (t *Tree[T, P]) traverse(tester Tester[T, P], limit *T, visit func(slot int, dist T) bool) {
	h := t.hierarchy

	// Each popped internal node pushes two children
	stack := make([]int, 1, 2*h.Depth()+1)
	stack[0] = 0
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := h.nodes[index]
		dist, ok := tester.TestBox(node.Bounds)
		if !ok || (limit != nil && dist > *limit) {
			continue
		}

		if first, second, internal := node.Children(); internal {
			stack = append(stack, second, first)
			continue
		}

		for slot := node.Start; slot < node.Start+node.Length; slot++ {
			dist, ok := tester.TestPrimitive(t.primitives[slot])
			if !ok {
				continue
			}
			if !visit(slot, dist) {
				return
			}
		}
	}
}
