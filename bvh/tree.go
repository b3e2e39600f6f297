package bvh

import (
	"fmt"

	"github.com/achilleasa/meshcut/types"
)

// Tree bundles a BVH hierarchy with the primitives it indexes. A tree is
// immutable once built and may be queried concurrently.
type Tree[T types.Float, P types.Bounded[T]] struct {
	hierarchy *Hierarchy[T]

	// Primitives in leaf order.
	primitives []P

	// The caller index of each primitive slot.
	indices []int
}

// NewTree assembles a tree from a previously built hierarchy and its
// primitives in leaf order.
func NewTree[T types.Float, P types.Bounded[T]](h *Hierarchy[T], primitives []P, indices []int) (*Tree[T, P], error) {
	if len(primitives) != len(indices) {
		return nil, fmt.Errorf("bvh: got %d primitives and %d indices", len(primitives), len(indices))
	}
	if h == nil || h.Len() == 0 {
		return nil, fmt.Errorf("bvh: missing hierarchy")
	}
	if root := h.Root(); root.Start != 0 || root.Length != len(primitives) {
		return nil, fmt.Errorf("bvh: root covers %d primitives; expected %d", root.Length, len(primitives))
	}
	return &Tree[T, P]{hierarchy: h, primitives: primitives, indices: indices}, nil
}

// Hierarchy returns the tree nodes.
func (t *Tree[T, P]) Hierarchy() *Hierarchy[T] {
	return t.hierarchy
}

// Primitives returns the indexed primitives in leaf order.
func (t *Tree[T, P]) Primitives() []P {
	return t.primitives
}

// Indices maps each primitive slot to the index of the primitive in the
// list originally passed to Build.
func (t *Tree[T, P]) Indices() []int {
	return t.indices
}

// Len returns the number of indexed primitives.
func (t *Tree[T, P]) Len() int {
	return len(t.primitives)
}

// Bounds returns the bounding box of all primitives.
func (t *Tree[T, P]) Bounds() types.Box[T] {
	return t.hierarchy.Root().Bounds
}

// Stats describe the shape of a built tree.
type Stats struct {
	Primitives  int
	Nodes       int
	Leaves      int
	MaxDepth    int
	MaxLeafSize int
}

// Stats collects tree statistics.
func (t *Tree[T, P]) Stats() Stats {
	st := Stats{
		Primitives: len(t.primitives),
		Nodes:      t.hierarchy.Len(),
		MaxDepth:   t.hierarchy.Depth(),
	}
	t.hierarchy.Walk(func(_ int, node Node[T], _ int) {
		if _, length, ok := node.Range(); ok {
			st.Leaves++
			st.MaxLeafSize = max(st.MaxLeafSize, length)
		}
	})
	return st
}

// BuildIndexed builds a BVH over an indexed triangle mesh. It returns the
// tree along with the index triples reordered to match the tree leaf order.
// The point list is shared with the caller and left untouched.
func BuildIndexed[T types.Float](indices [][3]int, points []types.Vec3[T], opts Options) (*Tree[T, types.Triangle[T]], [][3]int) {
	triangles := make([]types.Triangle[T], len(indices))
	for index, tri := range indices {
		triangles[index] = types.Triangle[T]{points[tri[0]], points[tri[1]], points[tri[2]]}
	}

	tree := Build[T](triangles, opts)
	permuted := make([][3]int, len(indices))
	for slot, index := range tree.indices {
		permuted[slot] = indices[index]
	}
	return tree, permuted
}
