package bvh

import "github.com/achilleasa/meshcut/types"

// NodeKind distinguishes leaves from internal nodes.
type NodeKind uint8

const (
	// A leaf references a contiguous range of primitives.
	LeafNode NodeKind = iota

	// An internal node references two child nodes.
	InternalNode
)

// Node is a single BVH tree node. Every node records the contiguous range of
// primitives stored under it; only leaves expose that range through Range.
// Internal nodes expose their child indices through Children.
type Node[T types.Float] struct {
	Bounds types.Box[T]

	// First primitive slot and primitive count of the subtree.
	Start  int
	Length int

	kind     NodeKind
	children [2]int
}

func newLeaf[T types.Float](bounds types.Box[T], start, length int) Node[T] {
	return Node[T]{Bounds: bounds, Start: start, Length: length, kind: LeafNode}
}

// Kind returns the node type.
func (n Node[T]) Kind() NodeKind {
	return n.kind
}

// IsLeaf returns true for leaf nodes.
func (n Node[T]) IsLeaf() bool {
	return n.kind == LeafNode
}

// Range returns the primitive slots covered by a leaf. The ok flag is false
// for internal nodes.
func (n Node[T]) Range() (start, length int, ok bool) {
	if n.kind != LeafNode {
		return 0, 0, false
	}
	return n.Start, n.Length, true
}

// Children returns the indices of the two child nodes. The ok flag is false
// for leaves.
func (n Node[T]) Children() (first, second int, ok bool) {
	if n.kind != InternalNode {
		return 0, 0, false
	}
	return n.children[0], n.children[1], true
}

// Cost returns the SAH cost of treating the node as a leaf:
// bbox area * primitive count.
func (n Node[T]) Cost() T {
	return sahCost(n.Bounds, n.Length)
}

func sahCost[T types.Float](bounds types.Box[T], count int) T {
	if count == 0 {
		return 0
	}
	return bounds.SurfaceArea() * T(count)
}
