package bvh

import (
	"fmt"

	"github.com/achilleasa/meshcut/types"
)

// Hierarchy stores BVH nodes as a contiguous list. The root is always the
// node at index 0 and nodes reference their children by index. Nodes are
// only ever appended so indices remain stable.
type Hierarchy[T types.Float] struct {
	nodes []Node[T]
	depth int
}

func newHierarchy[T types.Float](capacity int) *Hierarchy[T] {
	return &Hierarchy[T]{nodes: make([]Node[T], 0, capacity)}
}

// Len returns the number of nodes.
func (h *Hierarchy[T]) Len() int {
	return len(h.nodes)
}

// At returns the node at the given index.
func (h *Hierarchy[T]) At(index int) Node[T] {
	return h.nodes[index]
}

// Root returns the root node.
func (h *Hierarchy[T]) Root() Node[T] {
	return h.nodes[0]
}

// Depth returns the depth of the deepest node; a tree with a single leaf
// has depth 0.
func (h *Hierarchy[T]) Depth() int {
	return h.depth
}

// Trim releases any spare capacity held by the node list.
func (h *Hierarchy[T]) Trim() {
	if cap(h.nodes) == len(h.nodes) {
		return
	}
	trimmed := make([]Node[T], len(h.nodes))
	copy(trimmed, h.nodes)
	h.nodes = trimmed
}

// Walk visits nodes depth-first starting at the root and passes each node
// along with its index and depth to fn.
func (h *Hierarchy[T]) Walk(fn func(index int, node Node[T], depth int)) {
	if len(h.nodes) == 0 {
		return
	}

	type frame struct{ index, depth int }
	stack := make([]frame, 1, 2*h.depth+1)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := h.nodes[f.index]
		fn(f.index, node, f.depth)
		if first, second, ok := node.Children(); ok {
			stack = append(stack, frame{second, f.depth + 1}, frame{first, f.depth + 1})
		}
	}
}

// Append a node and return its index.
func (h *Hierarchy[T]) add(node Node[T]) int {
	h.nodes = append(h.nodes, node)
	return len(h.nodes) - 1
}

// Flip a leaf into an internal node pointing to the given children.
func (h *Hierarchy[T]) setChildren(parent, first, second int) {
	h.nodes[parent].kind = InternalNode
	h.nodes[parent].children = [2]int{first, second}
}

// NodeRecord is a flat, exported representation of a node suitable for
// serialization.
type NodeRecord[T types.Float] struct {
	Min, Max      [3]T
	Start, Length int32
	First, Second int32
	Internal      bool
}

// Records converts the hierarchy into a list of node records.
func (h *Hierarchy[T]) Records() []NodeRecord[T] {
	records := make([]NodeRecord[T], len(h.nodes))
	for index, node := range h.nodes {
		records[index] = NodeRecord[T]{
			Min:      node.Bounds.Min,
			Max:      node.Bounds.Max,
			Start:    int32(node.Start),
			Length:   int32(node.Length),
			First:    int32(node.children[0]),
			Second:   int32(node.children[1]),
			Internal: node.kind == InternalNode,
		}
	}
	return records
}

// HierarchyFromRecords rebuilds a hierarchy from a list of node records
// indexing primCount primitives.
func HierarchyFromRecords[T types.Float](records []NodeRecord[T], primCount int) (*Hierarchy[T], error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("bvh: hierarchy contains no nodes")
	}

	h := newHierarchy[T](len(records))
	depths := make([]int, len(records))
	for index, rec := range records {
		start, length := int(rec.Start), int(rec.Length)
		if start < 0 || length < 0 || start+length > primCount {
			return nil, fmt.Errorf("bvh: node %d references primitives [%d, %d) outside [0, %d)", index, start, start+length, primCount)
		}

		node := Node[T]{
			Bounds: types.Box[T]{Min: rec.Min, Max: rec.Max},
			Start:  start,
			Length: length,
			kind:   LeafNode,
		}
		if rec.Internal {
			first, second := int(rec.First), int(rec.Second)
			// Children are always appended after their parent
			if first <= index || second <= index || first >= len(records) || second >= len(records) {
				return nil, fmt.Errorf("bvh: node %d has invalid child indices (%d, %d)", index, first, second)
			}
			node.kind = InternalNode
			node.children = [2]int{first, second}
			depths[first] = depths[index] + 1
			depths[second] = depths[index] + 1
			h.depth = max(h.depth, depths[index]+1)
		}
		h.add(node)
	}

	if root := h.nodes[0]; root.Start != 0 || root.Length != primCount {
		return nil, fmt.Errorf("bvh: root node covers primitives [%d, %d) instead of [0, %d)", root.Start, root.Start+root.Length, primCount)
	}

	// Children split the parent range in two and every node other than the
	// root has exactly one parent, so leaves cover each primitive once.
	parents := make([]int, len(records))
	for index, node := range h.nodes {
		first, second, ok := node.Children()
		if !ok {
			continue
		}
		left, right := h.nodes[first], h.nodes[second]
		if first == second || left.Start != node.Start || right.Start != left.Start+left.Length || left.Length+right.Length != node.Length {
			return nil, fmt.Errorf("bvh: children (%d, %d) of node %d do not partition primitives [%d, %d)", first, second, index, node.Start, node.Start+node.Length)
		}
		parents[first]++
		parents[second]++
	}
	for index := 1; index < len(parents); index++ {
		if parents[index] != 1 {
			return nil, fmt.Errorf("bvh: node %d is referenced by %d parents", index, parents[index])
		}
	}

	return h, nil
}
