package bvh

import (
	"time"

	"github.com/achilleasa/meshcut/log"
	"github.com/achilleasa/meshcut/types"
)

const (
	// Default bound on the recursion depth of the builder.
	DefaultMaxDepth = 64

	// Default number of split candidates evaluated per axis.
	DefaultSplitTests = 8

	minSplitTests = 2
	maxSplitTests = 32
)

// Options control the BVH builder.
type Options struct {
	// Nodes deeper than this level are not split any further.
	MaxDepth int

	// The number of evenly spaced split positions evaluated for each axis.
	// Values outside [2, 32] are clamped.
	SplitTests int
}

// DefaultOptions returns the default builder options.
func DefaultOptions() Options {
	return Options{
		MaxDepth:   DefaultMaxDepth,
		SplitTests: DefaultSplitTests,
	}
}

func (opts Options) normalize() Options {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.SplitTests == 0 {
		opts.SplitTests = DefaultSplitTests
	}
	opts.SplitTests = min(max(opts.SplitTests, minSplitTests), maxSplitTests)
	return opts
}

// The bounds and centroid of a primitive are calculated once and then
// shuffled around by the partitioning step.
type buildItem[T types.Float] struct {
	bounds   types.Box[T]
	centroid types.Vec3[T]
	index    int
}

type buildJob struct {
	node  int
	depth int
}

type splitCandidate[T types.Float] struct {
	axis  int
	level T
	cost  T

	left, right types.Box[T]
}

type stats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type builder[T types.Float] struct {
	logger    log.Logger
	opts      Options
	items     []buildItem[T]
	hierarchy *Hierarchy[T]
	stats     stats
}

// Build constructs a BVH over a list of primitives. The builder scores splits
// using the surface area heuristic (SAH):
//
// cost = left count * left BBOX area + right count * right BBOX area
//
// and only splits a node when the best candidate is cheaper than keeping the
// node as a leaf. The caller's slice is not modified; the returned tree
// holds its own copy of the primitives, reordered so that every leaf covers
// a contiguous range.
func Build[T types.Float, P types.Bounded[T]](primitives []P, opts Options) *Tree[T, P] {
	b := &builder[T]{
		logger: log.New("bvh builder"),
		opts:   opts.normalize(),
		items:  make([]buildItem[T], len(primitives)),
	}

	start := time.Now()
	rootBounds := types.EmptyBox[T]()
	for index, prim := range primitives {
		b.items[index] = buildItem[T]{
			bounds:   prim.Bounds(),
			centroid: prim.Centroid(),
			index:    index,
		}
		rootBounds = rootBounds.Union(b.items[index].bounds)
	}

	// A full binary tree over n leaves has 2n-1 nodes
	b.hierarchy = newHierarchy[T](max(2*len(primitives)-1, 1))
	b.hierarchy.add(newLeaf(rootBounds, 0, len(primitives)))
	b.build()
	b.hierarchy.Trim()

	tree := &Tree[T, P]{
		hierarchy:  b.hierarchy,
		primitives: make([]P, len(primitives)),
		indices:    make([]int, len(primitives)),
	}
	for slot, item := range b.items {
		tree.primitives[slot] = primitives[item.index]
		tree.indices[slot] = item.index
	}

	b.stats.nodes = b.hierarchy.Len()
	b.stats.leafs = (b.stats.nodes + 1) / 2
	b.logger.Debugf(
		"BVH tree build time: %d ms, primitives: %d, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		len(primitives), b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)
	return tree
}

// Process split jobs until the work stack drains. An explicit stack keeps
// deep, unbalanced trees from exhausting the goroutine stack.
func (b *builder[T]) build() {
	stack := []buildJob{{node: 0, depth: 0}}
	for len(stack) > 0 {
		job := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := b.hierarchy.nodes[job.node]
		if job.depth > b.opts.MaxDepth || node.Length < 2 {
			continue
		}

		split, found := b.bestSplit(node)
		if !found || !(split.cost < node.Cost()) {
			continue
		}

		mid := b.partition(node.Start, node.Length, split.axis, split.level)
		leftLength := mid - node.Start
		if leftLength < 1 || leftLength > node.Length-1 {
			continue
		}

		first := b.hierarchy.add(newLeaf(split.left, node.Start, leftLength))
		second := b.hierarchy.add(newLeaf(split.right, mid, node.Length-leftLength))
		b.hierarchy.setChildren(job.node, first, second)

		childDepth := job.depth + 1
		b.hierarchy.depth = max(b.hierarchy.depth, childDepth)
		b.stats.maxDepth = b.hierarchy.depth
		stack = append(stack, buildJob{first, childDepth}, buildJob{second, childDepth})
	}
}

// Evaluate SplitTests evenly spaced candidates along each axis and return
// the one with the lowest SAH cost.
func (b *builder[T]) bestSplit(node Node[T]) (best splitCandidate[T], found bool) {
	best.cost = types.Inf[T]()

	side := node.Bounds.Size()
	tests := b.opts.SplitTests
	for axis := 0; axis < 3; axis++ {
		if side[axis] <= 0 {
			continue
		}

		for test := 1; test <= tests; test++ {
			level := node.Bounds.Min[axis] + side[axis]*T(test)/T(tests+1)
			candidate := b.scoreSplit(node.Start, node.Length, axis, level)
			if candidate.cost < best.cost {
				best = candidate
				found = true
			}
		}
	}

	return best, found
}

// Score splitting the items in [start, start+length) at level along axis.
// Splits generating an empty partition get an infinite cost.
func (b *builder[T]) scoreSplit(start, length, axis int, level T) splitCandidate[T] {
	candidate := splitCandidate[T]{
		axis:  axis,
		level: level,
		left:  types.EmptyBox[T](),
		right: types.EmptyBox[T](),
	}

	leftCount, rightCount := 0, 0
	for _, item := range b.items[start : start+length] {
		if item.centroid[axis] < level {
			leftCount++
			candidate.left = candidate.left.Union(item.bounds)
		} else {
			rightCount++
			candidate.right = candidate.right.Union(item.bounds)
		}
	}

	if leftCount == 0 || rightCount == 0 {
		candidate.cost = types.Inf[T]()
		return candidate
	}

	candidate.cost = sahCost(candidate.left, leftCount) + sahCost(candidate.right, rightCount)
	return candidate
}

// Reorder the items in [start, start+length) so that items whose centroid
// lies below level come first. Returns the index of the first item of the
// right partition.
func (b *builder[T]) partition(start, length, axis int, level T) int {
	i, j := start, start+length-1
	for i <= j {
		switch {
		case b.items[i].centroid[axis] < level:
			i++
		case !(b.items[j].centroid[axis] < level):
			j--
		default:
			b.items[i], b.items[j] = b.items[j], b.items[i]
			i++
			j--
		}
	}
	return i
}
