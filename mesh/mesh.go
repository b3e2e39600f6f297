// Package mesh provides an indexed triangle mesh backed by a BVH.
package mesh

import (
	"fmt"
	"sync"

	"github.com/achilleasa/meshcut/bvh"
	"github.com/achilleasa/meshcut/types"
)

// Mesh is an immutable indexed triangle mesh. Triangles are stored in BVH
// leaf order. Derived quantities are calculated lazily and cached.
type Mesh[T types.Float] struct {
	tree    *bvh.Tree[T, types.Triangle[T]]
	indices [][3]int
	points  []types.Vec3[T]

	areaOnce      sync.Once
	area          T
	volumeOnce    sync.Once
	volume        T
	centroidsOnce sync.Once
	centroids     []types.Vec3[T]
}

// New indexes the triangles described by indices into the points list.
func New[T types.Float](indices [][3]int, points []types.Vec3[T], opts bvh.Options) (*Mesh[T], error) {
	if err := validateIndices(indices, len(points)); err != nil {
		return nil, err
	}

	tree, permuted := bvh.BuildIndexed(indices, points, opts)
	return &Mesh[T]{tree: tree, indices: permuted, points: points}, nil
}

// FromTriangles indexes a triangle soup. Each triangle gets its own three
// points.
func FromTriangles[T types.Float](triangles []types.Triangle[T], opts bvh.Options) *Mesh[T] {
	points := make([]types.Vec3[T], 0, 3*len(triangles))
	indices := make([][3]int, len(triangles))
	for index, tri := range triangles {
		base := len(points)
		points = append(points, tri[0], tri[1], tri[2])
		indices[index] = [3]int{base, base + 1, base + 2}
	}

	tree, permuted := bvh.BuildIndexed(indices, points, opts)
	return &Mesh[T]{tree: tree, indices: permuted, points: points}
}

// Restore reassembles a mesh from previously built data. The indices must be
// in leaf order and order maps each triangle back to its original position.
func Restore[T types.Float](indices [][3]int, points []types.Vec3[T], order []int, nodes []bvh.NodeRecord[T]) (*Mesh[T], error) {
	if err := validateIndices(indices, len(points)); err != nil {
		return nil, err
	}

	h, err := bvh.HierarchyFromRecords(nodes, len(indices))
	if err != nil {
		return nil, err
	}

	triangles := make([]types.Triangle[T], len(indices))
	for slot, tri := range indices {
		triangles[slot] = types.Triangle[T]{points[tri[0]], points[tri[1]], points[tri[2]]}
	}
	tree, err := bvh.NewTree(h, triangles, order)
	if err != nil {
		return nil, err
	}

	return &Mesh[T]{tree: tree, indices: indices, points: points}, nil
}

func validateIndices(indices [][3]int, pointCount int) error {
	for triIndex, tri := range indices {
		for _, index := range tri {
			if index < 0 || index >= pointCount {
				return fmt.Errorf("mesh: triangle %d references point %d; mesh has %d points", triIndex, index, pointCount)
			}
		}
	}
	return nil
}

// Tree returns the BVH indexing the mesh triangles.
func (m *Mesh[T]) Tree() *bvh.Tree[T, types.Triangle[T]] {
	return m.tree
}

// Indices returns the triangle index triples in leaf order.
func (m *Mesh[T]) Indices() [][3]int {
	return m.indices
}

// Points returns the mesh points.
func (m *Mesh[T]) Points() []types.Vec3[T] {
	return m.points
}

// Triangles returns the mesh triangles in leaf order.
func (m *Mesh[T]) Triangles() []types.Triangle[T] {
	return m.tree.Primitives()
}

// Bounds returns the mesh bounding box.
func (m *Mesh[T]) Bounds() types.Box[T] {
	return m.tree.Bounds()
}

// Area returns the total surface area.
func (m *Mesh[T]) Area() T {
	m.areaOnce.Do(func() {
		for _, tri := range m.tree.Primitives() {
			m.area += tri.Area()
		}
	})
	return m.area
}

// Volume returns the enclosed volume using the divergence theorem. The
// result is only meaningful for closed, consistently wound meshes; inward
// facing meshes yield a negative volume.
func (m *Mesh[T]) Volume() T {
	m.volumeOnce.Do(func() {
		for _, tri := range m.tree.Primitives() {
			m.volume += tri[0].Dot(tri[1].Cross(tri[2]))
		}
		m.volume /= 6
	})
	return m.volume
}

// Centroids returns the centroid of each triangle in leaf order.
func (m *Mesh[T]) Centroids() []types.Vec3[T] {
	m.centroidsOnce.Do(func() {
		m.centroids = make([]types.Vec3[T], m.tree.Len())
		for slot, tri := range m.tree.Primitives() {
			m.centroids[slot] = tri.Centroid()
		}
	})
	return m.centroids
}
