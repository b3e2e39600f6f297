// Package index defines the serialized form of an indexed mesh.
package index

import (
	"github.com/achilleasa/meshcut/bvh"
	"github.com/achilleasa/meshcut/mesh"
	"github.com/achilleasa/meshcut/types"
)

// The name of the gob payload inside a compiled index archive.
const DataFile = "index.bin"

// Index is the gob encoded payload of a compiled mesh. Triangles are stored
// in BVH leaf order.
type Index struct {
	Name    string
	Points  [][3]float32
	Indices [][3]int32
	Order   []int32
	Nodes   []bvh.NodeRecord[float32]
}

// FromMesh captures a mesh into its serializable form.
func FromMesh(name string, m *mesh.Mesh[float32]) *Index {
	idx := &Index{
		Name:    name,
		Points:  make([][3]float32, len(m.Points())),
		Indices: make([][3]int32, len(m.Indices())),
		Order:   make([]int32, len(m.Indices())),
		Nodes:   m.Tree().Hierarchy().Records(),
	}
	for i, p := range m.Points() {
		idx.Points[i] = p
	}
	for i, tri := range m.Indices() {
		idx.Indices[i] = [3]int32{int32(tri[0]), int32(tri[1]), int32(tri[2])}
	}
	for i, order := range m.Tree().Indices() {
		idx.Order[i] = int32(order)
	}
	return idx
}

// Mesh restores the indexed mesh without rebuilding the BVH.
func (idx *Index) Mesh() (*mesh.Mesh[float32], error) {
	points := make([]types.Vec3[float32], len(idx.Points))
	for i, p := range idx.Points {
		points[i] = p
	}
	indices := make([][3]int, len(idx.Indices))
	for i, tri := range idx.Indices {
		indices[i] = [3]int{int(tri[0]), int(tri[1]), int(tri[2])}
	}
	order := make([]int, len(idx.Order))
	for i, o := range idx.Order {
		order[i] = int(o)
	}
	return mesh.Restore(indices, points, order, idx.Nodes)
}
