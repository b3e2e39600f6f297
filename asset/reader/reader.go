package reader

import (
	"fmt"

	"github.com/achilleasa/meshcut/asset"
	"github.com/achilleasa/meshcut/bvh"
	"github.com/achilleasa/meshcut/log"
	"github.com/achilleasa/meshcut/mesh"
	"github.com/achilleasa/meshcut/types"
)

// RawMesh is an indexed triangle list parsed from a mesh file.
type RawMesh struct {
	Name    string
	Points  []types.Vec3[float32]
	Indices [][3]int
}

// Transform applies a transformation matrix to all mesh points.
func (m *RawMesh) Transform(mat types.Mat4) {
	for i, p := range m.Points {
		m.Points[i] = mat.TransformPoint(p)
	}
}

// BBox returns the bounding box of all referenced points.
func (m *RawMesh) BBox() types.Box[float32] {
	bbox := types.EmptyBox[float32]()
	for _, tri := range m.Indices {
		for _, index := range tri {
			bbox = bbox.UnionPoint(m.Points[index])
		}
	}
	return bbox
}

// The Reader interface is implemented by all mesh readers.
type Reader interface {
	// Read mesh definition from a resource.
	Read(*asset.Resource) (*RawMesh, error)
}

// Options control how a mesh file is loaded.
type Options struct {
	// BVH builder options.
	Build bvh.Options

	// An optional transformation applied to the mesh points before
	// indexing. Compiled indices can not be transformed.
	Transform *types.Mat4
}

var logger = log.New("mesh reader")

// Select a reader based on the resource extension.
func readerFor(res *asset.Resource) (Reader, error) {
	switch res.Ext() {
	case ".obj":
		return newWavefrontReader(), nil
	case ".3mf":
		return new3mfReader(), nil
	}
	return nil, fmt.Errorf("reader: unsupported file format %q", res.Ext())
}

// Read an uncompiled mesh file (.obj or .3mf).
func ReadRawMesh(filename string) (*RawMesh, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	reader, err := readerFor(res)
	if err != nil {
		return nil, err
	}
	return reader.Read(res)
}

// Read a mesh file and index it. Compiled (.zip) indices are restored
// without rebuilding the BVH.
func ReadMesh(filename string, opts Options) (*mesh.Mesh[float32], error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	if res.Ext() == ".zip" {
		if opts.Transform != nil {
			return nil, fmt.Errorf("reader: compiled index %q can not be transformed", filename)
		}
		return newZipIndexReader().Read(res)
	}

	reader, err := readerFor(res)
	if err != nil {
		return nil, err
	}
	raw, err := reader.Read(res)
	if err != nil {
		return nil, err
	}
	if opts.Transform != nil {
		raw.Transform(*opts.Transform)
	}

	logger.Infof("indexing %q (%d triangles, %d points)", raw.Name, len(raw.Indices), len(raw.Points))
	return mesh.New(raw.Indices, raw.Points, opts.Build)
}
