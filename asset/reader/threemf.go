package reader

import (
	"bytes"
	"fmt"
	"time"

	"github.com/achilleasa/meshcut/asset"
	"github.com/achilleasa/meshcut/log"
	"github.com/achilleasa/meshcut/types"
	"github.com/hpinc/go3mf"
)

type threeMFMeshReader struct {
	logger log.Logger
}

// Create a new 3MF mesh reader.
func new3mfReader() *threeMFMeshReader {
	return &threeMFMeshReader{
		logger: log.New("3mf reader"),
	}
}

// Read all mesh objects defined in a 3MF package and merge them into a
// single mesh.
func (r *threeMFMeshReader) Read(res *asset.Resource) (*RawMesh, error) {
	r.logger.Noticef(`parsing mesh from "%s"`, res.Path())
	start := time.Now()

	// 3MF files are zip archives which require an io.ReaderAt
	data, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	var model go3mf.Model
	decoder := go3mf.NewDecoder(bytes.NewReader(data), int64(len(data)))
	if err = decoder.Decode(&model); err != nil {
		return nil, fmt.Errorf("3mf reader: could not decode %s: %s", res.Path(), err)
	}

	rawMesh := &RawMesh{Name: res.Path()}
	objects := 0
	for _, obj := range model.Resources.Objects {
		if obj.Mesh == nil {
			continue
		}
		objects++

		base := len(rawMesh.Points)
		for _, v := range obj.Mesh.Vertices.Vertex {
			rawMesh.Points = append(rawMesh.Points, types.Vec3[float32]{v.X(), v.Y(), v.Z()})
		}
		for triIndex, tri := range obj.Mesh.Triangles.Triangle {
			indices := [3]int{base + int(tri.V1), base + int(tri.V2), base + int(tri.V3)}
			for _, index := range indices {
				if index >= len(rawMesh.Points) {
					return nil, fmt.Errorf("3mf reader: object %d triangle %d references unknown vertex %d", obj.ID, triIndex, index-base)
				}
			}
			rawMesh.Indices = append(rawMesh.Indices, indices)
		}
	}

	if objects == 0 {
		r.logger.Warningf("%s does not contain any mesh objects", res.Path())
	}

	r.logger.Noticef("parsed %d triangles from %d objects in %d ms", len(rawMesh.Indices), objects, time.Since(start).Nanoseconds()/1e6)
	return rawMesh, nil
}
