package reader

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/achilleasa/meshcut/asset/writer"
	"github.com/achilleasa/meshcut/bvh"
	"github.com/achilleasa/meshcut/types"
	"github.com/hpinc/go3mf"
)

const cubeObj = `
o cube
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
v 0 0 1
v 1 0 1
v 0 1 1
v 1 1 1
f 1 3 4
f 1 4 2
f 5 6 8
f 5 8 7
f 1 2 6
f 1 6 5
f 3 7 8
f 3 8 4
f 1 5 7
f 1 7 3
f 2 4 8
f 2 8 6
`

func TestReadMeshAndCompiledIndex(t *testing.T) {
	dir := t.TempDir()
	objFile := filepath.Join(dir, "cube.obj")
	writeFile(t, objFile, cubeObj)

	m, err := ReadMesh(objFile, Options{Build: bvh.DefaultOptions()})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Indices()) != 12 {
		t.Fatalf("expected 12 triangles; got %d", len(m.Indices()))
	}
	if vol := m.Volume(); vol < 0.999 || vol > 1.001 {
		t.Fatalf("expected unit volume; got %f", vol)
	}

	zipFile := filepath.Join(dir, "cube.zip")
	if err = writer.WriteIndex("cube", m, zipFile); err != nil {
		t.Fatal(err)
	}

	restored, err := ReadMesh(zipFile, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Triangles(), restored.Triangles()) {
		t.Fatal("expected restored triangles to match the compiled mesh")
	}
	if !reflect.DeepEqual(m.Tree().Indices(), restored.Tree().Indices()) {
		t.Fatal("expected restored primitive order to match the compiled mesh")
	}
	if restored.Tree().Hierarchy().Len() != m.Tree().Hierarchy().Len() {
		t.Fatalf("expected %d BVH nodes; got %d", m.Tree().Hierarchy().Len(), restored.Tree().Hierarchy().Len())
	}

	mat := types.Translate4(types.Vec3[float32]{1, 0, 0})
	_, err = ReadMesh(zipFile, Options{Transform: &mat})
	if err == nil || !strings.Contains(err.Error(), "can not be transformed") {
		t.Fatalf("expected transform error for compiled index; got %v", err)
	}
}

func TestReadMeshWithTransform(t *testing.T) {
	objFile := filepath.Join(t.TempDir(), "cube.obj")
	writeFile(t, objFile, cubeObj)

	mat := types.ModelMatrix(types.Vec3[float32]{10, 0, 0}, types.Vec3[float32]{}, types.Vec3[float32]{2, 2, 2})
	m, err := ReadMesh(objFile, Options{Transform: &mat})
	if err != nil {
		t.Fatal(err)
	}

	expBounds := types.Box[float32]{Min: types.Vec3[float32]{10, 0, 0}, Max: types.Vec3[float32]{12, 2, 2}}
	if m.Bounds() != expBounds {
		t.Fatalf("expected bounds %v; got %v", expBounds, m.Bounds())
	}
}

func TestZipWithoutIndex(t *testing.T) {
	zipFile := filepath.Join(t.TempDir(), "empty.zip")
	f, err := os.Create(zipFile)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("readme.txt")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("not an index"))
	zw.Close()
	f.Close()

	_, err = ReadMesh(zipFile, Options{})
	if err == nil || !strings.Contains(err.Error(), "does not contain index.bin") {
		t.Fatalf("expected missing index error; got %v", err)
	}
}

func TestRead3MF(t *testing.T) {
	file := filepath.Join(t.TempDir(), "model.3mf")

	var model go3mf.Model
	for id := uint32(1); id <= 2; id++ {
		offset := float32(id) * 10
		model.Resources.Objects = append(model.Resources.Objects, &go3mf.Object{
			ID: id,
			Mesh: &go3mf.Mesh{
				Vertices: go3mf.Vertices{Vertex: []go3mf.Point3D{
					{offset, 0, 0}, {offset + 1, 0, 0}, {offset, 1, 0},
				}},
				Triangles: go3mf.Triangles{Triangle: []go3mf.Triangle{
					{V1: 0, V2: 1, V3: 2},
				}},
			},
		})
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: id})
	}

	f, err := os.Create(file)
	if err != nil {
		t.Fatal(err)
	}
	if err = go3mf.NewEncoder(f).Encode(&model); err != nil {
		t.Fatal(err)
	}
	f.Close()

	rawMesh, err := ReadRawMesh(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(rawMesh.Points) != 6 {
		t.Fatalf("expected 6 points; got %d", len(rawMesh.Points))
	}
	expIndices := [][3]int{{0, 1, 2}, {3, 4, 5}}
	if !reflect.DeepEqual(rawMesh.Indices, expIndices) {
		t.Fatalf("expected indices %v; got %v", expIndices, rawMesh.Indices)
	}
	if rawMesh.Points[3] != (types.Vec3[float32]{20, 0, 0}) {
		t.Fatalf("expected second object to start at (20, 0, 0); got %v", rawMesh.Points[3])
	}
}
