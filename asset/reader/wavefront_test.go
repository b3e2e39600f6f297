package reader

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/achilleasa/meshcut/asset"
	"github.com/achilleasa/meshcut/types"
)

func mockResource(payload string) *asset.Resource {
	return asset.NewResourceFromStream("embedded.obj", strings.NewReader(payload))
}

func TestVec3Parser(t *testing.T) {
	expError := `unsupported syntax for "v"; expected 3 arguments; got 0`
	_, err := parseVec3([]string{"v"})
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	_, err = parseVec3([]string{"v", "not-a-float", "2", "3"})
	if err == nil {
		t.Fatal("expected to get a parse error")
	}

	v, err := parseVec3([]string{"v", "3.14", "0", "0.4"})
	if err != nil {
		t.Fatal(err)
	}

	expVal := types.Vec3[float32]{3.14, 0, 0.4}
	if !reflect.DeepEqual(v, expVal) {
		t.Fatalf("expected parsed value to be %v; got %v", expVal, v)
	}
}

func TestSelectFaceCoordinate(t *testing.T) {
	expError := "index out of bounds"
	type spec struct {
		in        string
		listLen   int
		relOffset int
		out       int
		expError  string
	}
	specs := []spec{
		{"2", 1, 0, -1, expError},
		{"-2", 1, 0, -1, expError},
		{"1", 10, 0, 0, ""}, // indices are 1-based
		{"-1", 10, 0, 9, ""},
		{"1", 10, 4, 4, ""}, // relative to the included file
	}

	for idx, s := range specs {
		v, err := selectFaceCoordIndex(s.in, s.listLen, s.relOffset)
		if s.expError != "" && (err == nil || err.Error() != s.expError) {
			t.Fatalf("[spec %d] expected error %s; got %v", idx, s.expError, err)
		} else if v != s.out {
			t.Fatalf("[spec %d] expected index to be %d; got %d", idx, s.out, v)
		}
	}
}

func TestParseSingleFacedObject(t *testing.T) {
	payload := `
o testObj
v 0 0 0
v 1 0 0
v 0 1 0
vn 1 0 0
vt 0 0
# Comment
usemtl foo
s off
f 1/1/1 2/1/1 -1/1/1
`

	r := newWavefrontReader()
	rawMesh, err := r.Read(mockResource(payload))
	if err != nil {
		t.Fatal(err)
	}

	if rawMesh.Name != "testObj" {
		t.Fatalf("expected mesh name to be testObj; got %s", rawMesh.Name)
	}
	if len(rawMesh.Points) != 3 {
		t.Fatalf("expected 3 points; got %d", len(rawMesh.Points))
	}
	expIndices := [][3]int{{0, 1, 2}}
	if !reflect.DeepEqual(rawMesh.Indices, expIndices) {
		t.Fatalf("expected indices %v; got %v", expIndices, rawMesh.Indices)
	}
}

func TestParsePolygonFan(t *testing.T) {
	payload := `
o a
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
f 1 2 3 4
o b
f -1 -4 -3
`

	r := newWavefrontReader()
	rawMesh, err := r.Read(mockResource(payload))
	if err != nil {
		t.Fatal(err)
	}

	if rawMesh.Name != "a+b" {
		t.Fatalf("expected merged mesh name to be a+b; got %s", rawMesh.Name)
	}
	expIndices := [][3]int{{0, 1, 2}, {0, 2, 3}, {4, 1, 2}}
	if !reflect.DeepEqual(rawMesh.Indices, expIndices) {
		t.Fatalf("expected indices %v; got %v", expIndices, rawMesh.Indices)
	}

	bbox := rawMesh.BBox()
	expBBox := types.Box[float32]{Max: types.Vec3[float32]{1, 1, 1}}
	if bbox != expBBox {
		t.Fatalf("expected bbox %v; got %v", expBBox, bbox)
	}
}

func TestParseErrors(t *testing.T) {
	type spec struct {
		payload  string
		expError string
	}
	specs := []spec{
		{"v 1 2", `[embedded.obj: 1] error: unsupported syntax for "v"; expected 3 arguments; got 2`},
		{"v 0 0 0\nf 1 1", `[embedded.obj: 2] error: unsupported syntax for "f"; expected at least 3 arguments; got 2`},
		{"v 0 0 0\nf 1 2 3", `[embedded.obj: 2] error: could not parse vertex coord for face argument 1: index out of bounds`},
		{"v 0 0 0\nv 0 0 0\nv 0 0 0\nf 1/1 2 3", `[embedded.obj: 4] error: expected each face argument to contain 2 indices; arg 1 contains 1 indices`},
		{"v 0 0 0\nf /1 1 1", `[embedded.obj: 2] error: face argument 0 does not include a vertex index`},
		{"o", `[embedded.obj: 1] error: unsupported syntax for "o"; expected 1 argument for object name; got 0`},
		{"call", `[embedded.obj: 1] error: unsupported syntax for "call"; expected 1 argument; got 0`},
	}

	for idx, s := range specs {
		_, err := newWavefrontReader().Read(mockResource(s.payload))
		if err == nil || err.Error() != s.expError {
			t.Fatalf("[spec %d] expected error %q; got %v", idx, s.expError, err)
		}
	}
}

func TestCallIncludes(t *testing.T) {
	dir := t.TempDir()
	mainFile := filepath.Join(dir, "main.obj")
	writeFile(t, mainFile, `
v 5 5 5
call part.obj
f 1 2 3
`)
	writeFile(t, filepath.Join(dir, "part.obj"), `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)

	rawMesh, err := ReadRawMesh(mainFile)
	if err != nil {
		t.Fatal(err)
	}

	// The included file indexes its own vertices
	expIndices := [][3]int{{1, 2, 3}, {0, 1, 2}}
	if !reflect.DeepEqual(rawMesh.Indices, expIndices) {
		t.Fatalf("expected indices %v; got %v", expIndices, rawMesh.Indices)
	}

	writeFile(t, mainFile, "call missing.obj\n")
	_, err = ReadRawMesh(mainFile)
	if err == nil || !strings.Contains(err.Error(), "referenced from") {
		t.Fatalf("expected error to include the include stack; got %v", err)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	file := filepath.Join(t.TempDir(), "mesh.stl")
	writeFile(t, file, "solid")

	_, err := ReadRawMesh(file)
	expError := `reader: unsupported file format ".stl"`
	if err == nil || err.Error() != expError {
		t.Fatalf("expected error %q; got %v", expError, err)
	}
}

func writeFile(t *testing.T, file, payload string) {
	if err := os.WriteFile(file, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}
}
