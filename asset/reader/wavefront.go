package reader

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/meshcut/asset"
	"github.com/achilleasa/meshcut/log"
	"github.com/achilleasa/meshcut/types"
)

type wavefrontMeshReader struct {
	logger log.Logger

	// The parsed mesh.
	rawMesh *RawMesh

	// Object and group names encountered while parsing.
	objectNames []string

	// An error stack that provides additional error information when
	// mesh files include other files.
	errStack []string
}

// Create a new wavefront mesh reader.
func newWavefrontReader() *wavefrontMeshReader {
	return &wavefrontMeshReader{
		logger:   log.New("wavefront reader"),
		rawMesh:  &RawMesh{},
		errStack: make([]string, 0),
	}
}

// Read mesh definition.
func (r *wavefrontMeshReader) Read(res *asset.Resource) (*RawMesh, error) {
	r.logger.Noticef(`parsing mesh from "%s"`, res.Path())
	start := time.Now()

	err := r.parse(res)
	if err != nil {
		return nil, err
	}

	switch len(r.objectNames) {
	case 0:
		r.rawMesh.Name = "default"
	case 1:
		r.rawMesh.Name = r.objectNames[0]
	default:
		r.rawMesh.Name = strings.Join(r.objectNames, "+")
		r.logger.Infof("merged %d objects into a single mesh", len(r.objectNames))
	}

	r.logger.Noticef("parsed %d triangles in %d ms", len(r.rawMesh.Indices), time.Since(start).Nanoseconds()/1e6)
	return r.rawMesh, nil
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontMeshReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = strings.Trim(
			fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
			"\n",
		)
	} else {
		errMsg = strings.Trim(
			fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n")),
			"\n",
		)
	}

	return errors.New(errMsg)
}

// Push a frame to the error stack.
func (r *wavefrontMeshReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontMeshReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Parse wavefront object format. Only geometry statements are processed;
// normals, texture coordinates and materials are skipped.
func (r *wavefrontMeshReader) parse(res *asset.Resource) error {
	var lineNum int = 0

	// The main obj file may include (call) several other object files. Each
	// object file uses 1-based indices (when they are positive) relative to
	// its own vertex list.
	relVertexOffset := len(r.rawMesh.Points)

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "call"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))

			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}

			err = r.parse(incRes)
			incRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.rawMesh.Points = append(r.rawMesh.Points, v)
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}
			r.objectNames = append(r.objectNames, lineTokens[1])
		case "f":
			triList, err := r.parseFace(lineTokens, relVertexOffset)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.rawMesh.Indices = append(r.rawMesh.Indices, triList...)
		case "vn", "vt", "mtllib", "usemtl", "s":
		default:
			r.logger.Debugf("[%s: %d] skipping unsupported statement %q", res.Path(), lineNum, lineTokens[0])
		}
	}

	return scanner.Err()
}

// Parse face definition. Each face definition consists of 3 or more
// arguments, one for each vertex. Each one of the vertex arguments is
// comprised of 1, 2 or 3 indices separated by a slash character:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Only the vertex index is used. Indices start from 1 and may be negative
// to indicate an offset off the end of the vertex list. Polygons with more
// than 3 vertices are split into a triangle fan.
func (r *wavefrontMeshReader) parseFace(lineTokens []string, relVertexOffset int) ([][3]int, error) {
	if len(lineTokens) < 4 {
		return nil, fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	vertices := make([]int, len(lineTokens)-1)
	expIndices := 0
	for arg := 0; arg < len(vertices); arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return nil, fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(r.rawMesh.Points), relVertexOffset)
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg] = vOffset
	}

	triangles := make([][3]int, 0, len(vertices)-2)
	for i := 1; i < len(vertices)-1; i++ {
		triangles = append(triangles, [3]int{vertices[0], vertices[i], vertices[i+1]})
	}
	return triangles, nil
}

// Given an index for a face coord calculate the proper offset into the
// vertex list. Wavefront format can also use negative indices to reference
// elements from the end of the list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int = 0
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = relOffset + int(index-1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3[float32], error) {
	if len(lineTokens) < 4 {
		return types.Vec3[float32]{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	var v types.Vec3[float32]
	for axis := 0; axis < 3; axis++ {
		val, err := strconv.ParseFloat(lineTokens[axis+1], 32)
		if err != nil {
			return types.Vec3[float32]{}, err
		}
		v[axis] = float32(val)
	}

	return v, nil
}
