package writer

import (
	"fmt"
	"path"
	"strings"

	"github.com/achilleasa/meshcut/log"
	"github.com/achilleasa/meshcut/mesh"
)

var logger = log.New("writer")

// Write a compiled mesh index to a zip file.
func WriteIndex(name string, m *mesh.Mesh[float32], filename string) error {
	return newZipIndexWriter(filename).Write(name, m)
}

// Write mesh sections to a file. The output format is selected by the file
// extension (.svg or .dxf).
func WriteContours(sections []mesh.Section[float32], filename string) error {
	switch ext := strings.ToLower(path.Ext(filename)); ext {
	case ".svg":
		return writeSVG(sections, filename)
	case ".dxf":
		return writeDXF(sections, filename)
	default:
		return fmt.Errorf("writer: unsupported contour format %q", ext)
	}
}
