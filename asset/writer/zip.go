package writer

import (
	"archive/zip"
	"encoding/gob"
	"os"
	"time"

	"github.com/achilleasa/meshcut/asset/index"
	"github.com/achilleasa/meshcut/mesh"
)

type zipIndexWriter struct {
	indexFile string
}

// Create a new zip index writer
func newZipIndexWriter(indexFile string) *zipIndexWriter {
	return &zipIndexWriter{
		indexFile: indexFile,
	}
}

// Write the mesh and its BVH to a zip file.
func (w *zipIndexWriter) Write(name string, m *mesh.Mesh[float32]) (err error) {
	logger.Noticef("writing compressed index to %s", w.indexFile)
	start := time.Now()

	zipFile, err := os.Create(w.indexFile)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := zipFile.Close(); err == nil {
			err = closeErr
		}
	}()

	zw := zip.NewWriter(zipFile)
	cw, err := zw.Create(index.DataFile)
	if err != nil {
		return err
	}
	if err = gob.NewEncoder(cw).Encode(index.FromMesh(name, m)); err != nil {
		return err
	}
	if err = zw.Close(); err != nil {
		return err
	}

	logger.Noticef("compressed index in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}
