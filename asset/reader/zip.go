package reader

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/achilleasa/meshcut/asset"
	"github.com/achilleasa/meshcut/asset/index"
	"github.com/achilleasa/meshcut/log"
	"github.com/achilleasa/meshcut/mesh"
)

type zipIndexReader struct {
	logger log.Logger
}

// Create a new compiled index reader.
func newZipIndexReader() *zipIndexReader {
	return &zipIndexReader{
		logger: log.New("zip reader"),
	}
}

// Read a compiled mesh index from a zip file.
func (p *zipIndexReader) Read(res *asset.Resource) (*mesh.Mesh[float32], error) {
	p.logger.Noticef(`loading compiled index from "%s"`, res.Path())
	start := time.Now()

	// zip package requires a reader implementing ReaderAt. To work around
	// this requirement we read the entire zip file into memory and create
	// a reader from the bytes package that implements ReaderAt
	data, err := res.Bytes()
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var idx *index.Index
	for _, f := range zr.File {
		if f.Name != index.DataFile {
			p.logger.Warningf("unknown file %s in index zip file; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		idx = &index.Index{}
		err = gob.NewDecoder(rc).Decode(idx)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("zip reader: failed to load %s: %s", f.Name, err.Error())
		}
	}

	if idx == nil {
		return nil, fmt.Errorf("zip reader: %s does not contain %s", res.Path(), index.DataFile)
	}

	m, err := idx.Mesh()
	if err != nil {
		return nil, fmt.Errorf("zip reader: %s", err)
	}

	p.logger.Noticef("loaded index %q in %d ms", idx.Name, time.Since(start).Nanoseconds()/1e6)
	return m, nil
}
