package cmd

import (
	"errors"
	"path"
	"strings"

	"github.com/achilleasa/meshcut/asset/reader"
	"github.com/achilleasa/meshcut/asset/writer"
	"github.com/urfave/cli"
)

// Compile meshes into a binary compressed index.
func CompileMesh(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := readerOptions(ctx)
	if err != nil {
		return err
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		meshFile := ctx.Args().Get(idx)
		ext := strings.ToLower(path.Ext(meshFile))
		if ext != ".obj" && ext != ".3mf" {
			logger.Warningf("skipping unsupported file %s", meshFile)
			continue
		}

		logger.Noticef("parsing and indexing mesh: %s", meshFile)
		m, err := reader.ReadMesh(meshFile, opts)
		if err != nil {
			return err
		}

		// Display compiled mesh info
		logger.Noticef("mesh information:\n%s", m.Stats())

		zipFile := strings.TrimSuffix(meshFile, path.Ext(meshFile)) + ".zip"
		name := strings.TrimSuffix(path.Base(meshFile), path.Ext(meshFile))
		if err = writer.WriteIndex(name, m, zipFile); err != nil {
			return err
		}
	}

	return nil
}

// Display mesh info.
func ShowMeshInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing mesh file")
	}

	opts, err := readerOptions(ctx)
	if err != nil {
		return err
	}

	m, err := reader.ReadMesh(ctx.Args().First(), opts)
	if err != nil {
		return err
	}

	logger.Noticef("mesh information:\n%s", m.Stats())
	return nil
}
