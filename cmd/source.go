package cmd

import (
	"errors"

	"github.com/achilleasa/meshcut/asset/reader"
	"github.com/achilleasa/meshcut/mesh"
	"github.com/achilleasa/meshcut/shape"
	"github.com/urfave/cli"
)

// ShapeFlags select a tessellated solid as the mesh source.
var ShapeFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "shape",
		Usage: "use a tessellated `SOLID` (box, cone, cylinder, sphere) instead of a mesh file",
	},
	cli.Float64Flag{
		Name:  "size",
		Value: 1.0,
		Usage: "size of the solid bounding box",
	},
	cli.IntFlag{
		Name:  "cells",
		Value: shape.DefaultCells,
		Usage: "marching cube cells along the longest side of the solid",
	},
}

// Load the mesh referenced by the first command argument or tessellate the
// solid selected by the --shape flag.
func loadMesh(ctx *cli.Context) (*mesh.Mesh[float32], error) {
	opts, err := readerOptions(ctx)
	if err != nil {
		return nil, err
	}

	if kind := ctx.String("shape"); kind != "" {
		solid, err := shape.New(kind, ctx.Float64("size"))
		if err != nil {
			return nil, err
		}

		logger.Infof("tessellating %s with %d cells", kind, ctx.Int("cells"))
		triangles := shape.Tessellate(solid, ctx.Int("cells"))
		if opts.Transform != nil {
			for i := range triangles {
				for j := range triangles[i] {
					triangles[i][j] = opts.Transform.TransformPoint(triangles[i][j])
				}
			}
		}
		return mesh.FromTriangles(triangles, opts.Build), nil
	}

	if ctx.NArg() != 1 {
		return nil, errors.New("missing mesh file or --shape argument")
	}
	return reader.ReadMesh(ctx.Args().First(), opts)
}
