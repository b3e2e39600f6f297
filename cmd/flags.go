package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/achilleasa/meshcut/asset/reader"
	"github.com/achilleasa/meshcut/bvh"
	"github.com/achilleasa/meshcut/types"
	"github.com/urfave/cli"
)

// MeshFlags are shared by all commands that load and index a mesh.
var MeshFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "max-depth",
		Value: bvh.DefaultMaxDepth,
		Usage: "maximum BVH depth",
	},
	cli.IntFlag{
		Name:  "split-tests",
		Value: bvh.DefaultSplitTests,
		Usage: "number of candidate split planes evaluated per axis",
	},
	cli.StringFlag{
		Name:  "translate",
		Usage: "translate mesh by `X,Y,Z` before indexing",
	},
	cli.StringFlag{
		Name:  "rotate",
		Usage: "rotate mesh by yaw, pitch and roll angles (`YAW,PITCH,ROLL` in degrees) before indexing",
	},
	cli.StringFlag{
		Name:  "scale",
		Usage: "scale mesh by `X,Y,Z` before indexing",
	},
}

// Parse a comma separated vector. A single value is replicated to all
// components.
func parseVec3(value string) (types.Vec3[float32], error) {
	var v types.Vec3[float32]
	tokens := strings.Split(value, ",")
	if len(tokens) != 1 && len(tokens) != 3 {
		return v, fmt.Errorf("expected 1 or 3 comma separated values; got %q", value)
	}

	for i := 0; i < 3; i++ {
		token := tokens[0]
		if len(tokens) == 3 {
			token = tokens[i]
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(token), 32)
		if err != nil {
			return v, fmt.Errorf("invalid vector component %q: %s", token, err.Error())
		}
		v[i] = float32(f)
	}
	return v, nil
}

// Build the reader options from the command flags.
func readerOptions(ctx *cli.Context) (reader.Options, error) {
	opts := reader.Options{
		Build: bvh.Options{
			MaxDepth:   ctx.Int("max-depth"),
			SplitTests: ctx.Int("split-tests"),
		},
	}

	if !ctx.IsSet("translate") && !ctx.IsSet("rotate") && !ctx.IsSet("scale") {
		return opts, nil
	}

	translation := types.Vec3[float32]{}
	rotation := types.Vec3[float32]{}
	scale := types.Vec3[float32]{1, 1, 1}
	var err error
	if ctx.IsSet("translate") {
		if translation, err = parseVec3(ctx.String("translate")); err != nil {
			return opts, err
		}
	}
	if ctx.IsSet("rotate") {
		if rotation, err = parseVec3(ctx.String("rotate")); err != nil {
			return opts, err
		}
		rotation = rotation.Mul(math.Pi / 180)
	}
	if ctx.IsSet("scale") {
		if scale, err = parseVec3(ctx.String("scale")); err != nil {
			return opts, err
		}
	}

	mat := types.ModelMatrix(translation, rotation, scale)
	opts.Transform = &mat
	return opts, nil
}
