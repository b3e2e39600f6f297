package main

import (
	"os"

	"github.com/achilleasa/meshcut/cmd"
	"github.com/achilleasa/meshcut/log"
	"github.com/urfave/cli"
)

var logger = log.New("meshcut")

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "meshcut"
	app.Usage = "index triangle meshes and slice them into planar contours"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log `LEVEL` (debug, info, notice, warning, error); overrides -v and -vv",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile mesh files into a binary compressed index",
			Description: `
Parse a mesh from a wavefront obj or 3mf file and build a BVH tree to speed up
spatial queries.

The mesh and its BVH are then written to a zip archive which can be supplied
as an argument to the info, slice and raycast commands.`,
			ArgsUsage: "mesh_file1.obj mesh_file2.3mf ...",
			Flags:     meshFlags(),
			Action:    cmd.CompileMesh,
		},
		{
			Name:      "info",
			Usage:     "display mesh and BVH statistics",
			ArgsUsage: "mesh_file",
			Flags:     meshFlags(),
			Action:    cmd.ShowMeshInfo,
		},
		{
			Name:  "slice",
			Usage: "slice a mesh with one or more parallel planes",
			Description: `
Cut the mesh with a plane and stitch the resulting segments into contours.
When --step is specified, a stack of parallel sections is generated between
--from and --to (or the mesh extent along the plane normal).

Contours can be exported as svg or dxf via the --out flag.`,
			ArgsUsage: "mesh_file",
			Flags: append(sourceFlags(),
				cli.StringFlag{
					Name:  "axis",
					Value: "z",
					Usage: "slice perpendicular to `AXIS` (x, y or z)",
				},
				cli.StringFlag{
					Name:  "normal",
					Usage: "slice perpendicular to an arbitrary `X,Y,Z` normal; overrides --axis",
				},
				cli.Float64Flag{
					Name:  "level",
					Usage: "plane offset along the normal",
				},
				cli.Float64Flag{
					Name:  "from",
					Usage: "first plane offset for stacked slices",
				},
				cli.Float64Flag{
					Name:  "to",
					Usage: "last plane offset for stacked slices",
				},
				cli.Float64Flag{
					Name:  "step",
					Usage: "distance between stacked slices",
				},
				cli.Float64Flag{
					Name:  "tolerance",
					Usage: "squared distance for joining segment endpoints (0 = automatic)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write contours to an svg or dxf file",
				},
			),
			Action: cmd.SliceMesh,
		},
		{
			Name:      "raycast",
			Usage:     "cast a ray against a mesh",
			ArgsUsage: "mesh_file",
			Flags: append(sourceFlags(),
				cli.StringFlag{
					Name:  "origin",
					Value: "0,0,0",
					Usage: "ray origin as `X,Y,Z`",
				},
				cli.StringFlag{
					Name:  "dir",
					Value: "0,0,1",
					Usage: "ray direction as `X,Y,Z`",
				},
				cli.Float64Flag{
					Name:  "max-dist",
					Usage: "ignore hits further than this distance",
				},
				cli.BoolFlag{
					Name:  "all",
					Usage: "report all hits along the ray",
				},
			),
			Action: cmd.RaycastMesh,
		},
		{
			Name:  "shape",
			Usage: "tessellate a solid",
			Flags: append(sourceFlags(),
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write the compiled index to a zip file",
				},
			),
			Action: cmd.TessellateShape,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func meshFlags() []cli.Flag {
	return append([]cli.Flag{}, cmd.MeshFlags...)
}

func sourceFlags() []cli.Flag {
	return append(meshFlags(), cmd.ShapeFlags...)
}
