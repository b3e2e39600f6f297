package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/achilleasa/meshcut/asset/writer"
	"github.com/achilleasa/meshcut/contour"
	"github.com/achilleasa/meshcut/mesh"
	"github.com/achilleasa/meshcut/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Slice a mesh with one or more parallel planes.
func SliceMesh(ctx *cli.Context) error {
	setupLogging(ctx)

	normal, err := sliceNormal(ctx)
	if err != nil {
		return err
	}

	m, err := loadMesh(ctx)
	if err != nil {
		return err
	}

	opts := contour.Options[float32]{
		Tolerance: float32(ctx.Float64("tolerance")),
	}

	var sections []mesh.Section[float32]
	if ctx.IsSet("step") {
		from, to := float32(ctx.Float64("from")), float32(ctx.Float64("to"))
		if !ctx.IsSet("from") || !ctx.IsSet("to") {
			bounds := m.Bounds()
			from, to = boundsExtent(bounds, normal)
		}
		step := float32(ctx.Float64("step"))
		if err := checkStack(from, to, step); err != nil {
			return err
		}
		sections = m.SliceStack(normal, from, to, step, opts)
	} else {
		plane := types.Plane[float32]{Normal: normal, Offset: float32(ctx.Float64("level"))}
		sections = []mesh.Section[float32]{
			{Plane: plane, Polylines: m.Slice(plane, opts)},
		}
	}

	displaySectionStats(sections)

	if out := ctx.String("out"); out != "" {
		return writer.WriteContours(sections, out)
	}
	return nil
}

// Upper bound for the number of sections produced by a single slice command.
const maxSections = 10000

func checkStack(from, to, step float32) error {
	if step <= 0 {
		return errors.New("slice step must be positive")
	}
	if to < from {
		return fmt.Errorf("slice range [%g, %g] is empty", from, to)
	}
	if count := mesh.StackLevels(from, to, step); count > maxSections {
		return fmt.Errorf("slice step %g produces %d sections; at most %d are supported", step, count, maxSections)
	}
	return nil
}

// Resolve the slicing plane normal from the --normal or --axis flags.
func sliceNormal(ctx *cli.Context) (types.Vec3[float32], error) {
	if ctx.IsSet("normal") {
		n, err := parseVec3(ctx.String("normal"))
		if err != nil {
			return n, err
		}
		if n.LenSq() == 0 {
			return n, errors.New("slice normal must not be zero")
		}
		return n.Normalize(), nil
	}

	switch strings.ToLower(ctx.String("axis")) {
	case "x":
		return types.Vec3[float32]{1, 0, 0}, nil
	case "y":
		return types.Vec3[float32]{0, 1, 0}, nil
	case "z":
		return types.Vec3[float32]{0, 0, 1}, nil
	}
	return types.Vec3[float32]{}, fmt.Errorf("unsupported slice axis %q", ctx.String("axis"))
}

// Project the box corners on normal and return the min/max offsets.
func boundsExtent(bounds types.Box[float32], normal types.Vec3[float32]) (from, to float32) {
	from, to = types.Inf[float32](), -types.Inf[float32]()
	for _, corner := range bounds.Corners() {
		d := corner.Dot(normal)
		from, to = min(from, d), max(to, d)
	}
	return from, to
}

func displaySectionStats(sections []mesh.Section[float32]) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Offset", "Contours", "Closed", "Points", "Length", "Area"})

	var totalContours, totalClosed int
	for _, section := range sections {
		var closed, points int
		var length, area float32
		for _, line := range section.Polylines {
			if line.Closed() {
				closed++
				area += line.Area(section.Plane.Normal)
			}
			points += len(line.Points)
			length += line.Length()
		}
		totalContours += len(section.Polylines)
		totalClosed += closed

		table.Append([]string{
			fmt.Sprintf("%.4f", section.Plane.Offset),
			fmt.Sprintf("%d", len(section.Polylines)),
			fmt.Sprintf("%d", closed),
			fmt.Sprintf("%d", points),
			fmt.Sprintf("%.4f", length),
			fmt.Sprintf("%.4f", area),
		})
	}
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", totalContours), fmt.Sprintf("%d", totalClosed), "", "", ""})

	table.Render()
	logger.Noticef("section statistics\n%s", buf.String())
}
