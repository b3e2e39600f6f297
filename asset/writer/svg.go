package writer

import (
	"math"
	"os"

	"github.com/achilleasa/meshcut/mesh"
	svg "github.com/ajstarks/svgo"
)

const (
	svgCanvasSize = 1024
	svgMargin     = 16
)

// Write sections to an SVG file. All polylines are projected onto the
// basis of the first section plane; stacked sections share the same basis
// since they are parallel.
func writeSVG(sections []mesh.Section[float32], filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	type path2D struct {
		xs, ys []float64
		closed bool
	}

	var paths []path2D
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, section := range sections {
		for _, line := range section.Polylines {
			p := path2D{closed: line.Closed()}
			for _, pt := range line.Points {
				x, y := sections[0].Plane.Project(pt)
				p.xs = append(p.xs, float64(x))
				p.ys = append(p.ys, float64(y))
				minX, maxX = math.Min(minX, float64(x)), math.Max(maxX, float64(x))
				minY, maxY = math.Min(minY, float64(y)), math.Max(maxY, float64(y))
			}
			paths = append(paths, p)
		}
	}

	scale := 1.0
	if extent := math.Max(maxX-minX, maxY-minY); extent > 0 {
		scale = float64(svgCanvasSize-2*svgMargin) / extent
	}

	canvas := svg.New(f)
	canvas.Start(svgCanvasSize, svgCanvasSize)
	for _, p := range paths {
		xs := make([]int, len(p.xs))
		ys := make([]int, len(p.ys))
		for i := range p.xs {
			xs[i] = svgMargin + int(math.Round((p.xs[i]-minX)*scale))
			// SVG y axis points down
			ys[i] = svgCanvasSize - svgMargin - int(math.Round((p.ys[i]-minY)*scale))
		}
		if p.closed {
			canvas.Polygon(xs[:len(xs)-1], ys[:len(ys)-1], "fill:none;stroke:black;stroke-width:1")
		} else {
			canvas.Polyline(xs, ys, "fill:none;stroke:red;stroke-width:1")
		}
	}
	canvas.End()

	logger.Infof("wrote %d contours to %s", len(paths), filename)
	return nil
}
