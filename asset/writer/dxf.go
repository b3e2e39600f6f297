package writer

import (
	"fmt"

	"github.com/achilleasa/meshcut/mesh"
	"github.com/yofu/dxf"
)

// Write sections to a DXF file. Each section is stored in its own layer and
// contours are emitted as 3D lines.
func writeDXF(sections []mesh.Section[float32], filename string) error {
	drawing := dxf.NewDrawing()

	lines := 0
	for index, section := range sections {
		layer := fmt.Sprintf("section-%d", index)
		if _, err := drawing.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return err
		}

		for _, line := range section.Polylines {
			for i := 1; i < len(line.Points); i++ {
				p0, p1 := line.Points[i-1], line.Points[i]
				_, err := drawing.Line(
					float64(p0[0]), float64(p0[1]), float64(p0[2]),
					float64(p1[0]), float64(p1[1]), float64(p1[2]),
				)
				if err != nil {
					return err
				}
				lines++
			}
		}
	}

	if err := drawing.SaveAs(filename); err != nil {
		return err
	}

	logger.Infof("wrote %d lines in %d layers to %s", lines, len(sections), filename)
	return nil
}
