package mesh

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Stats builds a tabular representation of the mesh and BVH statistics.
func (m *Mesh[T]) Stats() string {
	st := m.tree.Stats()
	bounds := m.Bounds()
	nodes := m.tree.Hierarchy().Records()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Section", "Property", "Value"})
	table.Append([]string{"Geometry", "Triangles", fmt.Sprint(len(m.indices))})
	table.Append([]string{"", "Points", fmt.Sprint(len(m.points))})
	table.Append([]string{"", "Bounds", fmt.Sprintf("%v - %v", bounds.Min, bounds.Max)})
	table.Append([]string{"", "Area", fmt.Sprintf("%.4f", float64(m.Area()))})
	table.Append([]string{"", "Volume", fmt.Sprintf("%.4f", float64(m.Volume()))})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"BVH", "Nodes", fmt.Sprint(st.Nodes)})
	table.Append([]string{"", "Leaves", fmt.Sprint(st.Leaves)})
	table.Append([]string{"", "Max depth", fmt.Sprint(st.MaxDepth)})
	table.Append([]string{"", "Max leaf size", fmt.Sprint(st.MaxLeafSize)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Memory", "Points", fmtSize(m.points)})
	table.Append([]string{"", "Indices", fmtSize(m.indices)})
	table.Append([]string{"", "BVH", fmtSize(nodes)})
	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtSize(m.points, m.indices, nodes), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
