// Package shape tessellates primitive solids into triangle soups using the
// sdfx SDF library.
package shape

import (
	"fmt"
	"sort"
	"strings"

	"github.com/achilleasa/meshcut/log"
	"github.com/achilleasa/meshcut/types"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultCells controls the marching cubes resolution along the longest
// side of the solid bounding box.
const DefaultCells = 64

var logger = log.New("shape")

// A factory for a solid scaled by size.
type factory func(size float64) (sdf.SDF3, error)

var factories = map[string]factory{
	"box": func(size float64) (sdf.SDF3, error) {
		return Box(size, size, size)
	},
	"sphere": func(size float64) (sdf.SDF3, error) {
		return Sphere(size / 2)
	},
	"cylinder": func(size float64) (sdf.SDF3, error) {
		return Cylinder(size, size/2)
	},
	"cone": func(size float64) (sdf.SDF3, error) {
		return Cone(size, size/2, 0)
	},
}

// Kinds returns the names of the solids supported by New.
func Kinds() []string {
	kinds := make([]string, 0, len(factories))
	for kind := range factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// New creates a named solid centered at the origin whose bounding box has
// the given size.
func New(kind string, size float64) (sdf.SDF3, error) {
	fn, exists := factories[kind]
	if !exists {
		return nil, fmt.Errorf("shape: unknown solid %q; supported solids: %s", kind, strings.Join(Kinds(), ", "))
	}
	if size <= 0 {
		return nil, fmt.Errorf("shape: solid size must be positive; got %v", size)
	}
	return fn(size)
}

// Box creates a box centered at the origin.
func Box(x, y, z float64) (sdf.SDF3, error) {
	return sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
}

// Sphere creates a sphere centered at the origin.
func Sphere(radius float64) (sdf.SDF3, error) {
	return sdf.Sphere3D(radius)
}

// Cylinder creates a Z aligned cylinder centered at the origin.
func Cylinder(height, radius float64) (sdf.SDF3, error) {
	return sdf.Cylinder3D(height, radius, 0)
}

// Cone creates a Z aligned truncated cone centered at the origin.
func Cone(height, bottomRadius, topRadius float64) (sdf.SDF3, error) {
	return sdf.Cone3D(height, bottomRadius, topRadius, 0)
}

// Translate moves a solid by offset.
func Translate(s sdf.SDF3, offset types.Vec3[float64]) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: offset[0], Y: offset[1], Z: offset[2]}))
}

// Tessellate converts a solid into triangles using uniform marching cubes
// with the given number of cells along the longest bounding box side.
func Tessellate(s sdf.SDF3, cells int) []types.Triangle[float32] {
	if cells <= 0 {
		cells = DefaultCells
	}

	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	out := make([]types.Triangle[float32], 0, len(triangles))
	for _, tri := range triangles {
		var t types.Triangle[float32]
		for j := 0; j < 3; j++ {
			v := tri[j]
			t[j] = types.Vec3[float32]{float32(v.X), float32(v.Y), float32(v.Z)}
		}
		out = append(out, t)
	}

	logger.Debugf("tessellated solid into %d triangles (%d cells)", len(out), cells)
	return out
}
