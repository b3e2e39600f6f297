package mesh

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/achilleasa/meshcut/bvh"
	"github.com/achilleasa/meshcut/contour"
	"github.com/achilleasa/meshcut/types"
	"github.com/stretchr/testify/require"
)

func unitCube(t *testing.T) *Mesh[float64] {
	points := []types.Vec3[float64]{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}
	indices := [][3]int{
		{0, 2, 3}, {0, 3, 1}, {4, 5, 7}, {4, 7, 6},
		{0, 1, 5}, {0, 5, 4}, {2, 6, 7}, {2, 7, 3},
		{0, 4, 6}, {0, 6, 2}, {1, 3, 7}, {1, 7, 5},
	}

	m, err := New(indices, points, bvh.DefaultOptions())
	require.NoError(t, err)
	return m
}

func TestNewValidatesIndices(t *testing.T) {
	points := []types.Vec3[float64]{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}

	_, err := New([][3]int{{0, 1, 3}}, points, bvh.DefaultOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "triangle 0 references point 3")

	_, err = New([][3]int{{-1, 1, 2}}, points, bvh.DefaultOptions())
	require.Error(t, err)
}

func TestAreaAndVolume(t *testing.T) {
	m := unitCube(t)
	require.InDelta(t, 6.0, m.Area(), 1e-12)
	require.InDelta(t, 1.0, m.Volume(), 1e-12)
	require.Len(t, m.Centroids(), 12)
	require.Equal(t, types.Box[float64]{Max: types.Vec3[float64]{1, 1, 1}}, m.Bounds())

	// Cached values are safe to read concurrently
	m = unitCube(t)
	volumes := make([]float64, 8)
	var wg sync.WaitGroup
	for i := range volumes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			volumes[i] = m.Volume()
		}(i)
	}
	wg.Wait()
	for _, volume := range volumes {
		require.InDelta(t, 1.0, volume, 1e-12)
	}
}

func TestIndicesFollowLeafOrder(t *testing.T) {
	m := unitCube(t)
	for slot, tri := range m.Indices() {
		exp := types.Triangle[float64]{m.Points()[tri[0]], m.Points()[tri[1]], m.Points()[tri[2]]}
		require.Equal(t, exp, m.Triangles()[slot])
	}
}

func TestRayQueries(t *testing.T) {
	m := unitCube(t)

	ray := types.NewRay(types.Vec3[float64]{0.3, 0.6, -1}, types.Vec3[float64]{0, 0, 1})
	hit, found := m.RayCast(ray)
	require.True(t, found)
	require.InDelta(t, 1.0, hit.Distance, 1e-9)
	require.True(t, m.Intersects(ray))

	hits := m.RayHits(ray)
	require.Len(t, hits, 2)
	require.InDelta(t, 1.0, hits[0].Distance, 1e-9)
	require.InDelta(t, 2.0, hits[1].Distance, 1e-9)

	miss := types.NewRay(types.Vec3[float64]{2, 2, -1}, types.Vec3[float64]{0, 0, 1})
	_, found = m.RayCast(miss)
	require.False(t, found)
	require.False(t, m.Intersects(miss))
	require.Empty(t, m.RayHits(miss))
}

func TestContains(t *testing.T) {
	m := unitCube(t)
	require.True(t, m.Contains(types.Vec3[float64]{0.5, 0.5, 0.5}))
	require.True(t, m.Contains(types.Vec3[float64]{0.1, 0.2, 0.3}))
	require.False(t, m.Contains(types.Vec3[float64]{2, 2, 2}))
	require.False(t, m.Contains(types.Vec3[float64]{0.5, 0.5, 1.5}))
}

func TestSlice(t *testing.T) {
	m := unitCube(t)

	lines := m.Slice(types.AxisPlane[float64](2, 0.5), contour.Options[float64]{})
	require.Len(t, lines, 1)
	require.True(t, lines[0].Closed())
	require.Len(t, lines[0].Vertices(), 4)
	require.InDelta(t, 1.0, lines[0].Area(types.Vec3[float64]{0, 0, 1}), 1e-12)

	require.Empty(t, m.Slice(types.AxisPlane[float64](2, 3), contour.Options[float64]{}))
}

func TestSliceStack(t *testing.T) {
	m := unitCube(t)

	sections := m.SliceStack(types.Vec3[float64]{0, 0, 2}, 0.25, 0.75, 0.25, contour.Options[float64]{})
	require.Len(t, sections, 3)
	for index, section := range sections {
		require.InDelta(t, 0.25*float64(index+1), section.Plane.Offset, 1e-12)
		require.Equal(t, types.Vec3[float64]{0, 0, 1}, section.Plane.Normal)
		require.Len(t, section.Polylines, 1)
		require.True(t, section.Polylines[0].Closed())
		for _, p := range section.Polylines[0].Points {
			require.InDelta(t, section.Plane.Offset, p[2], 1e-12)
		}
	}

	require.Nil(t, m.SliceStack(types.Vec3[float64]{0, 0, 1}, 1, 0, 0.1, contour.Options[float64]{}))
	require.Nil(t, m.SliceStack(types.Vec3[float64]{0, 0, 1}, 0, 1, 0, contour.Options[float64]{}))
}

func TestSliceStackManyLevels(t *testing.T) {
	m := unitCube(t)

	// More levels than workers
	sections := m.SliceStack(types.Vec3[float64]{0, 0, 1}, 0.05, 0.95, 0.01, contour.Options[float64]{})
	require.Len(t, sections, StackLevels(0.05, 0.95, 0.01))
	require.Greater(t, len(sections), 80)
	for index, section := range sections {
		require.InDelta(t, 0.05+0.01*float64(index), section.Plane.Offset, 1e-9)
		require.Len(t, section.Polylines, 1, "section %d", index)
		require.True(t, section.Polylines[0].Closed(), "section %d", index)
	}
}

func TestStackLevels(t *testing.T) {
	require.Equal(t, 5, StackLevels(0.0, 1.0, 0.25))
	require.Equal(t, 1, StackLevels(0.5, 0.5, 0.1))
	require.Zero(t, StackLevels(1.0, 0.0, 0.1))
	require.Zero(t, StackLevels(0.0, 1.0, 0.0))
}

func TestRestore(t *testing.T) {
	m := unitCube(t)

	restored, err := Restore(m.Indices(), m.Points(), m.Tree().Indices(), m.Tree().Hierarchy().Records())
	require.NoError(t, err)
	require.Equal(t, m.Triangles(), restored.Triangles())
	require.Equal(t, m.Tree().Hierarchy().Len(), restored.Tree().Hierarchy().Len())
	require.InDelta(t, m.Volume(), restored.Volume(), 1e-12)

	_, err = Restore(m.Indices(), m.Points(), m.Tree().Indices()[1:], m.Tree().Hierarchy().Records())
	require.Error(t, err)
}

func TestFromTriangles(t *testing.T) {
	triangles := []types.Triangle[float32]{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}},
	}
	m := FromTriangles(triangles, bvh.DefaultOptions())
	require.Len(t, m.Points(), 6)
	require.Len(t, m.Indices(), 2)
	require.InDelta(t, 1.0, float64(m.Area()), 1e-6)

	ray := types.NewRay(types.Vec3[float32]{0.2, 0.2, 2}, types.Vec3[float32]{0, 0, -1})
	hit, found := m.RayCast(ray)
	require.True(t, found)
	require.InDelta(t, 1.0, float64(hit.Distance), 1e-5)
	require.Equal(t, 1, hit.Index)
}

func TestStats(t *testing.T) {
	stats := unitCube(t).Stats()
	for _, exp := range []string{"Triangles", "Volume", "Nodes", "Leaves", "Total"} {
		require.True(t, strings.Contains(stats, exp), "expected stats to contain %q:\n%s", exp, stats)
	}
	require.False(t, math.IsNaN(unitCube(t).Area()))
}
