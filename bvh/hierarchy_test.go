package bvh

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/achilleasa/meshcut/types"
)

func TestRecordsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	triangles := randomTriangles(rng, 250)
	tree := Build[float64](triangles, DefaultOptions())

	h, err := HierarchyFromRecords(tree.Hierarchy().Records(), tree.Len())
	if err != nil {
		t.Fatal(err)
	}
	if h.Len() != tree.Hierarchy().Len() {
		t.Fatalf("expected %d nodes; got %d", tree.Hierarchy().Len(), h.Len())
	}
	if h.Depth() != tree.Hierarchy().Depth() {
		t.Fatalf("expected depth %d; got %d", tree.Hierarchy().Depth(), h.Depth())
	}
	for index := 0; index < h.Len(); index++ {
		if h.At(index) != tree.Hierarchy().At(index) {
			t.Fatalf("node %d: expected %+v; got %+v", index, tree.Hierarchy().At(index), h.At(index))
		}
	}

	restored, err := NewTree(h, tree.Primitives(), tree.Indices())
	if err != nil {
		t.Fatal(err)
	}
	ray := types.NewRay(types.Vec3[float64]{-20, 0, 0}, types.Vec3[float64]{1, 0, 0})
	expHit, expFound := tree.NearestHit(RayTester[float64]{ray})
	hit, found := restored.NearestHit(RayTester[float64]{ray})
	if found != expFound || hit != expHit {
		t.Fatalf("expected restored tree hit %+v; got %+v", expHit, hit)
	}
}

func TestRecordValidation(t *testing.T) {
	valid := Build[float64](unitCube(), DefaultOptions()).Hierarchy().Records()
	if len(valid) < 3 {
		t.Fatalf("expected cube hierarchy to contain at least 3 nodes; got %d", len(valid))
	}

	clone := func() []NodeRecord[float64] {
		return append([]NodeRecord[float64]{}, valid...)
	}

	specs := []struct {
		records  []NodeRecord[float64]
		prims    int
		expError string
	}{
		{nil, 0, "contains no nodes"},
		{clone(), 11, "outside [0, 11)"},
		{func() []NodeRecord[float64] {
			r := clone()
			r[0].First = 0
			return r
		}(), 12, "invalid child indices"},
		{func() []NodeRecord[float64] {
			r := clone()
			r[0].Second = int32(len(r))
			return r
		}(), 12, "invalid child indices"},
		{func() []NodeRecord[float64] {
			r := clone()
			r[1].Start = -1
			return r
		}(), 12, "outside [0, 12)"},
		{func() []NodeRecord[float64] {
			r := clone()
			r[0].Length = 11
			return r
		}(), 12, "root node covers primitives [0, 11)"},
		{func() []NodeRecord[float64] {
			r := clone()
			r[0].Second = r[0].First
			return r
		}(), 12, "do not partition"},
		{func() []NodeRecord[float64] {
			r := clone()
			r[r[0].First].Start++
			return r
		}(), 12, "do not partition"},
		{func() []NodeRecord[float64] {
			r := clone()
			r = append(r, r[len(r)-1])
			return r
		}(), 12, "referenced by 0 parents"},
	}

	for idx, s := range specs {
		_, err := HierarchyFromRecords(s.records, s.prims)
		if err == nil || !strings.Contains(err.Error(), s.expError) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", idx, s.expError, err)
		}
	}
}

func TestNewTreeValidation(t *testing.T) {
	tree := Build[float64](unitCube(), DefaultOptions())

	if _, err := NewTree(tree.Hierarchy(), tree.Primitives(), tree.Indices()[1:]); err == nil {
		t.Fatal("expected an error for mismatched index count")
	}
	if _, err := NewTree[float64, types.Triangle[float64]](nil, nil, nil); err == nil {
		t.Fatal("expected an error for a missing hierarchy")
	}
	if _, err := NewTree(tree.Hierarchy(), tree.Primitives()[1:], tree.Indices()[1:]); err == nil {
		t.Fatal("expected an error when the root does not cover all primitives")
	}
}

func TestWalkVisitsAllNodes(t *testing.T) {
	tree := Build[float64](unitCube(), DefaultOptions())
	h := tree.Hierarchy()

	visited := make(map[int]int)
	h.Walk(func(index int, node Node[float64], depth int) {
		visited[index]++
		if depth > h.Depth() {
			t.Fatalf("node %d reported depth %d; tree depth is %d", index, depth, h.Depth())
		}
	})
	if len(visited) != h.Len() {
		t.Fatalf("expected to visit %d nodes; visited %d", h.Len(), len(visited))
	}
}
