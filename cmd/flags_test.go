package cmd

import (
	"testing"

	"github.com/achilleasa/meshcut/types"
	"github.com/stretchr/testify/require"
)

func TestParseVec3(t *testing.T) {
	v, err := parseVec3("1, 2.5,-3")
	require.NoError(t, err)
	require.Equal(t, types.Vec3[float32]{1, 2.5, -3}, v)

	v, err = parseVec3("2")
	require.NoError(t, err)
	require.Equal(t, types.Vec3[float32]{2, 2, 2}, v)

	_, err = parseVec3("1,2")
	require.Error(t, err)

	_, err = parseVec3("1,x,3")
	require.Error(t, err)
}

func TestBoundsExtent(t *testing.T) {
	bounds := types.Box[float32]{Min: types.Vec3[float32]{-1, 0, 2}, Max: types.Vec3[float32]{1, 3, 4}}

	from, to := boundsExtent(bounds, types.Vec3[float32]{0, 0, 1})
	require.Equal(t, float32(2), from)
	require.Equal(t, float32(4), to)

	from, to = boundsExtent(bounds, types.Vec3[float32]{-1, 0, 0})
	require.Equal(t, float32(-1), from)
	require.Equal(t, float32(1), to)
}

func TestCheckStack(t *testing.T) {
	require.NoError(t, checkStack(0, 1, 0.25))
	require.NoError(t, checkStack(0, 1, 1e-3))

	require.EqualError(t, checkStack(0, 1, 0), "slice step must be positive")
	require.EqualError(t, checkStack(1, 0, 0.1), "slice range [1, 0] is empty")

	err := checkStack(0, 1, 1e-7)
	require.Error(t, err)
	require.Contains(t, err.Error(), "at most 10000 are supported")
}
