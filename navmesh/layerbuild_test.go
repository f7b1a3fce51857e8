package navmesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arl/polyanya-mesh/navmesh"
)

// unitSquareSplitByDiagonal builds a unit square as two CCW triangles split
// by the (0,0)-(1,1) diagonal, with no incidence list supplied: exactly the
// input shape an OBJ-imported or caller-decomposed mesh would hand in.
func unitSquareSplitByDiagonal(t *testing.T) *navmesh.Layer {
	t.Helper()
	coords := []navmesh.Vec2{
		{X: 0, Y: 0}, // 0
		{X: 1, Y: 0}, // 1
		{X: 1, Y: 1}, // 2
		{X: 0, Y: 1}, // 3
	}
	rings := [][]uint32{
		{0, 1, 2},
		{0, 2, 3},
	}
	l, err := navmesh.NewLayerFromPolygons(coords, rings)
	require.NoError(t, err)
	return l
}

func TestNewLayerFromPolygonsDerivesAdjacency(t *testing.T) {
	l := unitSquareSplitByDiagonal(t)

	for vi, v := range l.Vertices {
		assert.True(t, v.IsCorner, "vertex %d lies on the outer square boundary", vi)
	}

	m, err := navmesh.NewMesh([]*navmesh.Layer{l})
	require.NoError(t, err)
	m.Bake()

	from := navmesh.Vec2{X: 0.1, Y: 0.9}
	to := navmesh.Vec2{X: 0.9, Y: 0.1}
	path, ok := m.Path(navmesh.AnyLayer(from), navmesh.AnyLayer(to))
	require.True(t, ok, "the two triangles must be connected across the shared diagonal")
	assert.InDelta(t, from.Distance(to), path.Length, 1e-3, "crossing the shared diagonal is a clear line of sight")
}

func TestNewLayerFromPolygonsRejectsEmptyInput(t *testing.T) {
	_, err := navmesh.NewLayerFromPolygons(nil, nil)
	assert.Error(t, err)
}
