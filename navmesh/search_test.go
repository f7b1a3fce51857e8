package navmesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arl/polyanya-mesh/internal/arena"
	"github.com/arl/polyanya-mesh/navmesh"
)

func TestPathDirectLineOfSightAcrossStitchedLayers(t *testing.T) {
	m := arena.UGrid()

	from := navmesh.Vec2{X: 0.1, Y: 1.1} // inside the left chamber
	to := navmesh.Vec2{X: 1.1, Y: 0.1}   // inside the main corridor's first square

	path, ok := m.Path(navmesh.AnyLayer(from), navmesh.AnyLayer(to))
	require.True(t, ok)
	require.NotEmpty(t, path.Points)
	last := path.Points[len(path.Points)-1]
	assert.InDelta(t, to.X, last.X, navmesh.Epsilon)
	assert.InDelta(t, to.Y, last.Y, navmesh.Epsilon)
	assert.InDelta(t, from.Distance(to), path.Length, 1e-3, "a direct line of sight should cost exactly the straight-line distance")
}

func TestPathWithinSingleLayer(t *testing.T) {
	m := arena.UGrid()
	from := navmesh.Vec2{X: 0.1, Y: 0.1}
	to := navmesh.Vec2{X: 2.9, Y: 0.9}

	path, ok := m.Path(navmesh.AnyLayer(from), navmesh.AnyLayer(to))
	require.True(t, ok)
	assert.InDelta(t, from.Distance(to), path.Length, 1e-3, "unobstructed corridor should be a straight shot")
}

func TestPathUnreachableWhenPointOffMesh(t *testing.T) {
	l1, err := navmesh.NewLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(navmesh.Vec2{X: 0, Y: 0}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 1, Y: 0}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 1, Y: 1}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 0, Y: 1}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
		},
		[]navmesh.Polygon{navmesh.NewPolygon([]uint32{0, 1, 2, 3})},
	)
	require.NoError(t, err)

	m, err := navmesh.NewMesh([]*navmesh.Layer{l1})
	require.NoError(t, err)
	m.Bake()

	_, ok := m.Path(
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0),
		navmesh.OnLayer(navmesh.Vec2{X: 10.5, Y: 10.5}, 0),
	)
	assert.False(t, ok, "a point outside every polygon of the only layer can't be located, so no path exists")
}

func TestPathOnLayersBlocksEntireLayer(t *testing.T) {
	m := arena.OverlappingLayers()

	from := navmesh.Vec2{X: 0.2, Y: 2.1}
	to := navmesh.Vec2{X: 4.8, Y: 0.9}

	direct, ok := m.Path(navmesh.AnyLayer(from), navmesh.AnyLayer(to))
	require.True(t, ok)

	blocked, ok := m.PathOnLayers(navmesh.AnyLayer(from), navmesh.AnyLayer(to), []uint8{1})
	require.True(t, ok)

	assert.Greater(t, blocked.Length, direct.Length, "blocking the shortcut layer should force the longer bend through the main corridor")
}
