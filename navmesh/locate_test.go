package navmesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/polyanya-mesh/internal/arena"
	"github.com/arl/polyanya-mesh/navmesh"
)

func TestPointLocationAcrossLayers(t *testing.T) {
	m := arena.UGrid()

	assertLayerPoly(t, m, navmesh.Vec2{X: 0.5, Y: 0.5}, 0, 0)
	assertLayerPoly(t, m, navmesh.Vec2{X: 1.5, Y: 0.5}, 0, 1)
	assertLayerPoly(t, m, navmesh.Vec2{X: 0.5, Y: 1.5}, 1, 0)
	assertLayerPoly(t, m, navmesh.Vec2{X: 2.5, Y: 1.5}, 2, 0)

	_, ok := m.Path(navmesh.AnyLayer(navmesh.Vec2{X: 1.5, Y: 1.5}), navmesh.AnyLayer(navmesh.Vec2{X: 0.5, Y: 0.5}))
	assert.False(t, ok, "the gap between the two chambers has no polygon on any layer")
}

func TestGetClosestPointSnapsOntoMesh(t *testing.T) {
	m := arena.UGrid()
	l := &m.Layers[0]

	// Just off the corridor's left edge; the spiral search should land on a
	// point inside the first square.
	snapped, id := l.GetClosestPoint(navmesh.Vec2{X: -0.02, Y: 0.5}, 0.05, 3)
	assert.False(t, id.IsSentinel())
	assert.InDelta(t, 0.5, snapped.Y, 0.2)

	// Far outside every ring of the spiral: no polygon.
	_, id = l.GetClosestPoint(navmesh.Vec2{X: -50, Y: 0.5}, 0.05, 3)
	assert.True(t, id.IsSentinel())
}

func TestGetClosestPointTowardsWalksIntoMesh(t *testing.T) {
	m := arena.UGrid()
	l := &m.Layers[0]

	snapped, id := l.GetClosestPointTowards(navmesh.Vec2{X: -0.5, Y: 0.5}, navmesh.Vec2{X: 1.5, Y: 0.5}, 0.1, 10)
	assert.False(t, id.IsSentinel(), "stepping towards the corridor must eventually enter it")
	assert.Greater(t, snapped.X, float32(-0.5))
}

func TestGetVerticesOnSegment(t *testing.T) {
	m := arena.UGrid()
	l := &m.Layers[0]

	got := l.GetVerticesOnSegment(navmesh.Vec2{X: 0, Y: 0}, navmesh.Vec2{X: 3, Y: 0})
	assert.Equal(t, []uint32{0, 1, 2, 3}, got, "the corridor's bottom edge vertices, nearest first")
}

func assertLayerPoly(t *testing.T, m *navmesh.Mesh, pos navmesh.Vec2, wantLayer uint8, wantPoly uint32) {
	t.Helper()
	layer := &m.Layers[wantLayer]
	local := pos.Sub(layer.Offset)
	id := layer.PointLocationBaked(local)
	assert.False(t, id.IsSentinel(), "expected a polygon at %v on layer %d", pos, wantLayer)
	assert.Equal(t, wantPoly, id.Polygon())
}
