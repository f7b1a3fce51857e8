package navmesh_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arl/polyanya-mesh/internal/arena"
	"github.com/arl/polyanya-mesh/navmesh"
)

// TestPathBendsAroundReflexCorner checks that the path bends at the reflex
// vertex (2,2): the straight line between the two query points crosses the
// missing quadrant of the L. The start and goal polygons share an edge, so
// the goal polygon is reached from the start node without successor
// promotion; the bend comes from TurningPoint when the path is rebuilt.
func TestPathBendsAroundReflexCorner(t *testing.T) {
	m := arena.CornerNook()

	from := navmesh.Vec2{X: 3.9, Y: 1.9}
	to := navmesh.Vec2{X: 1.9, Y: 3.9}

	path, ok := m.Path(navmesh.AnyLayer(from), navmesh.AnyLayer(to))
	require.True(t, ok)

	pivot := navmesh.Vec2{X: 2, Y: 2}
	legA := math.Sqrt(float64(from.DistanceSquared(pivot)))
	legB := math.Sqrt(float64(to.DistanceSquared(pivot)))
	want := float32(legA + legB)

	assert.InDelta(t, want, path.Length, 1e-3, "taut path should hug the reflex vertex, not cut through the missing quadrant")
	require.Len(t, path.Points, 2, "one turning point at the reflex vertex, then end (the start point is implicit)")
	assert.InDelta(t, pivot.X, path.Points[0].X, 1e-4)
	assert.InDelta(t, pivot.Y, path.Points[0].Y, 1e-4)
}

// TestPathBendsAroundPillar exercises a fully-interior obstacle (a pillar
// with no connection to the mesh's outer boundary): the straight line
// between the two query points is blocked by the pillar itself, and the
// shortest route wraps tightly around one of its two near corners.
func TestPathBendsAroundPillar(t *testing.T) {
	m := arena.PillarRoom()

	from := navmesh.Vec2{X: 5, Y: 1}
	to := navmesh.Vec2{X: 5, Y: 9}

	path, ok := m.Path(navmesh.AnyLayer(from), navmesh.AnyLayer(to))
	require.True(t, ok)

	want := float32(2*math.Sqrt(10) + 2)
	assert.InDelta(t, want, path.Length, 1e-3, "shortest route hugs one side of the pillar")
	assert.Greater(t, path.Length, from.Distance(to), "the pillar must force a detour longer than the blocked straight line")
}
