package navmesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arl/polyanya-mesh/internal/arena"
	"github.com/arl/polyanya-mesh/navmesh"
)

// twoSquares builds two unstitched one-polygon layers sharing the boundary
// edge y=1: layer 0 spans (0,0)-(1,1), layer 1 spans (0,1)-(1,2).
func twoSquares(t *testing.T) *navmesh.Mesh {
	t.Helper()
	bottom, err := navmesh.NewLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(navmesh.Vec2{X: 0, Y: 0}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 1, Y: 0}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 1, Y: 1}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 0, Y: 1}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
		},
		[]navmesh.Polygon{navmesh.NewPolygon([]uint32{0, 1, 2, 3})},
	)
	require.NoError(t, err)

	top, err := navmesh.NewLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(navmesh.Vec2{X: 0, Y: 1}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 1, Y: 1}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 1, Y: 2}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 0, Y: 2}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
		},
		[]navmesh.Polygon{navmesh.NewPolygon([]uint32{0, 1, 2, 3})},
	)
	require.NoError(t, err)

	m, err := navmesh.NewMesh([]*navmesh.Layer{bottom, top})
	require.NoError(t, err)
	return m
}

func TestUnstitchedLayersDontConnect(t *testing.T) {
	m := twoSquares(t)
	m.Bake()

	path, ok := m.Path(
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0),
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 1.5}, 1),
	)
	assert.False(t, ok, "layers with no stitch share no polygon, so no path exists")
	assert.Empty(t, path.Points)
}

func TestFindStitchPointsDiscoversSharedBoundary(t *testing.T) {
	m := twoSquares(t)

	candidates := m.FindStitchPoints()
	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.ElementsMatch(t, []uint8{0, 1}, []uint8{c.LayerA, c.LayerB})
	assert.Len(t, c.Points, 2, "the two layers share exactly the two corners of the seam")
}

func TestStitchAtPointsConnectsLayers(t *testing.T) {
	m := twoSquares(t)

	err := m.StitchAtPoints(0, 1, [][2]navmesh.Vec2{
		{{X: 0, Y: 1}, {X: 0, Y: 1}},
		{{X: 1, Y: 1}, {X: 1, Y: 1}},
	}, false)
	require.NoError(t, err)
	m.Bake()

	path, ok := m.Path(
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0),
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 1.5}, 1),
	)
	require.True(t, ok, "stitching the shared seam should open a path across layers")
	assert.InDelta(t, 1.0, path.Length, 1e-3, "straight line through the shared edge has unit length")

	// The seam's two vertices keep exactly one sentinel each: they're still
	// boundary corners of the combined shape, just no longer boundary along
	// the (now stitched) shared edge's interior.
	for _, vi := range []uint32{2, 3} {
		assert.True(t, m.Layers[0].Vertices[vi].IsCorner)
	}
}

func TestOneWayStitchIsAsymmetric(t *testing.T) {
	m := twoSquares(t)

	err := m.StitchAtPoints(0, 1, [][2]navmesh.Vec2{
		{{X: 0, Y: 1}, {X: 0, Y: 1}},
		{{X: 1, Y: 1}, {X: 1, Y: 1}},
	}, true)
	require.NoError(t, err)
	m.Bake()

	down, ok := m.Path(
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0),
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 1.5}, 1),
	)
	assert.True(t, ok, "a one-way stitch still lets layer 0 reach layer 1")
	assert.NotEmpty(t, down.Points)

	_, ok = m.Path(
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 1.5}, 1),
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0),
	)
	assert.False(t, ok, "a one-way stitch must not let layer 1 reach back into layer 0")
}

func TestRemoveStitchesSeversAllConnectivity(t *testing.T) {
	m := arena.UGrid()

	_, ok := m.Path(navmesh.AnyLayer(navmesh.Vec2{X: 0.1, Y: 1.1}), navmesh.AnyLayer(navmesh.Vec2{X: 1.1, Y: 0.1}))
	require.True(t, ok, "the fixture is stitched by construction")

	m.RemoveStitches()
	m.Bake()

	_, ok = m.Path(
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 1.5}, 1),
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0),
	)
	assert.False(t, ok, "removing every stitch isolates each layer")
}

func TestRemoveStitchesToLayerIsSelective(t *testing.T) {
	m := arena.UGrid()

	require.NoError(t, m.RemoveStitchesToLayer(1))
	m.Bake()

	_, ok := m.Path(
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 1.5}, 1),
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0),
	)
	assert.False(t, ok, "layer 1's stitch was removed")

	path, ok := m.Path(navmesh.AnyLayer(navmesh.Vec2{X: 2.5, Y: 1.5}), navmesh.AnyLayer(navmesh.Vec2{X: 0.5, Y: 0.5}))
	assert.True(t, ok, "layer 2's stitch to the main corridor is untouched")
	assert.NotEmpty(t, path.Points)
}

// TestStitchAtPointsUsesWorldCoordinates exercises a layer pair where the
// two layers don't share the same local coordinate space: layer 1 is
// offset by (0,1) in world space, so its seam vertices sit at local (0,0)
// and (1,0), not at the world-space coordinates an un-offset layer would
// use. StitchAtPoints must resolve its point arguments against each
// layer's world position, not its raw local Coords.
func TestStitchAtPointsUsesWorldCoordinates(t *testing.T) {
	bottom, err := navmesh.NewLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(navmesh.Vec2{X: 0, Y: 0}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 1, Y: 0}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 1, Y: 1}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 0, Y: 1}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
		},
		[]navmesh.Polygon{navmesh.NewPolygon([]uint32{0, 1, 2, 3})},
	)
	require.NoError(t, err)

	top, err := navmesh.NewLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(navmesh.Vec2{X: 0, Y: 0}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 1, Y: 0}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 1, Y: 1}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
			navmesh.NewVertex(navmesh.Vec2{X: 0, Y: 1}, []navmesh.PolyID{0, navmesh.SentinelPolyID}),
		},
		[]navmesh.Polygon{navmesh.NewPolygon([]uint32{0, 1, 2, 3})},
	)
	require.NoError(t, err)
	top.Offset = navmesh.Vec2{X: 0, Y: 1}

	m, err := navmesh.NewMesh([]*navmesh.Layer{bottom, top})
	require.NoError(t, err)

	// (0,1) and (1,1) are world-space coordinates: the shared seam between
	// the bottom layer's top edge and the (offset) top layer's bottom edge.
	err = m.StitchAtPoints(0, 1, [][2]navmesh.Vec2{
		{{X: 0, Y: 1}, {X: 0, Y: 1}},
		{{X: 1, Y: 1}, {X: 1, Y: 1}},
	}, false)
	require.NoError(t, err)
	m.Bake()

	path, ok := m.Path(
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0),
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 1.5}, 1),
	)
	require.True(t, ok, "world-space stitch points must resolve to the offset layer's actual seam vertices")
	assert.InDelta(t, 1.0, path.Length, 1e-3)
}

// TestStitchAtPointsIsIdempotent: calling StitchAtPoints twice with the
// same pair must not duplicate incidence entries or change
// reachability/cost versus a single call.
func TestStitchAtPointsIsIdempotent(t *testing.T) {
	seam := [][2]navmesh.Vec2{
		{{X: 0, Y: 1}, {X: 0, Y: 1}},
		{{X: 1, Y: 1}, {X: 1, Y: 1}},
	}

	once := twoSquares(t)
	require.NoError(t, once.StitchAtPoints(0, 1, seam, false))

	twice := twoSquares(t)
	require.NoError(t, twice.StitchAtPoints(0, 1, seam, false))
	require.NoError(t, twice.StitchAtPoints(0, 1, seam, false))

	for vi := 2; vi <= 3; vi++ {
		assert.ElementsMatch(t, once.Layers[0].Vertices[vi].Polygons, twice.Layers[0].Vertices[vi].Polygons,
			"stitching the same pair twice must not accumulate duplicate neighbors")
	}
	for vi := 0; vi <= 1; vi++ {
		assert.ElementsMatch(t, once.Layers[1].Vertices[vi].Polygons, twice.Layers[1].Vertices[vi].Polygons)
	}

	once.Bake()
	twice.Bake()
	p1, ok1 := once.Path(navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0), navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 1.5}, 1))
	p2, ok2 := twice.Path(navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0), navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 1.5}, 1))
	require.True(t, ok1)
	require.True(t, ok2)
	assert.InDelta(t, p1.Length, p2.Length, 1e-4)
}

func TestRestitchLayerAtPointsReplacesExistingSeam(t *testing.T) {
	m := twoSquares(t)
	seam := [][2]navmesh.Vec2{
		{{X: 0, Y: 1}, {X: 0, Y: 1}},
		{{X: 1, Y: 1}, {X: 1, Y: 1}},
	}
	require.NoError(t, m.StitchAtPoints(0, 1, seam, false))
	m.Bake()

	require.NoError(t, m.RestitchLayerAtPoints(0, 1, seam, false))
	m.Bake()

	path, ok := m.Path(
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 0.5}, 0),
		navmesh.OnLayer(navmesh.Vec2{X: 0.5, Y: 1.5}, 1),
	)
	require.True(t, ok, "restitching the same seam keeps the layers connected")
	assert.InDelta(t, 1.0, path.Length, 1e-3, "re-stitching shouldn't duplicate edges or inflate cost")
}
