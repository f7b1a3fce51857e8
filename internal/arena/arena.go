// Package arena builds small, hand-laid-out meshes used by navmesh's tests
// and by the CLI's "fixture" subcommand for quick smoke-testing without a
// real asset pipeline.
package arena

import (
	"github.com/arl/polyanya-mesh/navmesh"
)

func v(x, y float32) navmesh.Vec2 { return navmesh.Vec2{X: x, Y: y} }

func mustLayer(vertices []navmesh.Vertex, polygons []navmesh.Polygon) *navmesh.Layer {
	l, err := navmesh.NewLayer(vertices, polygons)
	if err != nil {
		panic(err)
	}
	return l
}

func mustMesh(layers []*navmesh.Layer) *navmesh.Mesh {
	m, err := navmesh.NewMesh(layers)
	if err != nil {
		panic(err)
	}
	return m
}

// UGrid builds a 3-wide strip of a main-layer corridor with two one-way
// side chambers branching off of it, one per side, each living on its own
// overlapping layer and stitched to the main one. Three unit squares run
// along the main layer; the left chamber sits above the first square, the
// right chamber above the third.
//
//	main:  [0][1][2]
//	           ^      ^
//	         chamber-1  chamber-2 (above squares 0 and 2 respectively)
func UGrid() *navmesh.Mesh {
	const max = navmesh.SentinelPolyID
	p := func(ids ...navmesh.PolyID) []navmesh.PolyID { return ids }

	main := mustLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(v(0, 0), p(0, max)),
			navmesh.NewVertex(v(1, 0), p(0, 1, max)),
			navmesh.NewVertex(v(2, 0), p(1, 2, max)),
			navmesh.NewVertex(v(3, 0), p(2, max)),
			navmesh.NewVertex(v(0, 1), p(0, max)),
			navmesh.NewVertex(v(1, 1), p(1, 0, max)),
			navmesh.NewVertex(v(2, 1), p(2, 1, max)),
			navmesh.NewVertex(v(3, 1), p(2, max)),
		},
		[]navmesh.Polygon{
			navmesh.NewPolygon([]uint32{0, 1, 5, 4}),
			navmesh.NewPolygon([]uint32{1, 2, 6, 5}),
			navmesh.NewPolygon([]uint32{2, 3, 7, 6}),
		},
	)

	leftChamber := mustLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(v(0, 1), p(0, max)),
			navmesh.NewVertex(v(1, 1), p(0, max)),
			navmesh.NewVertex(v(0, 2), p(0, max)),
			navmesh.NewVertex(v(1, 2), p(0, max)),
		},
		[]navmesh.Polygon{navmesh.NewPolygon([]uint32{0, 1, 3, 2})},
	)

	rightChamber := mustLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(v(2, 1), p(0, max)),
			navmesh.NewVertex(v(3, 1), p(0, max)),
			navmesh.NewVertex(v(2, 2), p(0, max)),
			navmesh.NewVertex(v(3, 2), p(0, max)),
		},
		[]navmesh.Polygon{navmesh.NewPolygon([]uint32{0, 1, 3, 2})},
	)

	m := mustMesh([]*navmesh.Layer{main, leftChamber, rightChamber})
	m.Bake()

	must(m.StitchAtPoints(0, 1, [][2]navmesh.Vec2{
		{v(0, 1), v(0, 1)},
		{v(1, 1), v(1, 1)},
	}, false))
	must(m.StitchAtPoints(0, 2, [][2]navmesh.Vec2{
		{v(2, 1), v(2, 1)},
		{v(3, 1), v(3, 1)},
	}, false))
	m.Bake()
	return m
}

// OverlappingLayers builds two layers sharing the same 2D footprint over
// part of their extent: a 3-polygon main corridor bending from (0,3) down
// to (5,0), and a second layer offering a straight shortcut directly
// across the bend at a shallower angle. Used to exercise cost-weighted
// layer preference and layer-blocking.
func OverlappingLayers() *navmesh.Mesh {
	const max = navmesh.SentinelPolyID
	p := func(ids ...navmesh.PolyID) []navmesh.PolyID { return ids }

	main := mustLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(v(0, 3), p(0, max)),
			navmesh.NewVertex(v(3, 3), p(0, max)),
			navmesh.NewVertex(v(0, 2), p(0, max)),
			navmesh.NewVertex(v(1, 2), p(0, max)),
			navmesh.NewVertex(v(2, 2), p(0, 1, max)),
			navmesh.NewVertex(v(3, 2), p(0, 1, max)),
			navmesh.NewVertex(v(2, 1), p(1, 2, max)),
			navmesh.NewVertex(v(3, 1), p(1, 2, max)),
			navmesh.NewVertex(v(4, 1), p(2, max)),
			navmesh.NewVertex(v(5, 1), p(2, max)),
			navmesh.NewVertex(v(2, 0), p(2, max)),
			navmesh.NewVertex(v(5, 0), p(2, max)),
		},
		[]navmesh.Polygon{
			navmesh.NewPolygon([]uint32{2, 3, 4, 5, 1, 0}),
			navmesh.NewPolygon([]uint32{6, 7, 5, 4}),
			navmesh.NewPolygon([]uint32{10, 11, 9, 8, 7, 6}),
		},
	)

	shortcut := mustLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(v(0, 2), p(0, max)),
			navmesh.NewVertex(v(1, 2), p(0, max)),
			navmesh.NewVertex(v(5, 2), p(0, max)),
			navmesh.NewVertex(v(0, 1), p(0, max)),
			navmesh.NewVertex(v(4, 1), p(0, max)),
			navmesh.NewVertex(v(5, 1), p(0, max)),
		},
		[]navmesh.Polygon{navmesh.NewPolygon([]uint32{3, 4, 5, 2, 1, 0})},
	)

	m := mustMesh([]*navmesh.Layer{main, shortcut})
	m.Bake()

	for _, cand := range m.FindStitchPoints() {
		pairs := make([][2]navmesh.Vec2, len(cand.Points))
		for i, pt := range cand.Points {
			pairs[i] = [2]navmesh.Vec2{pt, pt}
		}
		must(m.StitchAtPoints(cand.LayerA, cand.LayerB, pairs, false))
	}
	m.Bake()
	return m
}

// CornerNook builds a single L-shaped room (a 4x2 base strip plus a 2x2
// column rising from its left end, the 2x2 quadrant above the base strip's
// right end left empty) split into two convex polygons. The reflex vertex
// at (2,2), where the missing quadrant bites into the room, forces any taut
// path between the base strip and the column to bend around it rather than
// cut the corner.
func CornerNook() *navmesh.Mesh {
	const max = navmesh.SentinelPolyID
	p := func(ids ...navmesh.PolyID) []navmesh.PolyID { return ids }

	l := mustLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(v(0, 0), p(0, max)),    // 0
			navmesh.NewVertex(v(4, 0), p(0, max)),    // 1
			navmesh.NewVertex(v(4, 2), p(0, max)),    // 2
			navmesh.NewVertex(v(2, 2), p(0, 1, max)), // 3: reflex pivot
			navmesh.NewVertex(v(0, 2), p(0, 1, max)), // 4
			navmesh.NewVertex(v(2, 4), p(1, max)),    // 5
			navmesh.NewVertex(v(0, 4), p(1, max)),    // 6
		},
		[]navmesh.Polygon{
			navmesh.NewPolygon([]uint32{0, 1, 2, 3, 4}), // base strip
			navmesh.NewPolygon([]uint32{4, 3, 5, 6}),    // column
		},
	)
	m := mustMesh([]*navmesh.Layer{l})
	m.Bake()
	return m
}

// PillarRoom builds a 10x10 room with a 2x2 impassable pillar at its
// center, decomposed into four convex strips tiling the room around the
// pillar (south/north full-width bands, west/east bands alongside it).
// Queries straight across the pillar must bend around one of its two
// nearest corners.
func PillarRoom() *navmesh.Mesh {
	const max = navmesh.SentinelPolyID
	p := func(ids ...navmesh.PolyID) []navmesh.PolyID { return ids }

	l := mustLayer(
		[]navmesh.Vertex{
			navmesh.NewVertex(v(0, 0), p(0, max)),     // 0 A
			navmesh.NewVertex(v(10, 0), p(0, max)),    // 1 B
			navmesh.NewVertex(v(10, 4), p(0, 3, max)), // 2 C
			navmesh.NewVertex(v(6, 4), p(0, 3, max)),  // 3 D
			navmesh.NewVertex(v(4, 4), p(0, 2, max)),  // 4 E
			navmesh.NewVertex(v(0, 4), p(0, 2, max)),  // 5 F
			navmesh.NewVertex(v(0, 6), p(2, 1, max)),  // 6 G
			navmesh.NewVertex(v(4, 6), p(2, 1, max)),  // 7 H
			navmesh.NewVertex(v(6, 6), p(3, 1, max)),  // 8 I
			navmesh.NewVertex(v(10, 6), p(3, 1, max)), // 9 J
			navmesh.NewVertex(v(10, 10), p(1, max)),   // 10 K
			navmesh.NewVertex(v(0, 10), p(1, max)),    // 11 L
		},
		[]navmesh.Polygon{
			navmesh.NewPolygon([]uint32{0, 1, 2, 3, 4, 5}),   // 0 south
			navmesh.NewPolygon([]uint32{6, 7, 8, 9, 10, 11}), // 1 north
			navmesh.NewPolygon([]uint32{5, 4, 7, 6}),         // 2 west
			navmesh.NewPolygon([]uint32{3, 2, 9, 8}),         // 3 east
		},
	)
	m := mustMesh([]*navmesh.Layer{l})
	m.Bake()
	return m
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
