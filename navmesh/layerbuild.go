package navmesh

// NewLayerFromPolygons builds a Layer from raw geometry: vertex coordinates
// plus a counter-clockwise vertex-index ring per polygon, with no incidence
// list or corner flag supplied by the caller. Adjacency is derived by
// matching each directed edge (a,b) of one polygon against the reverse
// directed edge (b,a) of another; an edge with no match is a boundary
// edge, and its endpoints each get a sentinel entry in their incidence
// list.
//
// This covers "assemble a layer from an already-decomposed convex polygon
// set" - imported OBJ geometry, or a caller's own decomposition - it does
// not decompose or triangulate non-convex input itself.
func NewLayerFromPolygons(coords []Vec2, rings [][]uint32) (*Layer, error) {
	if len(coords) == 0 || len(rings) == 0 {
		return nil, newError(EmptyMesh, "layer has %d vertices, %d polygons", len(coords), len(rings))
	}

	type directedEdge struct{ a, b uint32 }
	edgeOwner := make(map[directedEdge]int, len(rings)*4)
	polygons := make([]Polygon, len(rings))
	for pi, ring := range rings {
		polygons[pi] = NewPolygon(ring)
		n := len(ring)
		for i := 0; i < n; i++ {
			a, b := ring[i], ring[(i+1)%n]
			edgeOwner[directedEdge{a, b}] = pi
		}
	}

	vertices := make([]Vertex, len(coords))
	boundary := make([]bool, len(coords))
	for pi, ring := range rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			a, b := ring[i], ring[(i+1)%n]
			vertices[a].Polygons = append(vertices[a].Polygons, PolyID(pi))
			if _, ok := edgeOwner[directedEdge{b, a}]; !ok {
				boundary[a] = true
				boundary[b] = true
			}
		}
	}
	for vi, c := range coords {
		vertices[vi].Coords = c
		if boundary[vi] {
			vertices[vi].Polygons = append(vertices[vi].Polygons, SentinelPolyID)
		}
	}

	l, err := NewLayer(vertices, polygons)
	if err != nil {
		return nil, err
	}
	m, err := NewMesh([]*Layer{l})
	if err != nil {
		return nil, err
	}
	reorderNeighborsCCWAndFixCorners(m, 0, allVertexIndices(&m.Layers[0]))
	fresh := m.Layers[0]
	return &fresh, nil
}
