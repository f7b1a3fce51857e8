package navmesh

import assert "github.com/arl/assertgo"

// Vertex is a 2D point in its layer's local coordinates, plus the ordered
// (counter-clockwise) list of polygons incident to it. SentinelPolyID marks
// the angular gap for vertices that lie on the mesh boundary.
type Vertex struct {
	Coords   Vec2
	Polygons []PolyID
	// IsCorner marks vertices that behave as turning points during search:
	// their incident-polygon angular span is less than a full turn. Set by
	// reorderNeighborsCCWAndFixCorners, which runs after every stitch.
	IsCorner bool
}

// NewVertex builds a Vertex from its coordinates and incident-polygon list,
// in whatever order the caller supplies. NewLayer keeps that order as
// given; NewLayerFromPolygons and the stitching operations sort incidence
// lists (via reorderNeighborsCCWAndFixCorners).
func NewVertex(coords Vec2, polygons []PolyID) Vertex {
	return Vertex{Coords: coords, Polygons: append([]PolyID(nil), polygons...)}
}

// Polygon is an ordered, counter-clockwise ring of vertex indices local to
// its layer.
type Polygon struct {
	Vertices []uint32
	// IsOneWay is true iff this polygon is a dead-end branch: it has
	// exactly one non-sentinel neighbor polygon. Dead-end polygons are
	// pruned during search unless they are the search target.
	IsOneWay bool
}

// NewPolygon builds a Polygon from a counter-clockwise vertex-index ring.
// IsOneWay is computed later, once the polygon is part of a Layer and the
// vertex incidence lists are known (see Layer.computeOneWayFlags).
func NewPolygon(vertices []uint32) Polygon {
	return Polygon{Vertices: append([]uint32(nil), vertices...)}
}

// edge returns the i-th directed edge of p, as a pair of local vertex
// indices, wrapping around the ring.
func (p *Polygon) edge(i int) (uint32, uint32) {
	n := len(p.Vertices)
	return p.Vertices[i], p.Vertices[(i+1)%n]
}

// Layer is a planar subdivision of convex polygons, plus the read-time
// transform (offset/scale) and cost multiplier that let several layers
// overlay the same 2D space at different effective costs.
type Layer struct {
	Vertices []Vertex
	Polygons []Polygon

	// Offset is added to every local coordinate at read time.
	Offset Vec2
	// Scale multiplies distances travelled within this layer during search
	// and path-length accounting. It does not displace the layer's
	// geometry; only Offset does that.
	Scale Vec2
	// Cost is a per-layer multiplier on Euclidean distance.
	Cost float32

	// Islands maps polygon index -> root polygon index of its connected
	// component, for O(1) unreachability tests. Populated by Bake.
	Islands []int

	// Index is this layer's position within its owning Mesh. It is the zero
	// value until the layer is assembled into a Mesh by NewMesh, which also
	// tags every vertex's own (pre-stitch) incidence entries with it (Decode
	// sets Index without re-tagging, since encoded entries carry their tags) -
	// before that point every layer's own entries are implicitly "layer 0",
	// which is self-consistent in isolation.
	Index uint8

	locator *layerLocator
}

// World returns a layer-local point transformed into world coordinates.
// Scale does not participate here: it weights distances during search and
// path-length accounting, it does not move vertices.
func (l *Layer) World(local Vec2) Vec2 {
	return local.Add(l.Offset)
}

// NewLayer validates and builds a Layer from its vertex and polygon arrays.
// The returned layer has Offset=(0,0), Scale=(1,1), Cost=1, and is not yet
// baked (no BVH locator, no islands); call Bake before using it for
// point-location queries or island tests.
func NewLayer(vertices []Vertex, polygons []Polygon) (*Layer, error) {
	if len(vertices) == 0 || len(polygons) == 0 {
		return nil, newError(EmptyMesh, "layer has %d vertices, %d polygons", len(vertices), len(polygons))
	}
	if len(polygons) > MaxPolygonsPerLayer {
		return nil, newError(TooManyPolygons, "%d polygons exceeds limit of %d", len(polygons), MaxPolygonsPerLayer)
	}
	for pi, p := range polygons {
		if len(p.Vertices) < 3 {
			return nil, newError(MalformedPolygon, "polygon %d has %d vertices", pi, len(p.Vertices))
		}
		for _, vi := range p.Vertices {
			if int(vi) >= len(vertices) {
				return nil, newError(InvalidVertex, "polygon %d references vertex %d, have %d vertices", pi, vi, len(vertices))
			}
		}
		var area2 float32
		for i := range p.Vertices {
			a, b := p.edge(i)
			area2 += vertices[a].Coords.PerpDot(vertices[b].Coords)
		}
		if area2 < 0 {
			return nil, newError(MalformedPolygon, "polygon %d is wound clockwise", pi)
		}
	}

	l := &Layer{
		Vertices: vertices,
		Polygons: polygons,
		Offset:   Vec2Zero,
		Scale:    Vec2{X: 1, Y: 1},
		Cost:     1,
	}
	for vi := range l.Vertices {
		l.Vertices[vi].IsCorner = isBoundaryVertex(l.Vertices[vi])
	}
	l.computeOneWayFlags()
	return l, nil
}

// computeOneWayFlags derives IsOneWay for every polygon in the layer: a
// polygon is one-way iff it has exactly one distinct non-sentinel neighbor
// across its whole boundary (a dead-end branch off the rest of the mesh).
// Re-run by Layer.bake, since stitching can turn a polygon's only
// connection from "none" (a true dead end) into "one" (now one-way) or add
// a second, promoting it out of one-way status entirely.
func (l *Layer) computeOneWayFlags() {
	for pi := range l.Polygons {
		p := &l.Polygons[pi]
		self := PackPolyID(l.Index, uint32(pi))
		seen := map[PolyID]bool{}
		for i := range p.Vertices {
			a, b := p.edge(i)
			other := l.otherSideOfEdge(a, b, self)
			if !other.IsSentinel() {
				seen[other] = true
			}
		}
		p.IsOneWay = len(seen) == 1
	}
}

// otherSideOfEdge returns the polygon on the other side of the edge
// (vAIdx,vBIdx), i.e. the non-sentinel element common to both vertices'
// incidence lists other than exclude. Returns SentinelPolyID if there is
// none (the edge is on the mesh boundary, or unstitched).
func (l *Layer) otherSideOfEdge(vAIdx, vBIdx uint32, exclude PolyID) PolyID {
	a := l.Vertices[vAIdx].Polygons
	b := l.Vertices[vBIdx].Polygons
	for _, pa := range a {
		if pa.IsSentinel() || pa == exclude {
			continue
		}
		for _, pb := range b {
			if pa == pb {
				return pa
			}
		}
	}
	return SentinelPolyID
}

// Coords identifies a query point, optionally pinned to a specific layer
// and/or a specific polygon within that layer, instead of leaving
// point-location to search every layer.
type Coords struct {
	Pos     Vec2
	Layer   int // -1 means "search all layers"
	Polygon PolyID
	HasPoly bool
}

// AnyLayer wraps a bare point with no layer hint.
func AnyLayer(pos Vec2) Coords { return Coords{Pos: pos, Layer: -1} }

// OnLayer wraps a point with an explicit layer hint.
func OnLayer(pos Vec2, layer int) Coords { return Coords{Pos: pos, Layer: layer} }

// Mesh is the top-level navmesh: an array of layers sharing a common
// polygon-ID address space, plus the search parameters used by
// point-location fallback and nearest-point snapping.
type Mesh struct {
	Layers []Layer

	// Delta is the probe radius used by GetPointLocation's compass search.
	Delta float32
	// SearchSteps bounds the spiral search performed by GetClosestPoint.
	SearchSteps uint32
	// Diagonal is an informational upper bound on mesh extent, exposed via
	// Stats for callers sizing buffers or timeouts.
	Diagonal float32

	scenarios uint64
}

// NewMesh validates and builds a Mesh from a set of already-constructed
// layers. Layers are not baked automatically; call Bake once construction
// and stitching are complete.
func NewMesh(layers []*Layer) (*Mesh, error) {
	if len(layers) == 0 {
		return nil, newError(EmptyMesh, "mesh has no layers")
	}
	if len(layers) > MaxLayers {
		return nil, newError(TooManyLayers, "%d layers exceeds limit of %d", len(layers), MaxLayers)
	}
	m := &Mesh{
		Layers:      make([]Layer, len(layers)),
		Delta:       0.01,
		SearchSteps: 3,
	}
	for i, l := range layers {
		assert.True(l != nil, "nil layer at index %d", i)
		m.Layers[i] = *l
		m.Layers[i].tagOwnPolygonIDs(uint8(i))
	}
	m.Diagonal = m.computeDiagonal()
	return m, nil
}

// tagOwnPolygonIDs assigns the layer its real index and, if that index is
// non-zero, rewrites every vertex's own (still-untagged, i.e. Layer()==0)
// incidence entries to carry it. This runs exactly once, when the layer
// joins a Mesh: from then on, "Layer()==l.Index" identifies an entry as
// belonging to this layer itself, and anything else found in a vertex's
// incidence list after stitching is a genuinely foreign entry.
func (l *Layer) tagOwnPolygonIDs(index uint8) {
	l.Index = index
	if index == 0 {
		return
	}
	for vi := range l.Vertices {
		polys := l.Vertices[vi].Polygons
		for pi, p := range polys {
			if !p.IsSentinel() && p.Layer() == 0 {
				polys[pi] = PackPolyID(index, p.Polygon())
			}
		}
	}
}

func (m *Mesh) computeDiagonal() float32 {
	var minX, minY, maxX, maxY float32
	first := true
	for li := range m.Layers {
		l := &m.Layers[li]
		for _, v := range l.Vertices {
			w := l.World(v.Coords)
			if first {
				minX, maxX, minY, maxY = w.X, w.X, w.Y, w.Y
				first = false
				continue
			}
			minX, maxX = fmin32(minX, w.X), fmax32(maxX, w.X)
			minY, maxY = fmin32(minY, w.Y), fmax32(maxY, w.Y)
		}
	}
	return Vec2{X: minX, Y: minY}.Distance(Vec2{X: maxX, Y: maxY})
}

// Bake computes the per-layer BVH polygon locator and island map for every
// layer in the mesh. It must be called (again) after any stitching
// operation that changes connectivity and before running queries.
func (m *Mesh) Bake() {
	for i := range m.Layers {
		m.Layers[i].bake()
	}
}

// Unbake drops every layer's baked locator and island map, typically ahead
// of a batch of stitching edits whose intermediate states will never be
// queried.
func (m *Mesh) Unbake() {
	for i := range m.Layers {
		m.Layers[i].unbake()
	}
}

// Stats is a snapshot of a mesh's size and query counters.
type Stats struct {
	Layers      int
	Vertices    int
	Polygons    int
	Scenarios   uint64
	Diagonal    float32
	SearchSteps uint32
}

// Stats returns a snapshot of the mesh's size and query-count counters.
func (m *Mesh) Stats() Stats {
	s := Stats{Layers: len(m.Layers), Diagonal: m.Diagonal, Scenarios: m.scenarios, SearchSteps: m.SearchSteps}
	for i := range m.Layers {
		s.Vertices += len(m.Layers[i].Vertices)
		s.Polygons += len(m.Layers[i].Polygons)
	}
	return s
}
