package navmesh

// Path is the result of a successful pathfinding query: the polyline in
// world coordinates, its cost-weighted length (Euclidean distance scaled by
// each traversed layer's Cost), the chain of polygons the path passes
// through, and the same polyline annotated with the layer each segment ends
// in, for callers that need per-layer breakdowns.
type Path struct {
	Points              []Vec2
	Length              float32
	PathThroughPolygons []PolyID
	PathWithLayers      []LayerPoint
}

// LayerPoint is the exported form of the internal layerPoint.
type LayerPoint struct {
	Point Vec2
	Layer uint8
}

func layerPointsToPublic(pwl []layerPoint) []LayerPoint {
	out := make([]LayerPoint, len(pwl))
	for i, p := range pwl {
		out[i] = LayerPoint{Point: p.Point, Layer: p.Layer}
	}
	return out
}

// locate resolves a Coords into a concrete (world point, PolyID) pair,
// honoring any layer/polygon pinning it carries and otherwise falling back
// to GetPointLocation/GetClosestPoint on every unblocked layer in turn.
func (m *Mesh) locate(c Coords, blocked map[uint8]bool) (Vec2, PolyID, bool) {
	if c.HasPoly {
		return c.Pos, c.Polygon, true
	}
	if c.Layer >= 0 {
		if c.Layer >= len(m.Layers) || blocked[uint8(c.Layer)] {
			return Vec2{}, SentinelPolyID, false
		}
		return m.locateOnLayer(c.Pos, uint8(c.Layer))
	}
	for li := range m.Layers {
		if blocked[uint8(li)] {
			continue
		}
		if pos, id, ok := m.locateOnLayer(c.Pos, uint8(li)); ok {
			return pos, id, true
		}
	}
	return Vec2{}, SentinelPolyID, false
}

func (m *Mesh) locateOnLayer(world Vec2, layerIdx uint8) (Vec2, PolyID, bool) {
	layer := &m.Layers[layerIdx]
	local := world.Sub(layer.Offset)
	if id := layer.GetPointLocation(local, m.Delta); !id.IsSentinel() {
		return world, id.WithLayer(layerIdx), true
	}
	if snapped, id := layer.GetClosestPoint(local, m.Delta, int(m.SearchSteps)); !id.IsSentinel() {
		return layer.World(snapped), id.WithLayer(layerIdx), true
	}
	return Vec2{}, SentinelPolyID, false
}

// Path finds a taut, any-angle path between from and to, preferring layers
// with a lower Cost where several overlap, and blocking no layer.
func (m *Mesh) Path(from, to Coords) (Path, bool) {
	return m.PathOnLayers(from, to, nil)
}

// PathOnLayers is Path, additionally forbidding the search from entering or
// leaving through any layer index in blockedLayers.
func (m *Mesh) PathOnLayers(from, to Coords, blockedLayers []uint8) (Path, bool) {
	blocked := make(map[uint8]bool, len(blockedLayers))
	for _, l := range blockedLayers {
		blocked[l] = true
	}

	fromPos, fromPoly, ok := m.locate(from, blocked)
	if !ok {
		return Path{}, false
	}
	toPos, toPoly, ok := m.locate(to, blocked)
	if !ok {
		return Path{}, false
	}
	return m.PathFromTo(fromPos, fromPoly, toPos, toPoly, blockedLayers)
}

// PathFromTo runs a search between two already-located points/polygons,
// skipping point-location entirely. Exposed for callers (and tests) that
// already know which polygon a point lies in.
func (m *Mesh) PathFromTo(fromPos Vec2, fromPoly PolyID, toPos Vec2, toPoly PolyID, blockedLayers []uint8) (Path, bool) {
	m.scenarios++

	if fromPoly.IsSentinel() || toPoly.IsSentinel() {
		return Path{}, false
	}
	if fromPoly == toPoly {
		return Path{
			Points:              []Vec2{toPos},
			Length:              fromPos.Distance(toPos) * m.Layers[fromPoly.Layer()].Cost,
			PathThroughPolygons: []PolyID{fromPoly},
			PathWithLayers:      []LayerPoint{{Point: toPos, Layer: fromPoly.Layer()}},
		}, true
	}

	fromLayer := &m.Layers[fromPoly.Layer()]
	toLayer := &m.Layers[toPoly.Layer()]
	if fromLayer.Islands != nil && toLayer.Islands != nil && fromPoly.Layer() == toPoly.Layer() {
		if fromLayer.Islands[fromPoly.Polygon()] != toLayer.Islands[toPoly.Polygon()] {
			return Path{}, false // same layer, provably different connected components
		}
	}

	si := NewSearchInstance(m, fromPos, fromPoly, toPos, toPoly, blockedLayers)
	return si.Run()
}
