package navmesh

// rootPrecision is the quantization factor used to key dominance lookups by
// root position: two successors reaching geometrically identical roots via
// different edges must hash/compare equal despite floating-point jitter.
const rootPrecision = 1000

// rootKey is the quantized, hashable form of a root position used as the
// key of SearchInstance's dominance map.
type rootKey struct {
	x, y int32
}

func quantizeRoot(p Vec2) rootKey {
	return rootKey{x: int32(p.X * rootPrecision), y: int32(p.Y * rootPrecision)}
}

// layerPoint is one annotated point of a detailed, layer-aware path: the
// point itself, and the layer whose cost applies to the segment ending
// here.
type layerPoint struct {
	Point Vec2
	Layer uint8
}

// SearchNode is one frontier element of the Polyanya expansion: a root
// (the last turning point), the interval through which the path continues,
// and the polygons on either side of that interval.
type SearchNode struct {
	Path           []Vec2
	PathWithLayers []layerPoint
	// Polygons is the chain of polygons entered so far, starting with the
	// query's start polygon; it becomes Path.PathThroughPolygons on
	// termination.
	Polygons []PolyID

	Root             Vec2
	IntervalA        Vec2 // the "right" endpoint (interval.0)
	IntervalB        Vec2 // the "left" endpoint (interval.1)
	EdgeA, EdgeB     uint32
	PolygonFrom      PolyID
	PolygonTo        PolyID
	PrevPolygonLayer uint8

	G float32 // distance from the search origin to Root, along the path so far
	H float32 // heuristic estimate of the remaining distance from Root to the goal
}

// F is the node's priority: the estimated total path length through Root.
func (n *SearchNode) F() float32 { return n.G + n.H }

// nodeArena is a staging buffer for nodes generated by a single
// successors() pass, flushed into the priority queue in one batch. The
// straight-through optimization inspects (and may consume) the staged
// nodes before they ever reach the heap.
type nodeArena struct {
	buf []*SearchNode
}

func (a *nodeArena) stage(n *SearchNode) { a.buf = append(a.buf, n) }
func (a *nodeArena) drain() []*SearchNode {
	out := a.buf
	a.buf = nil
	return out
}
