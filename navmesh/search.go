package navmesh

// SearchState is the result of a single Step of a SearchInstance, letting a
// caller bound work by step count rather than only by wall-clock time.
type SearchState uint8

const (
	// StateInProgress means Step consumed one heap pop and made progress,
	// but the goal polygon has not yet been reached.
	StateInProgress SearchState = iota
	// StateFound means the goal polygon was reached; call Result for the
	// reconstructed Path.
	StateFound
	// StateNotFound means the frontier was exhausted without reaching the
	// goal polygon.
	StateNotFound
)

// SearchInstance is a single A* expansion over a Mesh's polygon adjacency,
// from one located point to another. It owns its own queue, node arena and
// dominance map; it is created per query and discarded afterwards.
type SearchInstance struct {
	mesh *Mesh

	queue       *nodeQueue
	arena       nodeArena
	rootHistory map[rootKey]float32

	fromPos   Vec2
	fromLayer uint8
	to        Vec2
	polygonTo PolyID

	blockedLayers map[uint8]bool
	minLayerCost  float32

	result Path
}

// NewSearchInstance builds and sets up a search from (fromPos, fromPoly) to
// (toPos, toPoly), blocking any layer in blockedLayers from being traversed
// (the polygon locations themselves are not re-validated here; callers go
// through Mesh.Path/PathOnLayers/PathFromTo which perform that validation).
func NewSearchInstance(mesh *Mesh, fromPos Vec2, fromPoly PolyID, toPos Vec2, toPoly PolyID, blockedLayers []uint8) *SearchInstance {
	si := &SearchInstance{
		mesh:          mesh,
		queue:         newNodeQueue(),
		rootHistory:   make(map[rootKey]float32, 16),
		fromPos:       fromPos,
		fromLayer:     fromPoly.Layer(),
		to:            toPos,
		polygonTo:     toPoly,
		blockedLayers: make(map[uint8]bool, len(blockedLayers)),
		minLayerCost:  minLayerCost(mesh, blockedLayers),
	}
	for _, l := range blockedLayers {
		si.blockedLayers[l] = true
	}
	si.rootHistory[quantizeRoot(fromPos)] = 0

	startLayer := &mesh.Layers[fromPoly.Layer()]
	startPoly := &startLayer.Polygons[fromPoly.Polygon()]
	self := fromPoly

	emptyNode := &SearchNode{
		Polygons:    []PolyID{fromPoly},
		Root:        fromPos,
		PolygonFrom: fromPoly,
		PolygonTo:   fromPoly,
	}

	for i := range startPoly.Vertices {
		aIdx, bIdx := startPoly.edge(i)
		other := startLayer.otherSideOfEdge(aIdx, bIdx, self)
		if si.blockedLayers[other.Layer()] {
			continue
		}
		if other == toPoly || (!other.IsSentinel() && !mesh.Layers[other.Layer()].Polygons[other.Polygon()].IsOneWay) {
			a := startLayer.World(startLayer.Vertices[aIdx].Coords)
			b := startLayer.World(startLayer.Vertices[bIdx].Coords)
			si.addNode(fromPos, other, a, aIdx, b, bIdx, emptyNode)
		}
	}
	si.queue.extend(si.arena.drain())
	return si
}

func minLayerCost(mesh *Mesh, blockedLayers []uint8) float32 {
	blocked := make(map[uint8]bool, len(blockedLayers))
	for _, l := range blockedLayers {
		blocked[l] = true
	}
	min := float32(-1)
	for i := range mesh.Layers {
		if blocked[uint8(i)] {
			continue
		}
		c := mesh.Layers[i].Cost
		if min < 0 || c < min {
			min = c
		}
	}
	if min < 0 {
		return 1
	}
	return min
}

func isNaN32(f float32) bool { return f != f }

// addNode extends node's path to root, scores the resulting node, and —
// unless the quantized root already has a known-better distance — stages it
// into the arena for this pass.
func (si *SearchInstance) addNode(root Vec2, otherSide PolyID, startPt Vec2, startEdgeIdx uint32, endPt Vec2, endEdgeIdx uint32, node *SearchNode) {
	layer := &si.mesh.Layers[node.PolygonTo.Layer()]

	newG := node.G
	path := append([]Vec2(nil), node.Path...)
	pwl := append([]layerPoint(nil), node.PathWithLayers...)
	if root != node.Root {
		path = append(path, root)
		pwl = appendLayerPoint(pwl, layerPoint{Point: root, Layer: node.PolygonTo.Layer()})
		newG += node.Root.Distance(root.Scale(layer.Scale)) * layer.Cost
	}

	h := Heuristic(root, si.to, startPt.Scale(layer.Scale), endPt.Scale(layer.Scale)) * si.minLayerCost
	if isNaN32(newG) || isNaN32(h) {
		return
	}

	polygons := append(append([]PolyID(nil), node.Polygons...), otherSide)

	newNode := &SearchNode{
		Path:             path,
		PathWithLayers:   pwl,
		Polygons:         polygons,
		Root:             root,
		IntervalA:        startPt,
		IntervalB:        endPt,
		EdgeA:            startEdgeIdx,
		EdgeB:            endEdgeIdx,
		PolygonFrom:      node.PolygonTo,
		PolygonTo:        otherSide,
		PrevPolygonLayer: node.PolygonTo.Layer(),
		G:                newG,
		H:                h,
	}

	key := quantizeRoot(root)
	if best, ok := si.rootHistory[key]; ok {
		if best < newNode.G {
			return
		}
	}
	si.rootHistory[key] = newNode.G
	si.arena.stage(newNode)
}

// appendLayerPoint appends p unless it is within Epsilon^2 of the last
// point already recorded, deduplicating consecutive points incrementally
// instead of in a second pass at path reconstruction.
func appendLayerPoint(pwl []layerPoint, p layerPoint) []layerPoint {
	if len(pwl) > 0 && pwl[len(pwl)-1].Point.DistanceSquared(p.Point) < Epsilon*Epsilon {
		return pwl
	}
	return append(pwl, p)
}

// Step performs one unit of search work: pops the best node, applies the
// dominance test, and either reconstructs the path (StateFound), expands
// successors (StateInProgress), or reports exhaustion (StateNotFound).
func (si *SearchInstance) Step() SearchState {
	for {
		if si.queue.empty() {
			return StateNotFound
		}
		next := si.queue.pop()

		if best, ok := si.rootHistory[quantizeRoot(next.Root)]; ok && best < next.G {
			continue // dominated: a shorter path to this root is already known
		}

		if next.PolygonTo == si.polygonTo {
			si.result = si.reconstructPath(next)
			return StateFound
		}

		si.successors(next)
		return StateInProgress
	}
}

// Run drives Step to completion (Found or NotFound) and returns the
// resulting Path and whether one was found.
func (si *SearchInstance) Run() (Path, bool) {
	for {
		switch si.Step() {
		case StateFound:
			return si.result, true
		case StateNotFound:
			return Path{}, false
		}
	}
}

func (si *SearchInstance) reconstructPath(next *SearchNode) Path {
	path := append([]Vec2(nil), next.Path...)
	pwl := append([]layerPoint(nil), next.PathWithLayers...)

	if turn, ok := TurningPoint(next.Root, si.to, next.IntervalA, next.IntervalB); ok {
		path = append(path, turn)
		pwl = appendLayerPoint(pwl, layerPoint{Point: turn, Layer: next.PolygonTo.Layer()})
	}
	path = append(path, si.to)
	pwl = appendLayerPoint(pwl, layerPoint{Point: si.to, Layer: next.PolygonTo.Layer()})

	length := float32(0)
	prevPoint := si.fromPos
	prevLayer := si.fromLayer
	for _, p := range pwl {
		layer := &si.mesh.Layers[prevLayer]
		length += prevPoint.Scale(layer.Scale).Distance(p.Point.Scale(layer.Scale)) * layer.Cost
		prevPoint, prevLayer = p.Point, p.Layer
	}

	return Path{
		Points:              path,
		Length:              length,
		PathThroughPolygons: append([]PolyID(nil), next.Polygons...),
		PathWithLayers:      layerPointsToPublic(pwl),
	}
}

// successors expands node, repeatedly consuming single unambiguous
// continuations via the straight-through optimization, until either the
// node buffer needs to be flushed to the heap or a stop condition fires.
func (si *SearchInstance) successors(node *SearchNode) {
	visited := map[PolyID]bool{}
	for {
		si.expandOnce(node)

		if len(si.arena.buf) == 1 && si.arena.buf[0].PolygonTo != si.polygonTo {
			previous := node
			node = si.arena.buf[0]
			si.arena.buf = nil

			if node.Root == previous.Root &&
				node.PolygonTo == previous.PolygonFrom &&
				node.PolygonFrom == previous.PolygonTo &&
				node.IntervalA == previous.IntervalB &&
				node.IntervalB == previous.IntervalA {
				// Going the exact reverse way we came from. Not expected to
				// trigger in a well-formed mesh; kept as a defensive guard
				// rather than an assertion because it is observed to fire
				// occasionally on degenerate geometry.
				break
			}
			if visited[node.PolygonTo] {
				// Infinite loop guard, same rationale as above.
				break
			}
			visited[node.PolygonTo] = true
			continue
		}
		break
	}
	si.queue.extend(si.arena.drain())
}

// expandOnce generates and scores every successor of node, staging accepted
// ones into the arena (without flushing to the heap).
func (si *SearchInstance) expandOnce(node *SearchNode) {
	targetLayer := &si.mesh.Layers[node.PolygonTo.Layer()]
	targetPoly := &targetLayer.Polygons[node.PolygonTo.Polygon()]

	prevLayer := &si.mesh.Layers[node.PrevPolygonLayer]
	prevEdgeEnd := prevLayer.World(prevLayer.Vertices[node.EdgeB].Coords)

	for _, succ := range GenerateSuccessors(targetLayer, targetPoly, node.Root, node.IntervalA, node.IntervalB, prevEdgeEnd) {
		aVertex := &targetLayer.Vertices[succ.EdgeA]
		bVertex := &targetLayer.Vertices[succ.EdgeB]

		other := targetLayer.otherSideOfEdge(succ.EdgeA, succ.EdgeB, node.PolygonTo)

		if other.IsSentinel() {
			continue // cul-de-sac
		}
		if si.blockedLayers[other.Layer()] {
			continue
		}
		if si.polygonTo != other && si.mesh.Layers[other.Layer()].Polygons[other.Polygon()].IsOneWay {
			continue // dead end
		}
		if node.PolygonFrom == other {
			continue // would revisit the polygon we just came from
		}

		const eps = 1.0e-10
		var root Vec2
		switch succ.Type {
		case SuccessorObservable:
			root = node.Root
		case SuccessorRightNonObservable:
			if succ.A.DistanceSquared(targetLayer.World(aVertex.Coords)) > eps {
				continue
			}
			prevVertex := &prevLayer.Vertices[node.EdgeA]
			if (prevVertex.IsCorner || si.incidentToBlockedOrSentinel(prevVertex)) &&
				prevLayer.World(prevVertex.Coords).DistanceSquared(node.IntervalA) < eps {
				root = node.IntervalA
			} else {
				continue
			}
		default: // SuccessorLeftNonObservable
			if succ.B.DistanceSquared(targetLayer.World(bVertex.Coords)) > eps {
				continue
			}
			prevVertex := &prevLayer.Vertices[node.EdgeB]
			if (prevVertex.IsCorner || si.incidentToBlockedOrSentinel(prevVertex)) &&
				prevLayer.World(prevVertex.Coords).DistanceSquared(node.IntervalB) < eps {
				root = node.IntervalB
			} else {
				continue
			}
		}

		if succ.A.DistanceSquared(succ.B) < 1.0e-10 {
			continue // zero-length interval
		}

		si.addNode(root, other, succ.A, succ.EdgeA, succ.B, succ.EdgeB, node)
	}
}

func (si *SearchInstance) incidentToBlockedOrSentinel(v *Vertex) bool {
	for _, p := range v.Polygons {
		if p.IsSentinel() || si.blockedLayers[p.Layer()] {
			return true
		}
	}
	return false
}
