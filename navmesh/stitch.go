package navmesh

// StitchPair names one correspondence between two layers' boundary vertices
// that Mesh.StitchAtVertices should merge: local vertex index VertexA in
// LayerA corresponds to local vertex index VertexB in LayerB.
type StitchPair struct {
	VertexA, VertexB uint32
}

// StitchAtVertices merges the incidence lists of each corresponding vertex
// pair so that searches can cross between layerA and layerB at those
// points. If oneWay is true the connection only runs from layerA into
// layerB: layerB's vertices gain no new neighbors.
//
// Callers must re-run Mesh.Bake after stitching; connectivity (and
// therefore the island map) has changed.
func (m *Mesh) StitchAtVertices(layerA, layerB uint8, pairs []StitchPair, oneWay bool) error {
	if int(layerA) >= len(m.Layers) || int(layerB) >= len(m.Layers) {
		return newError(InvalidVertex, "stitch references layer %d/%d, mesh has %d layers", layerA, layerB, len(m.Layers))
	}
	la, lb := &m.Layers[layerA], &m.Layers[layerB]
	for _, pr := range pairs {
		if int(pr.VertexA) >= len(la.Vertices) || int(pr.VertexB) >= len(lb.Vertices) {
			return newError(InvalidVertex, "stitch pair (%d,%d) out of range", pr.VertexA, pr.VertexB)
		}
	}
	for _, pr := range pairs {
		va := &la.Vertices[pr.VertexA]
		vb := &lb.Vertices[pr.VertexB]
		// Snapshot each side's *own-layer* neighbors only, before mutating
		// either: a vertex already stitched to some third layer must not
		// leak that third layer's neighbors across this stitch too, and
		// restricting the snapshot to layerA/layerB respectively (rather
		// than the vertex's whole, possibly already-stitched, Polygons
		// slice) is what makes stitching the same pair twice append the
		// same entries both times instead of compounding them.
		vaOwn := ownLayerPolygons(va.Polygons, layerA)
		vbOwn := ownLayerPolygons(vb.Polygons, layerB)
		va.Polygons = appendMissing(va.Polygons, vbOwn)
		if !oneWay {
			vb.Polygons = appendMissing(vb.Polygons, vaOwn)
		}
	}
	reorderNeighborsCCWAndFixCorners(m, layerA, pairsVertexIndices(pairs, true))
	if !oneWay {
		reorderNeighborsCCWAndFixCorners(m, layerB, pairsVertexIndices(pairs, false))
	}
	return nil
}

// StitchAtPoints is StitchAtVertices for callers who only have world-space
// coordinates: each pair names one point in layerA's space and one in
// layerB's space, each resolved to its nearest vertex before stitching.
func (m *Mesh) StitchAtPoints(layerA, layerB uint8, points [][2]Vec2, oneWay bool) error {
	if int(layerA) >= len(m.Layers) || int(layerB) >= len(m.Layers) {
		return newError(InvalidVertex, "stitch references layer %d/%d, mesh has %d layers", layerA, layerB, len(m.Layers))
	}
	la, lb := &m.Layers[layerA], &m.Layers[layerB]
	pairs := make([]StitchPair, 0, len(points))
	for _, pt := range points {
		va, ok := nearestVertex(la, pt[0])
		if !ok {
			return newError(InvalidVertex, "no vertex near %v in layer %d", pt[0], layerA)
		}
		vb, ok := nearestVertex(lb, pt[1])
		if !ok {
			return newError(InvalidVertex, "no vertex near %v in layer %d", pt[1], layerB)
		}
		pairs = append(pairs, StitchPair{VertexA: va, VertexB: vb})
	}
	return m.StitchAtVertices(layerA, layerB, pairs, oneWay)
}

// nearestVertex finds the vertex of l nearest to point, given in world
// coordinates - matching FindStitchPoints, which reports its candidates in
// world space too.
func nearestVertex(l *Layer, point Vec2) (uint32, bool) {
	best := uint32(0)
	bestD := float32(-1)
	found := false
	for vi, v := range l.Vertices {
		d := l.World(v.Coords).DistanceSquared(point)
		if !found || d < bestD {
			best, bestD, found = uint32(vi), d, true
		}
	}
	return best, found
}

// ownLayerPolygons returns the entries of in that belong to layer itself,
// excluding both sentinels and any foreign-layer entries a previous stitch
// may already have appended.
func ownLayerPolygons(in []PolyID, layer uint8) []PolyID {
	out := make([]PolyID, 0, len(in))
	for _, p := range in {
		if !p.IsSentinel() && p.Layer() == layer {
			out = append(out, p)
		}
	}
	return out
}

// appendMissing appends each entry of add not already present in dst,
// so that stitching the same pair of vertices twice leaves the incidence
// list unchanged the second time.
func appendMissing(dst, add []PolyID) []PolyID {
	for _, p := range add {
		dup := false
		for _, existing := range dst {
			if existing == p {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, p)
		}
	}
	return dst
}

func pairsVertexIndices(pairs []StitchPair, side bool) []uint32 {
	out := make([]uint32, len(pairs))
	for i, p := range pairs {
		if side {
			out[i] = p.VertexA
		} else {
			out[i] = p.VertexB
		}
	}
	return out
}

// RemoveStitchesToLayer strips every cross-layer incidence entry that
// points at target (from every other layer) and every foreign entry that
// target's own vertices picked up from any other layer, undoing all
// stitches that touch target without disturbing stitches between other
// layer pairs.
func (m *Mesh) RemoveStitchesToLayer(target uint8) error {
	if int(target) >= len(m.Layers) {
		return newError(InvalidVertex, "layer %d out of range", target)
	}
	tgt := &m.Layers[target]
	for vi := range tgt.Vertices {
		tgt.Vertices[vi].Polygons = filterPolygons(tgt.Vertices[vi].Polygons, func(p PolyID) bool {
			return p.IsSentinel() || p.Layer() == tgt.Index
		})
	}
	for li := range m.Layers {
		if uint8(li) == target {
			continue
		}
		l := &m.Layers[li]
		for vi := range l.Vertices {
			l.Vertices[vi].Polygons = filterPolygons(l.Vertices[vi].Polygons, func(p PolyID) bool {
				return p.IsSentinel() || p.Layer() != target
			})
		}
	}
	reorderNeighborsCCWAndFixCorners(m, tgt.Index, allVertexIndices(tgt))
	return nil
}

// RemoveStitches undoes every cross-layer stitch in the mesh: each layer's
// vertices are left with only their own (same-layer) incidence entries.
func (m *Mesh) RemoveStitches() {
	for li := range m.Layers {
		l := &m.Layers[li]
		for vi := range l.Vertices {
			l.Vertices[vi].Polygons = filterPolygons(l.Vertices[vi].Polygons, func(p PolyID) bool {
				return p.IsSentinel() || p.Layer() == l.Index
			})
		}
		reorderNeighborsCCWAndFixCorners(m, l.Index, allVertexIndices(l))
	}
}

func filterPolygons(in []PolyID, keep func(PolyID) bool) []PolyID {
	out := in[:0]
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func allVertexIndices(l *Layer) []uint32 {
	out := make([]uint32, len(l.Vertices))
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

// RestitchLayerAtVertices re-stitches target against other at the given
// vertex pairs, first removing any existing stitches between the two
// (so calling this repeatedly as a layer's boundary geometry changes never
// accumulates stale connections).
func (m *Mesh) RestitchLayerAtVertices(target, other uint8, pairs []StitchPair, oneWay bool) error {
	if err := m.removeStitchesBetween(target, other); err != nil {
		return err
	}
	return m.StitchAtVertices(target, other, pairs, oneWay)
}

// RestitchLayerAtPoints is RestitchLayerAtVertices for world-space points.
func (m *Mesh) RestitchLayerAtPoints(target, other uint8, points [][2]Vec2, oneWay bool) error {
	if err := m.removeStitchesBetween(target, other); err != nil {
		return err
	}
	return m.StitchAtPoints(target, other, points, oneWay)
}

func (m *Mesh) removeStitchesBetween(a, b uint8) error {
	if int(a) >= len(m.Layers) || int(b) >= len(m.Layers) {
		return newError(InvalidVertex, "layer %d/%d out of range", a, b)
	}
	la, lb := &m.Layers[a], &m.Layers[b]
	for vi := range la.Vertices {
		la.Vertices[vi].Polygons = filterPolygons(la.Vertices[vi].Polygons, func(p PolyID) bool {
			return p.IsSentinel() || p.Layer() != b
		})
	}
	for vi := range lb.Vertices {
		lb.Vertices[vi].Polygons = filterPolygons(lb.Vertices[vi].Polygons, func(p PolyID) bool {
			return p.IsSentinel() || p.Layer() != a
		})
	}
	reorderNeighborsCCWAndFixCorners(m, la.Index, allVertexIndices(la))
	reorderNeighborsCCWAndFixCorners(m, lb.Index, allVertexIndices(lb))
	return nil
}

// StitchCandidate is one coordinate shared by two or more layers' boundary
// vertices, as found by FindStitchPoints.
type StitchCandidate struct {
	LayerA, LayerB uint8
	Points         []Vec2
}

// FindStitchPoints scans every pair of layers for boundary vertices (those
// with at least one sentinel incidence entry) whose world coordinates
// coincide, returning one StitchCandidate per layer pair that shares any.
// This is an O(V^2) scan across the mesh's boundary vertices; fine for
// build-time tooling, not meant to run per-query.
func (m *Mesh) FindStitchPoints() []StitchCandidate {
	type boundaryVertex struct {
		layer uint8
		world Vec2
	}
	var boundary []boundaryVertex
	for li := range m.Layers {
		l := &m.Layers[li]
		for _, v := range l.Vertices {
			if isBoundaryVertex(v) {
				boundary = append(boundary, boundaryVertex{layer: l.Index, world: l.World(v.Coords)})
			}
		}
	}

	found := map[[2]uint8][]Vec2{}
	for i := 0; i < len(boundary); i++ {
		for j := i + 1; j < len(boundary); j++ {
			a, b := boundary[i], boundary[j]
			if a.layer == b.layer || !a.world.ApproxEqual(b.world) {
				continue
			}
			key := [2]uint8{a.layer, b.layer}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			found[key] = append(found[key], a.world)
		}
	}

	out := make([]StitchCandidate, 0, len(found))
	for key, pts := range found {
		out = append(out, StitchCandidate{LayerA: key[0], LayerB: key[1], Points: pts})
	}
	return out
}

func isBoundaryVertex(v Vertex) bool {
	for _, p := range v.Polygons {
		if p.IsSentinel() {
			return true
		}
	}
	return false
}

// reorderNeighborsCCWAndFixCorners re-sorts each of the named vertices'
// incidence lists after a stitch adds or removes entries, and recomputes
// IsCorner: a vertex that carries at least one sentinel entry is a corner -
// a legal turning point for the search.
//
// Each vertex's real polygon entries are sorted counter-clockwise by the
// angle, around that vertex, of each polygon's centroid (see
// sortPolygonsByAngle). Sentinel entries get no angle and are placed after
// all real entries, so a sentinel does not necessarily sit at the angular
// gap between the first and last polygon. The vertex is a corner iff a
// sentinel entry remains after sorting.
func reorderNeighborsCCWAndFixCorners(m *Mesh, layerIdx uint8, vertexIndices []uint32) {
	l := &m.Layers[layerIdx]
	for _, vi := range vertexIndices {
		v := &l.Vertices[vi]
		sortPolygonsByAngle(m, l, v)
		v.IsCorner = isBoundaryVertex(*v)
	}
}

type angledPolygon struct {
	id    PolyID
	angle float32
	real  bool
}

// sortPolygonsByAngle orders v.Polygons counter-clockwise by the angle, in
// world space around v's own world position, of each polygon's centroid -
// a neighbor may belong to a different (stitched) layer with its own
// offset/scale, so both v and each candidate centroid are converted to
// world coordinates through their owning layer's transform before the
// angle is taken. Sentinel entries have no centroid and sort last: what
// matters for search correctness is that the real polygons stay
// contiguous and angle-ordered, not where the sentinel(s) land among them.
func sortPolygonsByAngle(m *Mesh, l *Layer, v *Vertex) {
	origin := l.World(v.Coords)
	ks := make([]angledPolygon, len(v.Polygons))
	for i, p := range v.Polygons {
		if p.IsSentinel() {
			ks[i] = angledPolygon{id: p, real: false}
			continue
		}
		owner := &m.Layers[p.Layer()]
		center := owner.World(polygonCentroid(&owner.Polygons[p.Polygon()], owner))
		d := center.Sub(origin)
		ks[i] = angledPolygon{id: p, angle: atan2_32(d.Y, d.X), real: true}
	}
	for i := 1; i < len(ks); i++ {
		for j := i; j > 0 && angledLess(ks[j], ks[j-1]); j-- {
			ks[j], ks[j-1] = ks[j-1], ks[j]
		}
	}
	for i, k := range ks {
		v.Polygons[i] = k.id
	}
}

func angledLess(a, b angledPolygon) bool {
	if a.real != b.real {
		return a.real // real entries sort before sentinels
	}
	return a.angle < b.angle
}

func polygonCentroid(p *Polygon, l *Layer) Vec2 {
	var sum Vec2
	for _, vi := range p.Vertices {
		sum = sum.Add(l.Vertices[vi].Coords)
	}
	return sum.Mulf(1 / float32(len(p.Vertices)))
}
