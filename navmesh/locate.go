package navmesh

import (
	"github.com/tidwall/rtree"
)

// layerLocator is the baked, queryable form of a Layer: a bounding-volume
// hierarchy over polygon AABBs (so "which polygons might contain p" is a
// tree query rather than a linear scan) plus the exact point-in-polygon
// test to disambiguate candidates.
type layerLocator struct {
	tree *rtree.RTreeG[uint32]
}

// bakePolygonFinder builds the per-polygon AABB index used by
// PointLocationBaked.
func (l *Layer) bakePolygonFinder() {
	tr := &rtree.RTreeG[uint32]{}
	for pi, p := range l.Polygons {
		min, max := polygonAABB(l, &p)
		tr.Insert([2]float64{float64(min.X), float64(min.Y)},
			[2]float64{float64(max.X), float64(max.Y)}, uint32(pi))
	}
	l.locator = &layerLocator{tree: tr}
}

func polygonAABB(l *Layer, p *Polygon) (min, max Vec2) {
	first := true
	for _, vi := range p.Vertices {
		c := l.Vertices[vi].Coords
		if first {
			min, max = c, c
			first = false
			continue
		}
		min.X, min.Y = fmin32(min.X, c.X), fmin32(min.Y, c.Y)
		max.X, max.Y = fmax32(max.X, c.X), fmax32(max.Y, c.Y)
	}
	return min, max
}

// bakeIslandsDetection flood-fills the polygon adjacency graph (via vertex
// incidence intersection, excluding the sentinel) to assign every polygon
// the root index of its connected component, enabling O(1) "from and to
// are definitely unreachable" tests before a search is even started.
func (l *Layer) bakeIslandsDetection() {
	n := len(l.Polygons)
	islands := make([]int, n)
	for i := range islands {
		islands[i] = -1
	}
	for start := 0; start < n; start++ {
		if islands[start] != -1 {
			continue
		}
		root := start
		stack := []int{start}
		islands[start] = root
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range l.neighborsOf(uint32(cur)) {
				if nb.IsSentinel() || nb.Layer() != l.Index {
					// Cross-layer stitches are deliberately not followed
					// here: each layer's island map only describes
					// reachability within its own polygons. Stitched
					// cross-layer connectivity is handled at the Mesh
					// level (see Mesh.PathFromTo), not by this per-layer
					// flood fill.
					continue
				}
				pi := int(nb.Polygon())
				if islands[pi] == -1 {
					islands[pi] = root
					stack = append(stack, pi)
				}
			}
		}
	}
	l.Islands = islands
}

// neighborsOf returns the distinct non-sentinel polygons adjacent to
// polyIdx across any of its edges.
func (l *Layer) neighborsOf(polyIdx uint32) []PolyID {
	p := &l.Polygons[polyIdx]
	self := PackPolyID(l.Index, polyIdx)
	var out []PolyID
	seen := map[PolyID]bool{}
	for i := range p.Vertices {
		a, b := p.edge(i)
		other := l.otherSideOfEdge(a, b, self)
		if !other.IsSentinel() && !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out
}

// bake rebuilds both the BVH locator and the island map for the layer. It
// must be called again after any operation that changes connectivity.
func (l *Layer) bake() {
	l.computeOneWayFlags()
	l.bakePolygonFinder()
	l.bakeIslandsDetection()
}

// unbake drops the baked locator and islands, forcing PointLocation back to
// a linear scan until the next Bake.
func (l *Layer) unbake() {
	l.locator = nil
	l.Islands = nil
}

// pointInPolygon is the exact point-in-convex-polygon test: p is inside iff
// it is Left of every directed edge, or lies Edge on one of them (and
// within that edge's segment bounds).
func pointInPolygon(l *Layer, p *Polygon, point Vec2) bool {
	for i := range p.Vertices {
		aIdx, bIdx := p.edge(i)
		a, b := l.Vertices[aIdx].Coords, l.Vertices[bIdx].Coords
		switch Side(point, a, b) {
		case SideEdge:
			if OnSegment(point, a, b) {
				return true
			}
		case SideRight:
			return false
		}
	}
	return true
}

// PointLocationLinear scans every polygon in the layer (in local
// coordinates) and returns the first whose ring contains point, or
// SentinelPolyID.
func (l *Layer) PointLocationLinear(point Vec2) PolyID {
	for pi := range l.Polygons {
		if pointInPolygon(l, &l.Polygons[pi], point) {
			return PackPolyID(l.Index, uint32(pi))
		}
	}
	return SentinelPolyID
}

// PointLocationBaked uses the BVH locator to shortlist candidate polygons
// by AABB, then confirms with the exact point-in-polygon test. Falls back
// to PointLocationLinear if the layer hasn't been baked.
func (l *Layer) PointLocationBaked(point Vec2) PolyID {
	if l.locator == nil {
		return l.PointLocationLinear(point)
	}
	found := SentinelPolyID
	l.locator.tree.Search(
		[2]float64{float64(point.X), float64(point.Y)},
		[2]float64{float64(point.X), float64(point.Y)},
		func(min, max [2]float64, pi uint32) bool {
			if pointInPolygon(l, &l.Polygons[pi], point) {
				found = PackPolyID(l.Index, pi)
				return false // stop
			}
			return true // keep searching
		},
	)
	return found
}

// compassOffsets are the eight compass-offset probes (plus the bare point
// itself) tried by GetPointLocation, at radius delta.
var compassOffsets = [9]Vec2{
	{0, 0},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// GetPointLocation tries point itself then eight compass-offset probes at
// radius delta, returning the first polygon found (local to layer l).
func (l *Layer) GetPointLocation(point Vec2, delta float32) PolyID {
	for _, off := range compassOffsets {
		p := point.Add(off.Mulf(delta))
		if id := l.PointLocationBaked(p); !id.IsSentinel() {
			return id
		}
	}
	return SentinelPolyID
}

// GetClosestPoint spirals outward from point up to steps rings, each ring
// sampling 10*(ring+1) angles uniformly on a circle of radius delta*ring,
// and returns the first point that lands inside a polygon along with that
// polygon's id.
func (l *Layer) GetClosestPoint(point Vec2, delta float32, steps int) (Vec2, PolyID) {
	if id := l.PointLocationBaked(point); !id.IsSentinel() {
		return point, id
	}
	const tau = 6.2831855
	for step := 0; step <= steps; step++ {
		samples := 10 * (step + 1)
		radius := delta * float32(step)
		for i := 0; i < samples; i++ {
			angle := tau * float32(i) / float32(samples)
			cand := Vec2{X: point.X + radius*cos32(angle), Y: point.Y + radius*sin32(angle)}
			if id := l.PointLocationBaked(cand); !id.IsSentinel() {
				return cand, id
			}
		}
	}
	return point, SentinelPolyID
}

// GetClosestPointTowards walks from point in the direction of the point
// towards in delta-sized steps,
// up to steps increments, returning the first point inside a polygon.
func (l *Layer) GetClosestPointTowards(point, towards Vec2, delta float32, steps int) (Vec2, PolyID) {
	if id := l.PointLocationBaked(point); !id.IsSentinel() {
		return point, id
	}
	dir := towards.Sub(point)
	n := dir.Length()
	if n == 0 {
		return point, SentinelPolyID
	}
	dir = dir.Mulf(1 / n)
	for step := 1; step <= steps; step++ {
		cand := point.Add(dir.Mulf(delta * float32(step)))
		if id := l.PointLocationBaked(cand); !id.IsSentinel() {
			return cand, id
		}
	}
	return point, SentinelPolyID
}

// GetVerticesOnSegment returns the local vertex indices of l that lie on
// the segment (start,end), sorted by distance from start. Used to compute
// stitch correspondences when two layers share a boundary but not a
// coordinate system (see Mesh.StitchAtVertices).
func (l *Layer) GetVerticesOnSegment(start, end Vec2) []uint32 {
	var out []uint32
	for vi, v := range l.Vertices {
		if OnSegment(v.Coords, start, end) {
			out = append(out, uint32(vi))
		}
	}
	sortByDistanceFrom(out, l, start)
	return out
}

func sortByDistanceFrom(idx []uint32, l *Layer, from Vec2) {
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0; j-- {
			di := l.Vertices[idx[j]].Coords.Distance(from)
			dj := l.Vertices[idx[j-1]].Coords.Distance(from)
			if di < dj {
				idx[j], idx[j-1] = idx[j-1], idx[j]
			} else {
				break
			}
		}
	}
}
