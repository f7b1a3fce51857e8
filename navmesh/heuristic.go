package navmesh

// Heuristic estimates the remaining distance from root to goal, given that
// the path must pass through interval (a,b). If root and goal are on the
// same side of the interval, goal is mirrored across it first, because the
// taut path must bend around the interval to reach it.
func Heuristic(root, goal, a, b Vec2) float32 {
	g := goal
	if Side(root, a, b) == Side(g, a, b) {
		g = Mirror(g, a, b)
	}
	if root.ApproxEqual(a) || root.ApproxEqual(b) {
		return root.Distance(g)
	}
	t := IntersectionTime(root, g, a, b)
	switch {
	case t < 0:
		return root.Distance(a) + a.Distance(g)
	case t > 1:
		return root.Distance(b) + b.Distance(g)
	default:
		return root.Distance(g)
	}
}

// TurningPoint determines which endpoint of interval (a,b), if any, the
// taut path from root to goal must bend around. Returns false if the
// straight line from root to goal is unobstructed by the interval (no new
// turning point is introduced).
func TurningPoint(root, goal, a, b Vec2) (Vec2, bool) {
	g := goal
	if Side(root, a, b) == Side(g, a, b) {
		g = Mirror(g, a, b)
	}
	if root.ApproxEqual(a) {
		return Vec2{}, false
	}
	if Side(g, root, a) == SideRight {
		return a, true
	}
	if Side(g, root, b) == SideLeft {
		return b, true
	}
	return Vec2{}, false
}
