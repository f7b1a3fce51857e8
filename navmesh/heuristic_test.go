package navmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristic(t *testing.T) {
	root := Vec2{0, 0}
	a, b := Vec2{1, 0}, Vec2{0, 1}
	sqrt2 := float32(1.4142135)

	tests := []struct {
		name string
		goal Vec2
		want float32
	}{
		{"line of sight through the interval", Vec2{1, 1}, sqrt2},
		{"taut around the right endpoint", Vec2{2, -1}, 1 + sqrt2},
		{"taut around the left endpoint", Vec2{-1, 2}, 1 + sqrt2},
		{"goal on the root's side gets mirrored", Vec2{1, -1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Heuristic(root, tt.goal, a, b), 1e-5)
		})
	}
}

func TestHeuristicFromIntervalEndpoint(t *testing.T) {
	// With the root sitting on an interval endpoint there is nothing to
	// bend around: the estimate is the plain distance to the goal.
	a, b := Vec2{1, 0}, Vec2{0, 1}
	goal := Vec2{1, 1}
	assert.InDelta(t, a.Distance(goal), Heuristic(a, goal, a, b), 1e-5)
}

func TestTurningPoint(t *testing.T) {
	root := Vec2{0, 0}
	a, b := Vec2{1, 0}, Vec2{0, 1}

	pt, ok := TurningPoint(root, Vec2{2, -1}, a, b)
	assert.True(t, ok)
	assert.Equal(t, a, pt)

	pt, ok = TurningPoint(root, Vec2{-1, 2}, a, b)
	assert.True(t, ok)
	assert.Equal(t, b, pt)

	_, ok = TurningPoint(root, Vec2{1, 1}, a, b)
	assert.False(t, ok, "a goal in direct line of sight introduces no turning point")

	_, ok = TurningPoint(a, Vec2{2, 2}, a, b)
	assert.False(t, ok, "a root on the interval's right endpoint never turns")
}
