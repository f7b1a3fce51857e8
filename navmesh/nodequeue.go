package navmesh

import assert "github.com/arl/assertgo"

// nodeQueue is a binary min-heap over *SearchNode keyed by F() = G+H,
// backed by a growable flat slice: a Polyanya search instance doesn't know
// its node count ahead of time, so there is no fixed capacity to size for.
type nodeQueue struct {
	heap []*SearchNode
}

func newNodeQueue() *nodeQueue {
	return &nodeQueue{heap: make([]*SearchNode, 0, 16)}
}

func (q *nodeQueue) bubbleUp(i int, node *SearchNode) {
	parent := (i - 1) / 2
	for i > 0 && q.heap[parent].F() > node.F() {
		q.heap[i] = q.heap[parent]
		i = parent
		parent = (i - 1) / 2
	}
	q.heap[i] = node
}

func (q *nodeQueue) trickleDown(i int, node *SearchNode) {
	size := len(q.heap)
	child := i*2 + 1
	for child < size {
		if child+1 < size && q.heap[child].F() > q.heap[child+1].F() {
			child++
		}
		q.heap[i] = q.heap[child]
		i = child
		child = i*2 + 1
	}
	q.bubbleUp(i, node)
}

func (q *nodeQueue) push(node *SearchNode) {
	q.heap = append(q.heap, nil)
	q.bubbleUp(len(q.heap)-1, node)
}

// extend pushes every node in nodes, in order.
func (q *nodeQueue) extend(nodes []*SearchNode) {
	for _, n := range nodes {
		q.push(n)
	}
}

func (q *nodeQueue) pop() *SearchNode {
	assert.True(len(q.heap) > 0, "pop called on empty nodeQueue")
	result := q.heap[0]
	last := len(q.heap) - 1
	tail := q.heap[last]
	q.heap = q.heap[:last]
	if last > 0 {
		q.trickleDown(0, tail)
	}
	return result
}

func (q *nodeQueue) empty() bool { return len(q.heap) == 0 }
