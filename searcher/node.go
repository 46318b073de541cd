package searcher

import (
	"math"

	"drama/script"
)

type node struct {
	parent   *node
	state    script.Scene
	children []*node
	expanded bool
	rewards  float64
	visits   int
	value    float64
}

func newNode(parent *node, state script.Scene) *node {
	return &node{
		parent: parent,
		state:  state,
	}
}

// expand adds one child per candidate, in input order. A node expands at
// most once, even when the oracle proposed nothing.
func (n *node) expand(candidates []script.Scene) {
	if n.expanded {
		panic("node already expanded")
	}
	n.expanded = true

	n.children = make([]*node, 0, len(candidates))
	for _, state := range candidates {
		n.children = append(n.children, newNode(n, state))
	}
}

// update records one backpropagation pass: a visit plus the simulation
// score. The cached selection value refreshes against the parent's current
// visit count, which a child-to-root walk reads before the parent's own
// update.
func (n *node) update(score float64, c float64) {
	n.visits++
	n.rewards += score
	if n.parent != nil {
		n.value = uct(n.rewards, n.visits, n.parent.visits, c)
	}
}

// bestChild returns the child with the highest selection value, the first
// encountered on ties, or nil for a childless node.
func (n *node) bestChild() *node {
	var best *node
	maxValue := math.Inf(-1)
	for _, child := range n.children {
		if child.value > maxValue {
			maxValue = child.value
			best = child
		}
	}
	return best
}

// unvisited returns the children without a completed backpropagation pass.
func (n *node) unvisited() []*node {
	var fresh []*node
	for _, child := range n.children {
		if child.visits == 0 {
			fresh = append(fresh, child)
		}
	}
	return fresh
}

// depth walks to the root, which sits at depth 0.
func (n *node) depth() int {
	d := 0
	for at := n; at.parent != nil; at = at.parent {
		d++
	}
	return d
}

// uct scores a node for selection: mean reward plus an exploration bonus
// that grows with the parent's visit count.
func uct(rewards float64, visits, parentVisits int, c float64) float64 {
	if visits == 0 { // Prevent division by zero
		panic("cannot compute UCT: 0 visits")
	}

	exploit := rewards / float64(visits)
	explore := c * math.Sqrt(2*math.Log(float64(parentVisits))/float64(visits))
	return exploit + explore
}
