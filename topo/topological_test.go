package topo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lvlath-jseq/dag"
)

func indexOf(order []dag.NodeID, n dag.NodeID) int {
	for i, v := range order {
		if v == n {
			return i
		}
	}
	return -1
}

func TestSortLinearChain(t *testing.T) {
	g := dag.NewGraph()
	a := g.NewNode()
	b := g.NewNode()
	c := g.NewNode()
	g.NewEdge(a, b)
	g.NewEdge(b, c)

	order := Sort(g, []dag.NodeID{a})
	assert.Equal(t, []dag.NodeID{a, b, c}, order)
}

func TestSortRespectsEdgeOrder(t *testing.T) {
	g := dag.NewGraph()
	a := g.NewNode()
	b := g.NewNode()
	c := g.NewNode()
	d := g.NewNode()
	g.NewEdge(a, b)
	g.NewEdge(a, c)
	g.NewEdge(b, d)
	g.NewEdge(c, d)

	order := Sort(g, []dag.NodeID{a})
	assert.Less(t, indexOf(order, a), indexOf(order, b))
	assert.Less(t, indexOf(order, a), indexOf(order, c))
	assert.Less(t, indexOf(order, b), indexOf(order, d))
	assert.Less(t, indexOf(order, c), indexOf(order, d))
}

func TestSortToleratesCycles(t *testing.T) {
	g := dag.NewGraph()
	a := g.NewNode()
	b := g.NewNode()
	g.NewEdge(a, b)
	g.NewEdge(b, a) // cycle

	assert.NotPanics(t, func() {
		order := Sort(g, []dag.NodeID{a})
		assert.ElementsMatch(t, []dag.NodeID{a, b}, order)
	})
}
