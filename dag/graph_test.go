package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeIDsStartAtOne(t *testing.T) {
	g := NewGraph()
	a := g.NewNode()
	b := g.NewNode()
	assert.Equal(t, NodeID(1), a)
	assert.Equal(t, NodeID(2), b)
	assert.Equal(t, 2, g.NumNodes())
}

func TestNewEdgeLinksAdjacency(t *testing.T) {
	g := NewGraph()
	a := g.NewNode()
	b := g.NewNode()
	c := g.NewNode()

	e1 := g.NewEdge(a, b)
	e2 := g.NewEdge(a, c)

	require.Equal(t, a, g.Source(e1))
	require.Equal(t, b, g.Target(e1))

	out := g.OutgoingEdges(a)
	assert.ElementsMatch(t, []EdgeID{e1, e2}, out)
	assert.Equal(t, 2, g.OutDegree(a))

	assert.Equal(t, []EdgeID{e1}, g.IncomingEdges(b))
	assert.Equal(t, 1, g.InDegree(b))
	assert.Equal(t, 0, g.InDegree(a))
}

func TestNodeMapGrowsAndDefaults(t *testing.T) {
	g := NewGraph()
	a := g.NewNode()
	m := NewNodeMap[int](g)
	m.Set(a, 42)

	b := g.NewNode()
	m.Sync()
	assert.Equal(t, 42, m.Get(a))
	assert.Equal(t, 0, m.Get(b))

	m.Set(b, 7)
	assert.Equal(t, 7, m.Get(b))
}

func TestNodeMapYieldPreservesValues(t *testing.T) {
	g := NewGraph()
	a := g.NewNode()
	m := NewNodeMap[string](g)
	m.Set(a, "x")
	m.Yield()
	assert.Equal(t, "x", m.Get(a))
}

func TestEdgeMapBasic(t *testing.T) {
	g := NewGraph()
	a := g.NewNode()
	b := g.NewNode()
	e := g.NewEdge(a, b)

	em := NewEdgeMap[float64](g)
	em.Set(e, 3.5)
	em.Sync()
	assert.Equal(t, 3.5, em.Get(e))
	assert.Equal(t, 0.0, em.Get(EdgeID(999)))
}
