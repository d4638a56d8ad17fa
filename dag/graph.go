package dag

// NodeID identifies a node within a Graph. The zero value, NilNode, never
// names a real node.
type NodeID uint32

// EdgeID identifies an edge within a Graph. The zero value, NilEdge, never
// names a real edge.
type EdgeID uint32

const (
	// NilNode is the reserved null node id.
	NilNode NodeID = 0
	// NilEdge is the reserved null edge id.
	NilEdge EdgeID = 0
)

type nodeRecord struct {
	firstOut EdgeID
	firstIn  EdgeID
}

type edgeRecord struct {
	source, target NodeID
	nextOut         EdgeID // next edge in source's outgoing list
	nextIn          EdgeID // next edge in target's incoming list
}

// Graph is an untyped directed graph with node ids 1..NumNodes() and edge
// ids 1..NumEdges(). It is not safe for concurrent use.
type Graph struct {
	nodes []nodeRecord // nodes[0] is the unused sentinel
	edges []edgeRecord // edges[0] is the unused sentinel
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]nodeRecord, 1),
		edges: make([]edgeRecord, 1),
	}
}

// NewNode allocates and returns a fresh node id. Complexity: O(1) amortized.
func (g *Graph) NewNode() NodeID {
	g.nodes = append(g.nodes, nodeRecord{})
	return NodeID(len(g.nodes) - 1)
}

// NewEdge allocates a new edge from src to dst and links it into both
// adjacency lists. Complexity: O(1) amortized.
func (g *Graph) NewEdge(src, dst NodeID) EdgeID {
	id := EdgeID(len(g.edges))
	srcRec := &g.nodes[src]
	dstRec := &g.nodes[dst]
	g.edges = append(g.edges, edgeRecord{
		source:  src,
		target:  dst,
		nextOut: srcRec.firstOut,
		nextIn:  dstRec.firstIn,
	})
	srcRec.firstOut = id
	dstRec.firstIn = id
	return id
}

// NumNodes returns the number of nodes allocated so far.
func (g *Graph) NumNodes() int { return len(g.nodes) - 1 }

// NumEdges returns the number of edges allocated so far.
func (g *Graph) NumEdges() int { return len(g.edges) - 1 }

// Source returns the source node of e.
func (g *Graph) Source(e EdgeID) NodeID { return g.edges[e].source }

// Target returns the target node of e.
func (g *Graph) Target(e EdgeID) NodeID { return g.edges[e].target }

// OutgoingEdges returns the ids of every edge whose source is n, in
// most-recently-added-first order. Complexity: O(out-degree).
func (g *Graph) OutgoingEdges(n NodeID) []EdgeID {
	var out []EdgeID
	for e := g.nodes[n].firstOut; e != NilEdge; e = g.edges[e].nextOut {
		out = append(out, e)
	}
	return out
}

// IncomingEdges returns the ids of every edge whose target is n, in
// most-recently-added-first order. Complexity: O(in-degree).
func (g *Graph) IncomingEdges(n NodeID) []EdgeID {
	var in []EdgeID
	for e := g.nodes[n].firstIn; e != NilEdge; e = g.edges[e].nextIn {
		in = append(in, e)
	}
	return in
}

// OutDegree returns the number of edges whose source is n.
func (g *Graph) OutDegree(n NodeID) int {
	count := 0
	for e := g.nodes[n].firstOut; e != NilEdge; e = g.edges[e].nextOut {
		count++
	}
	return count
}

// InDegree returns the number of edges whose target is n.
func (g *Graph) InDegree(n NodeID) int {
	count := 0
	for e := g.nodes[n].firstIn; e != NilEdge; e = g.edges[e].nextIn {
		count++
	}
	return count
}
