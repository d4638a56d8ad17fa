// Package topo provides an iterative DFS-based topological sort over a
// dag.Graph.
//
// Unlike a general-purpose graph sorter, Sort tolerates cycles: a grey-to-
// grey back edge is not reported as an error, it is simply not followed
// again. Cycles arise only from ε-multigrams, and the downstream consumer
// tolerates the approximation; the lattice builder forbids cycles outright
// while the topological sorter itself stays permissive.
package topo

import "github.com/katalvlaran/lvlath-jseq/dag"

const (
	white = iota
	grey
	black
)

// Sort returns a topological order of every node in g reachable from the
// given roots: for every edge u->v in g where both u and v are visited,
// u precedes v in the result, except where a cycle forced an
// approximation. Nodes unreachable from roots are not included.
//
// Complexity: O(V + E).
func Sort(g *dag.Graph, roots []dag.NodeID) []dag.NodeID {
	color := dag.NewNodeMap[int](g)
	order := make([]dag.NodeID, 0, g.NumNodes())

	for _, root := range roots {
		if color.Get(root) != white {
			continue
		}
		order = visit(g, color, order, root)
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// stackFrame is one level of the explicit DFS stack: the node being
// explored and how far through its outgoing edges the traversal has
// progressed.
type stackFrame struct {
	node      dag.NodeID
	remaining []dag.EdgeID
}

// visit runs an iterative post-order DFS rooted at start, appending
// finished nodes to order. Using an explicit stack instead of recursion
// mirrors the style of the lattice builder's own DFS and avoids
// recursion-depth limits on long training pairs.
func visit(g *dag.Graph, color *dag.NodeMap[int], order []dag.NodeID, start dag.NodeID) []dag.NodeID {
	stack := []stackFrame{{node: start, remaining: g.OutgoingEdges(start)}}
	color.Set(start, grey)

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if len(top.remaining) == 0 {
			color.Set(top.node, black)
			order = append(order, top.node)
			stack = stack[:len(stack)-1]
			continue
		}

		e := top.remaining[0]
		top.remaining = top.remaining[1:]
		next := g.Target(e)

		switch color.Get(next) {
		case white:
			color.Set(next, grey)
			stack = append(stack, stackFrame{node: next, remaining: g.OutgoingEdges(next)})
		case grey:
			// Back edge into a node still on the stack: a cycle. Tolerated
			// silently — skip re-descending into it.
		case black:
			// Already finished via another path; nothing to do.
		}
	}
	return order
}
