// Package decoder implements A*-style single-best and N-best translation:
// given a frozen multigram.Inventory and seqmodel.Model, it finds the most
// probable multigram sequence an input left-hand sequence decodes to, or
// enumerates successive next-best sequences in non-increasing probability
// order.
//
// Single-best search follows dijkstra.Dijkstra's open/closed-set
// discipline (pqueue's lazy decrease-key plus a closed map) over an
// implicit state space of (position, history) pairs, rather than over a
// pre-built graph. N-best instead makes that state space explicit — a
// dag.Graph built once during a forward pass — and enumerates paths by
// running A* a second time, backwards from the final state, admissible on
// the forward pass's own best-known costs. Both searches record results
// as an akualab-graph-style backtrace chain of immutable links shared
// across sibling paths.
package decoder
