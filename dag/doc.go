// Package dag implements an untyped directed graph keyed by small integer
// node and edge ids, with O(1) incoming/outgoing adjacency traversal.
//
// Node id 0 and edge id 0 are reserved sentinels (never returned by NewNode
// or NewEdge); valid ids start at 1. Each node stores only the head of its
// outgoing and incoming edge lists; each edge stores its endpoints plus the
// next link in both lists it belongs to, so adjacency is a classic
// intrusive linked list rather than a hash map — NewEdge, OutgoingEdges and
// IncomingEdges are all O(1) or O(degree), with no map allocation per call.
//
// NodeMap and EdgeMap are side tables keyed by node/edge id that grow on
// demand; Sync resizes them to the graph's current size and Yield discards
// any spare capacity, for use once a graph has stopped growing.
//
// The graph itself has no concurrency control: all mutation happens on
// the caller's single thread.
package dag
