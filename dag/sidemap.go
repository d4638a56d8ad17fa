package dag

// NodeMap is a side table keyed by NodeID that grows on demand as ids
// beyond its current capacity are set.
type NodeMap[T any] struct {
	g    *Graph
	vals []T
}

// NewNodeMap returns a NodeMap sized to g's current node count.
func NewNodeMap[T any](g *Graph) *NodeMap[T] {
	return &NodeMap[T]{g: g, vals: make([]T, g.NumNodes()+1)}
}

// Get returns the value stored for n, or the zero value of T if n was never
// set (including when n exceeds the map's current size).
func (m *NodeMap[T]) Get(n NodeID) T {
	if int(n) >= len(m.vals) {
		var zero T
		return zero
	}
	return m.vals[n]
}

// Set stores v for n, growing the backing slice if necessary.
func (m *NodeMap[T]) Set(n NodeID, v T) {
	m.growTo(int(n) + 1)
	m.vals[n] = v
}

func (m *NodeMap[T]) growTo(size int) {
	if size <= len(m.vals) {
		return
	}
	grown := make([]T, size)
	copy(grown, m.vals)
	m.vals = grown
}

// Sync resizes the map to the graph's current node count, growing it if the
// graph has gained nodes since construction.
func (m *NodeMap[T]) Sync() {
	m.growTo(m.g.NumNodes() + 1)
}

// Yield compacts the map's backing array to exactly its current logical
// size, releasing any spare capacity accumulated from repeated growth. Call
// this once a graph (and its side maps) have stopped growing.
func (m *NodeMap[T]) Yield() {
	trimmed := make([]T, len(m.vals))
	copy(trimmed, m.vals)
	m.vals = trimmed
}

// EdgeMap is a side table keyed by EdgeID that grows on demand.
type EdgeMap[T any] struct {
	g    *Graph
	vals []T
}

// NewEdgeMap returns an EdgeMap sized to g's current edge count.
func NewEdgeMap[T any](g *Graph) *EdgeMap[T] {
	return &EdgeMap[T]{g: g, vals: make([]T, g.NumEdges()+1)}
}

// Get returns the value stored for e, or the zero value of T if unset.
func (m *EdgeMap[T]) Get(e EdgeID) T {
	if int(e) >= len(m.vals) {
		var zero T
		return zero
	}
	return m.vals[e]
}

// Set stores v for e, growing the backing slice if necessary.
func (m *EdgeMap[T]) Set(e EdgeID, v T) {
	m.growTo(int(e) + 1)
	m.vals[e] = v
}

func (m *EdgeMap[T]) growTo(size int) {
	if size <= len(m.vals) {
		return
	}
	grown := make([]T, size)
	copy(grown, m.vals)
	m.vals = grown
}

// Sync resizes the map to the graph's current edge count.
func (m *EdgeMap[T]) Sync() {
	m.growTo(m.g.NumEdges() + 1)
}

// Yield compacts the map's backing array to exactly its current logical
// size, releasing spare capacity.
func (m *EdgeMap[T]) Yield() {
	trimmed := make([]T, len(m.vals))
	copy(trimmed, m.vals)
	m.vals = trimmed
}
