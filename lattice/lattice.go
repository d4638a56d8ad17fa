package lattice

import (
	"github.com/google/uuid"

	"github.com/katalvlaran/lvlath-jseq/dag"
	"github.com/katalvlaran/lvlath-jseq/logprob"
	"github.com/katalvlaran/lvlath-jseq/multigram"
	"github.com/katalvlaran/lvlath-jseq/seqmodel"
)

// EmergenceMode selects how a Builder treats a joint multigram not yet in
// the inventory.
type EmergenceMode int

const (
	// Emerge inserts the unseen joint multigram into the inventory and
	// assigns it a fresh index.
	Emerge EmergenceMode = iota
	// Suppress drops the edge rather than add an unknown joint multigram.
	Suppress
	// Anonymize keeps the edge but encodes the unknown joint multigram with
	// multigram.VoidIndex.
	Anonymize
)

// SizeTemplate permits an alignment step to consume Left source symbols
// and Right target symbols; Left+Right must be strictly positive.
type SizeTemplate struct {
	Left, Right int
}

// Lattice is one training pair's alignment DAG: a dag.Graph plus the
// per-node history and per-edge token/log-probability side maps a Builder
// fills in. ID tags the lattice for diagnostics across the EM iterations
// it is retained through.
type Lattice struct {
	ID uuid.UUID

	Left, Right []multigram.Symbol

	Graph   *dag.Graph
	Initial dag.NodeID
	Final   dag.NodeID

	// Topo holds every node in topological order: index 0 is Initial, the
	// last element is Final.
	Topo []dag.NodeID

	History    *dag.NodeMap[seqmodel.HistoryID]
	EdgeToken  *dag.EdgeMap[seqmodel.Token]
	EdgeLogLik *dag.EdgeMap[logprob.LogProb]
}
