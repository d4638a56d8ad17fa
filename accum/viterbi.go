package accum

import (
	"github.com/katalvlaran/lvlath-jseq/dag"
	"github.com/katalvlaran/lvlath-jseq/lattice"
	"github.com/katalvlaran/lvlath-jseq/logprob"
	"github.com/katalvlaran/lvlath-jseq/seqmodel"
)

// Viterbi accumulates evidence along a lattice's single best path: it
// replaces forward-backward's sum with max and remembers the best
// incoming edge per node, in the spirit of akualab-graph's token-passing
// Viterbi decoder (its Token.BT backtrace chain), here flattened to a
// per-node best-edge map since the lattice is already a full DAG rather
// than a token stream.
type Viterbi struct {
	lat      *lattice.Lattice
	best     *dag.NodeMap[logprob.LogProb]
	bestEdge *dag.NodeMap[dag.EdgeID]
}

// NewViterbi runs the Viterbi max-pass over lat once; Accumulate and
// Segment may then be called any number of times against the cached best
// path.
func NewViterbi(lat *lattice.Lattice) *Viterbi {
	v := &Viterbi{
		lat:      lat,
		best:     dag.NewNodeMap[logprob.LogProb](lat.Graph),
		bestEdge: dag.NewNodeMap[dag.EdgeID](lat.Graph),
	}
	v.best.Set(lat.Initial, logprob.Certain)
	for _, n := range lat.Topo {
		if n == lat.Initial {
			continue
		}
		bestScore := logprob.Impossible
		var bestIn dag.EdgeID
		for _, e := range lat.Graph.IncomingEdges(n) {
			score := v.best.Get(lat.Graph.Source(e)).Mul(lat.EdgeLogLik.Get(e))
			if bestIn == dag.NilEdge || score.MoreLikely(bestScore) {
				bestScore, bestIn = score, e
			}
		}
		v.best.Set(n, bestScore)
		v.bestEdge.Set(n, bestIn)
	}

	return v
}

// BestLogLik returns the score of the best path from Initial to Final.
func (v *Viterbi) BestLogLik() logprob.LogProb { return v.best.Get(v.lat.Final) }

// path returns the edges of the best path from Initial to Final, in
// forward order.
func (v *Viterbi) path() []dag.EdgeID {
	var rev []dag.EdgeID
	for n := v.lat.Final; n != v.lat.Initial; {
		e := v.bestEdge.Get(n)
		rev = append(rev, e)
		n = v.lat.Graph.Source(e)
	}
	path := make([]dag.EdgeID, len(rev))
	for i, e := range rev {
		path[len(rev)-1-i] = e
	}

	return path
}

// Accumulate credits weight to (history[source(e)], token[e]) for each
// edge on the best path, once per edge.
func (v *Viterbi) Accumulate(store *Store, weight logprob.LogProb) {
	for _, e := range v.path() {
		src := v.lat.Graph.Source(e)
		store.Add(v.lat.History.Get(src), v.lat.EdgeToken.Get(e), weight)
	}
}

// Segment returns the sequence of tokens along the best path (excluding
// the terminal token), i.e. the decoded multigram sequence.
func (v *Viterbi) Segment() []seqmodel.Token {
	path := v.path()
	out := make([]seqmodel.Token, 0, len(path))
	for _, e := range path {
		if v.lat.Graph.Target(e) == v.lat.Final {
			continue
		}
		out = append(out, v.lat.EdgeToken.Get(e))
	}

	return out
}
