package accum

import (
	"github.com/golang/glog"

	"github.com/katalvlaran/lvlath-jseq/dag"
	"github.com/katalvlaran/lvlath-jseq/lattice"
	"github.com/katalvlaran/lvlath-jseq/logprob"
)

// ulpTolerance is the "within 100 ULPs" bound forward-backward diagnostics
// are held to.
const ulpTolerance = 100

// ForwardBackward computes forward and backward totals over lat and
// credits weight times each edge's posterior mass into store. It never
// fails: a forward/backward total mismatch or a posterior mass outside
// [0, 1+tolerance] is logged, not raised.
func ForwardBackward(lat *lattice.Lattice, store *Store, weight logprob.LogProb) {
	forw := forwardPass(lat)
	bckw := backwardPass(lat)

	total := forw.Get(lat.Final).Mul(bckw.Get(lat.Initial)).Pow(0.5)

	if d := logprob.ULPDiff(float64(forw.Get(lat.Final)), float64(bckw.Get(lat.Initial))); d > ulpTolerance {
		glog.Warningf("accum: forward/backward totals disagree by %d ULPs (lattice %s)", d, lat.ID)
	}

	for n := 0; n < lat.Graph.NumNodes(); n++ {
		src := dag.NodeID(n + 1)
		for _, e := range lat.Graph.OutgoingEdges(src) {
			gamma := forw.Get(src).Mul(lat.EdgeLogLik.Get(e)).Mul(bckw.Get(lat.Graph.Target(e))).Div(total)
			if gamma.MoreLikely(logprob.Certain) && logprob.ULPDiff(float64(gamma), float64(logprob.Certain)) > ulpTolerance {
				glog.Warningf("accum: posterior mass on edge %d exceeds 1 by more than %d ULPs (lattice %s)", e, ulpTolerance, lat.ID)
			}
			store.Add(lat.History.Get(src), lat.EdgeToken.Get(e), weight.Mul(gamma))
		}
	}
}

func forwardPass(lat *lattice.Lattice) *dag.NodeMap[logprob.LogProb] {
	forw := dag.NewNodeMap[logprob.LogProb](lat.Graph)
	forw.Set(lat.Initial, logprob.Certain)
	for _, n := range lat.Topo {
		if n == lat.Initial {
			continue
		}
		acc := logprob.NewAccumulator(0)
		for _, e := range lat.Graph.IncomingEdges(n) {
			acc.Add(forw.Get(lat.Graph.Source(e)).Mul(lat.EdgeLogLik.Get(e)))
		}
		forw.Set(n, acc.Sum())
	}

	return forw
}

func backwardPass(lat *lattice.Lattice) *dag.NodeMap[logprob.LogProb] {
	bckw := dag.NewNodeMap[logprob.LogProb](lat.Graph)
	bckw.Set(lat.Final, logprob.Certain)
	for i := len(lat.Topo) - 1; i >= 0; i-- {
		n := lat.Topo[i]
		if n == lat.Final {
			continue
		}
		acc := logprob.NewAccumulator(0)
		for _, e := range lat.Graph.OutgoingEdges(n) {
			acc.Add(lat.EdgeLogLik.Get(e).Mul(bckw.Get(lat.Graph.Target(e))))
		}
		bckw.Set(n, acc.Sum())
	}

	return bckw
}
