package accum

import (
	"github.com/katalvlaran/lvlath-jseq/dag"
	"github.com/katalvlaran/lvlath-jseq/lattice"
	"github.com/katalvlaran/lvlath-jseq/logprob"
)

// OneForAll credits weight to every (history[source(e)], token[e]) edge in
// lat, independent of probabilities. Used for flat starts, where no
// sequence model exists yet to weigh alternatives by.
func OneForAll(lat *lattice.Lattice, store *Store, weight logprob.LogProb) {
	for n := 0; n < lat.Graph.NumNodes(); n++ {
		src := dag.NodeID(n + 1)
		for _, e := range lat.Graph.OutgoingEdges(src) {
			store.Add(lat.History.Get(src), lat.EdgeToken.Get(e), weight)
		}
	}
}
