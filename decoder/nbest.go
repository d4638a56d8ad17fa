package decoder

import (
	"github.com/katalvlaran/lvlath-jseq/dag"
	"github.com/katalvlaran/lvlath-jseq/logprob"
	"github.com/katalvlaran/lvlath-jseq/multigram"
	"github.com/katalvlaran/lvlath-jseq/pqueue"
	"github.com/katalvlaran/lvlath-jseq/seqmodel"
	"github.com/katalvlaran/lvlath-jseq/topo"
)

// rtrace is the N-best backward search's own back-trace chain. Unlike
// trace (built forward, requiring a reversal on readout), rtrace is built
// while walking the explicit lattice backward from NBestContext.final: each
// step prepends the token of the edge just crossed, so the chain is
// already in forward emission order and path needs no reversal.
type rtrace struct {
	next  *rtrace
	token seqmodel.Token
}

func (r *rtrace) path() []multigram.Index {
	out := make([]multigram.Index, 0)
	for n := r; n != nil; n = n.next {
		out = append(out, multigram.Index(n.token))
	}

	return out
}

// nbPayload is what NBestContext.pq carries per queued backward-search
// candidate: the path probability accumulated so far (from
// NBestContext.final back to the queued node) and its token trace.
type nbPayload struct {
	partial logprob.LogProb
	trace   *rtrace
}

// NBestContext is the continuation object N-best decoding enumerates
// against: an explicit lattice built once by NBestInit over every state
// reachable while decoding one input, plus the backward A* open queue that
// Next advances one pop at a time: this is a stateful object exposing
// next(), with its priority queue acting as the continuation.
type NBestContext struct {
	left []multigram.Symbol

	graph   *dag.Graph
	forward *dag.NodeMap[logprob.LogProb]
	edgeTok *dag.EdgeMap[seqmodel.Token]
	edgeP   *dag.EdgeMap[logprob.LogProb]

	initial, final dag.NodeID

	pq *pqueue.Queue[dag.NodeID]
}

// BestLogLik returns the log-probability of the single best alignment of
// the input NBestInit was called with: forward[final] from the phase-1
// chart, without running any backward search.
func (ctx *NBestContext) BestLogLik() logprob.LogProb {
	return ctx.forward.Get(ctx.final)
}

// TotalLogLik approximates the total log-likelihood over every alignment
// of the input: it topologically sorts the phase-1 chart (tolerating the
// ε-multigram cycles accepted as an approximation elsewhere in this
// toolkit) and reruns the forward pass with log-sum-exp, seeding every
// node from its phase-1 best-path (Viterbi) value rather than
// logprob.Impossible — the behaviorally stable choice, and the one
// documented in DESIGN.md's Open Question decisions.
func (ctx *NBestContext) TotalLogLik() logprob.LogProb {
	order := topo.Sort(ctx.graph, []dag.NodeID{ctx.initial})

	total := dag.NewNodeMap[logprob.LogProb](ctx.graph)
	for n := 1; n <= ctx.graph.NumNodes(); n++ {
		total.Set(dag.NodeID(n), ctx.forward.Get(dag.NodeID(n)))
	}
	total.Set(ctx.initial, logprob.Certain)

	for _, n := range order {
		if n == ctx.initial {
			continue
		}
		acc := logprob.NewAccumulator(0)
		for _, e := range ctx.graph.IncomingEdges(n) {
			acc.Add(total.Get(ctx.graph.Source(e)).Mul(ctx.edgeP.Get(e)))
		}
		if acc.Len() > 0 {
			total.Set(n, acc.Sum())
		}
	}

	return total.Get(ctx.final)
}

// Next pops the backward open queue until it completes a path back to
// NBestContext.initial, returning that path's log-probability and
// multigram index sequence. Successive calls return alignments in
// non-increasing probability order; once every alignment has been
// returned, Next (and every call after it) fails with
// ErrNoFurtherTranslations.
func (ctx *NBestContext) Next() (logprob.LogProb, []multigram.Index, error) {
	for ctx.pq.Len() > 0 {
		ent := ctx.pq.Pop()
		node := ent.State
		pl, _ := ent.Payload.(*nbPayload)

		if node == ctx.initial {
			return pl.partial, pl.trace.path(), nil
		}

		for _, e := range ctx.graph.IncomingEdges(node) {
			u := ctx.graph.Source(e)
			newPartial := pl.partial.Mul(ctx.edgeP.Get(e))

			newTrace := pl.trace
			if node != ctx.final {
				newTrace = &rtrace{next: pl.trace, token: ctx.edgeTok.Get(e)}
			}

			priority := newPartial.Mul(ctx.forward.Get(u))
			ctx.pq.Push(u, priority, &nbPayload{partial: newPartial, trace: newTrace})
		}
	}

	return 0, nil, ErrNoFurtherTranslations
}

// NBestInit builds the explicit phase-1 chart for left: it runs the same
// A* expansion as Translate, but drains the open queue to completion
// instead of stopping at the first terminal pop, recording every state as
// a lattice node and every expansion as a lattice edge. The returned
// context's Next method then enumerates paths in decreasing probability
// via a backward A* seeded from NBestInit's own forward costs.
func (t *Translator) NBestInit(left []multigram.Symbol) (*NBestContext, error) {
	g := dag.NewGraph()
	stateNodes := make(map[state]dag.NodeID)
	forward := dag.NewNodeMap[logprob.LogProb](g)
	edgeTok := dag.NewEdgeMap[seqmodel.Token](g)
	edgeP := dag.NewEdgeMap[logprob.LogProb](g)

	nodeFor := func(st state) dag.NodeID {
		if id, ok := stateNodes[st]; ok {
			return id
		}
		id := g.NewNode()
		stateNodes[st] = id

		return id
	}

	seed := state{pos: 0, history: t.lm.Initial()}
	initial := nodeFor(seed)

	pq := pqueue.NewQueue[state]()
	pq.Push(seed, logprob.Certain, nil)
	pushed := 1

	closed := make(map[state]struct{})
	var final dag.NodeID
	foundFinal := false

	for pq.Len() > 0 {
		ent := pq.Pop()
		st := ent.State
		if _, done := closed[st]; done {
			continue
		}
		closed[st] = struct{}{}

		n := nodeFor(st)
		forward.Set(n, ent.Score)

		if st.history == seqmodel.CulDeSac {
			final = n
			foundFinal = true
			continue
		}

		if pushed > t.stackLimit {
			return nil, ErrStackLimitExceeded
		}

		for _, end := range t.candidateEnds(st.pos, len(left)) {
			leftMG := multigram.New(left[st.pos:end]...)
			for _, idx := range t.leftIndex[leftMG] {
				q := seqmodel.Token(idx)
				next := state{pos: end, history: t.lm.Advanced(st.history, q)}
				score := t.lm.Probability(q, st.history)

				tgt := nodeFor(next)
				e := g.NewEdge(n, tgt)
				edgeTok.Set(e, q)
				edgeP.Set(e, score)

				pq.Push(next, ent.Score.Mul(score), nil)
				pushed++
			}
		}
		if st.pos == len(left) {
			next := state{pos: st.pos, history: seqmodel.CulDeSac}
			score := t.lm.Probability(t.lm.TermToken(), st.history)

			tgt := nodeFor(next)
			e := g.NewEdge(n, tgt)
			edgeTok.Set(e, t.lm.TermToken())
			edgeP.Set(e, score)

			pq.Push(next, ent.Score.Mul(score), nil)
			pushed++
		}
	}

	if !foundFinal {
		return nil, ErrTranslationFailed
	}

	ctx := &NBestContext{
		left:    left,
		graph:   g,
		forward: forward,
		edgeTok: edgeTok,
		edgeP:   edgeP,
		initial: initial,
		final:   final,
	}
	ctx.pq = pqueue.NewQueue[dag.NodeID]()
	ctx.pq.Push(final, forward.Get(final), &nbPayload{partial: logprob.Certain, trace: nil})

	return ctx, nil
}
