package lattice

import (
	"github.com/google/uuid"

	"github.com/katalvlaran/lvlath-jseq/dag"
	"github.com/katalvlaran/lvlath-jseq/logprob"
	"github.com/katalvlaran/lvlath-jseq/multigram"
	"github.com/katalvlaran/lvlath-jseq/seqmodel"
)

// Builder constructs and re-syncs Lattices for a fixed multigram inventory
// and sequence model. It owns transient DFS scratch reused across pairs;
// callers must not interleave two Build calls on the same Builder.
type Builder struct {
	templates []SizeTemplate
	mode      EmergenceMode
	inv       *multigram.Inventory
	lm        *seqmodel.Model

	// scratch, reused across Build calls
	state map[nodeDesc]uint32
	stack []frame
}

// NewBuilder returns a Builder with no size templates and Emerge mode.
func NewBuilder() *Builder {
	return &Builder{
		mode:  Emerge,
		state: make(map[nodeDesc]uint32),
	}
}

// AddSizeTemplate registers a size template. Duplicates are permitted.
func (b *Builder) AddSizeTemplate(left, right int) {
	if left+right <= 0 {
		panic("lattice: size template must consume at least one symbol")
	}
	b.templates = append(b.templates, SizeTemplate{Left: left, Right: right})
}

// SetEmergenceMode selects how unknown joint multigrams are handled.
func (b *Builder) SetEmergenceMode(mode EmergenceMode) { b.mode = mode }

// SetSequenceModel points the builder at the inventory and sequence model
// to build lattices against.
func (b *Builder) SetSequenceModel(inv *multigram.Inventory, lm *seqmodel.Model) {
	b.inv = inv
	b.lm = lm
}

// Create allocates an empty Lattice for the given training pair, without
// running construction.
func (b *Builder) Create(left, right []multigram.Symbol) *Lattice {
	return &Lattice{ID: uuid.New(), Left: left, Right: right}
}

// nodeDesc is the lattice-builder DFS state: a position in both sequences
// plus the sequence-model history reached there. Two descriptors are equal
// iff all three components match.
type nodeDesc struct {
	leftPos, rightPos int
	history           seqmodel.HistoryID
}

const (
	descDead uint32 = 0xFFFFFFFE
	descGrey uint32 = 0xFFFFFFFF
)

// frame is one DFS stack entry: the descriptor under exploration and the
// index of the next size template to try against it.
type frame struct {
	desc     nodeDesc
	nextTmpl int
}

// Build runs the lattice-builder DFS over (left, right) and fills lat's
// graph, topological order, and (via resync) history/log-probability side
// maps. lat must have been produced by Create.
func (b *Builder) Build(lat *Lattice, left, right []multigram.Symbol) error {
	lat.Left, lat.Right = left, right

	g := dag.NewGraph()
	token := map[dag.EdgeID]seqmodel.Token{}
	for k := range b.state {
		delete(b.state, k)
	}
	b.stack = b.stack[:0]

	var final dag.NodeID
	var topoRev []dag.NodeID

	initDesc := nodeDesc{leftPos: 0, rightPos: 0, history: b.lm.Initial()}
	b.state[initDesc] = descGrey
	b.stack = append(b.stack, frame{desc: initDesc})

	allocate := func(desc nodeDesc) dag.NodeID {
		if id := b.state[desc]; id != descGrey && id != descDead {
			return dag.NodeID(id)
		}
		id := g.NewNode()
		b.state[desc] = uint32(id)
		return id
	}

	for len(b.stack) > 0 {
		top := len(b.stack) - 1
		desc := b.stack[top].desc

		if desc.leftPos == len(left) && desc.rightPos == len(right) {
			if final == dag.NilNode {
				final = g.NewNode()
			}
			cur := allocate(desc)
			e := g.NewEdge(cur, final)
			token[e] = b.lm.TermToken()
			topoRev = append(topoRev, cur)
			b.stack = b.stack[:top]
			continue
		}

		if b.stack[top].nextTmpl >= len(b.templates) {
			if b.state[desc] == descGrey {
				b.state[desc] = descDead
			} else {
				topoRev = append(topoRev, dag.NodeID(b.state[desc]))
			}
			b.stack = b.stack[:top]
			continue
		}

		tmplIdx := b.stack[top].nextTmpl
		tmpl := b.templates[tmplIdx]
		b.stack[top].nextTmpl = tmplIdx + 1

		nextDesc, tok, ok := b.applyTemplate(desc, tmpl, left, right)
		if !ok {
			continue
		}

		_, seen := b.state[nextDesc]
		switch {
		case !seen:
			// Target is new: rewind this template so it is retried once the
			// target resolves, and explore the target first.
			b.stack[top].nextTmpl = tmplIdx
			b.state[nextDesc] = descGrey
			b.stack = append(b.stack, frame{desc: nextDesc})
		case b.state[nextDesc] == descDead:
			// no path to final through here; skip.
		case b.state[nextDesc] == descGrey:
			panic("lattice: cycle detected during DFS construction")
		default:
			cur := allocate(desc)
			tgt := dag.NodeID(b.state[nextDesc])
			e := g.NewEdge(cur, tgt)
			token[e] = tok
		}
	}

	if b.state[initDesc] == descDead {
		return ErrFinalUnreachable
	}

	topo := make([]dag.NodeID, len(topoRev))
	for i, n := range topoRev {
		topo[len(topoRev)-1-i] = n
	}
	topo = append(topo, final)

	lat.Graph = g
	lat.Initial = dag.NodeID(b.state[initDesc])
	lat.Final = final
	lat.Topo = topo
	lat.EdgeToken = dag.NewEdgeMap[seqmodel.Token](g)
	for e, t := range token {
		lat.EdgeToken.Set(e, t)
	}
	lat.History = dag.NewNodeMap[seqmodel.HistoryID](g)
	lat.EdgeLogLik = dag.NewEdgeMap[logprob.LogProb](g)

	b.resync(lat)

	return nil
}

// Update re-derives lat's node->history and edge->log-probability maps
// from the builder's current sequence model, without rebuilding the
// graph. Use this after an EM iteration produces a fresh model.
func (b *Builder) Update(lat *Lattice) error {
	b.resync(lat)

	return nil
}

// applyTemplate computes the descriptor and token reached by consuming
// tmpl from desc, or ok=false if the template is out of range or
// Suppress mode rejects an unknown joint multigram.
func (b *Builder) applyTemplate(desc nodeDesc, tmpl SizeTemplate, left, right []multigram.Symbol) (nodeDesc, seqmodel.Token, bool) {
	l2 := desc.leftPos + tmpl.Left
	r2 := desc.rightPos + tmpl.Right
	if l2 > len(left) || r2 > len(right) {
		return nodeDesc{}, 0, false
	}

	leftMG := multigram.New(left[desc.leftPos:l2]...)
	rightMG := multigram.New(right[desc.rightPos:r2]...)

	var idx multigram.Index
	switch b.mode {
	case Emerge:
		idx = b.inv.Index(leftMG, rightMG)
	case Suppress:
		idx = b.inv.TestIndex(leftMG, rightMG)
		if idx == multigram.VoidIndex {
			return nodeDesc{}, 0, false
		}
	case Anonymize:
		idx = b.inv.TestIndex(leftMG, rightMG)
	}

	tok := seqmodel.Token(idx)
	hist := b.lm.Advanced(desc.history, tok)

	return nodeDesc{leftPos: l2, rightPos: r2, history: hist}, tok, true
}

// resync recomputes lat.History and lat.EdgeLogLik from lat's fixed graph
// shape, lat.EdgeToken, and the builder's current sequence model: walking
// the topological order, a node's history is its predecessor's advanced
// history, validated to agree across every in-edge (by construction, and
// by induction across Update calls, it always does).
func (b *Builder) resync(lat *Lattice) {
	lat.History.Set(lat.Initial, b.lm.Initial())
	for _, n := range lat.Topo {
		// lat.Final is a shared sink merging term-edges from every distinct
		// (position, history) node that reached the end of the pair; its
		// own "history" is meaningless and in-edges need not agree on one.
		if n == lat.Initial || n == lat.Final {
			continue
		}
		var h seqmodel.HistoryID
		have := false
		for _, e := range lat.Graph.IncomingEdges(n) {
			src := lat.Graph.Source(e)
			candidate := b.lm.Advanced(lat.History.Get(src), lat.EdgeToken.Get(e))
			if !have {
				h, have = candidate, true
				continue
			}
			if candidate != h {
				panic("lattice: in-edges into a node disagree on history after resync")
			}
		}
		lat.History.Set(n, h)
	}

	for _, n := range lat.Topo {
		for _, e := range lat.Graph.OutgoingEdges(n) {
			src := lat.Graph.Source(e)
			p := b.lm.Probability(lat.EdgeToken.Get(e), lat.History.Get(src))
			lat.EdgeLogLik.Set(e, p)
		}
	}
}
