package decoder

import (
	"github.com/katalvlaran/lvlath-jseq/logprob"
	"github.com/katalvlaran/lvlath-jseq/multigram"
	"github.com/katalvlaran/lvlath-jseq/pqueue"
	"github.com/katalvlaran/lvlath-jseq/seqmodel"
)

// DefaultStackLimit bounds the number of states a single Translate or
// NBestInit call may push onto its open queue before giving up with
// ErrStackLimitExceeded.
const DefaultStackLimit = 1 << 20

// state is a node of the decoder's implicit search space: a position in
// the input left-hand sequence plus the sequence-model history reached
// there. Two states are equal iff both fields match, which is what lets
// the closed set recognize and skip an already-resolved state.
type state struct {
	pos     int
	history seqmodel.HistoryID
}

// trace is one link of an immutable, shared back-trace chain: each state
// expansion allocates one trace node pointing at its predecessor's, so
// sibling paths through a common prefix share the same tail instead of
// copying it. Reconstruction walks pred links to the root and reverses.
type trace struct {
	pred  *trace
	token seqmodel.Token
}

// path walks tr's chain to the root and returns the multigram indices in
// forward (emission) order.
func (tr *trace) path() []multigram.Index {
	var rev []multigram.Index
	for n := tr; n != nil; n = n.pred {
		rev = append(rev, multigram.Index(n.token))
	}
	out := make([]multigram.Index, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}

	return out
}

// Translator performs A* decoding over a frozen multigram.Inventory and
// seqmodel.Model: single-best via Translate, N-best via NBestInit and
// NBestContext.Next. The zero Translator is not usable; construct one with
// NewTranslator and configure it with SetMultigramInventory and
// SetSequenceModel before calling Translate.
type Translator struct {
	inv *multigram.Inventory
	lm  *seqmodel.Model

	stackLimit int

	// leftIndex maps a left-hand multigram to every joint multigram index
	// seen with that left. minLen/maxLen bound the lengths of left
	// multigrams ever inserted, so candidate expansions can be enumerated
	// without scanning every possible length.
	leftIndex      map[multigram.Multigram][]multigram.Index
	minLen, maxLen int
}

// NewTranslator returns a Translator with DefaultStackLimit and no
// inventory or sequence model configured yet.
func NewTranslator() *Translator {
	return &Translator{stackLimit: DefaultStackLimit}
}

// SetMultigramInventory points the translator at a frozen inventory and
// rebuilds the left-indexed map it decodes against.
func (t *Translator) SetMultigramInventory(inv *multigram.Inventory) {
	t.inv = inv
	t.reindex()
}

// SetSequenceModel points the translator at a frozen sequence model.
func (t *Translator) SetSequenceModel(lm *seqmodel.Model) { t.lm = lm }

// SetStackLimit sets how many states a single Translate or NBestInit call
// may push onto its open queue (counted cumulatively, stale entries
// included) before aborting with ErrStackLimitExceeded.
func (t *Translator) SetStackLimit(n int) {
	if n <= 0 {
		panic("decoder: stack limit must be positive")
	}
	t.stackLimit = n
}

func (t *Translator) reindex() {
	t.leftIndex = make(map[multigram.Multigram][]multigram.Index)
	t.minLen, t.maxLen = 0, 0
	seenAny := false
	for idx := multigram.Index(1); int(idx) <= t.inv.Size(); idx++ {
		left, _ := t.inv.Symbol(idx)
		t.leftIndex[left] = append(t.leftIndex[left], idx)

		l := left.Len()
		switch {
		case !seenAny:
			t.minLen, t.maxLen = l, l
			seenAny = true
		case l < t.minLen:
			t.minLen = l
		case l > t.maxLen:
			t.maxLen = l
		}
	}
}

// candidateEnds returns every left_end in [pos+minLen, min(pos+maxLen,
// total)] the translator's known left multigram lengths admit from pos.
func (t *Translator) candidateEnds(pos, total int) []int {
	lo := pos + t.minLen
	hi := pos + t.maxLen
	if hi > total {
		hi = total
	}
	if lo > hi {
		return nil
	}
	ends := make([]int, 0, hi-lo+1)
	for e := lo; e <= hi; e++ {
		ends = append(ends, e)
	}

	return ends
}

// expand pushes every successor of (st, score, tr) onto pq: one per known
// left multigram starting at st.pos, plus — once st.pos reaches the end
// of left — a terminal transition into the cul-de-sac history. It reports
// how many entries it pushed, so callers can enforce a stack limit.
func (t *Translator) expand(pq *pqueue.Queue[state], left []multigram.Symbol, st state, score logprob.LogProb, tr *trace) int {
	pushed := 0
	for _, end := range t.candidateEnds(st.pos, len(left)) {
		leftMG := multigram.New(left[st.pos:end]...)
		for _, idx := range t.leftIndex[leftMG] {
			q := seqmodel.Token(idx)
			next := state{pos: end, history: t.lm.Advanced(st.history, q)}
			pq.Push(next, score.Mul(t.lm.Probability(q, st.history)), &trace{pred: tr, token: q})
			pushed++
		}
	}
	if st.pos == len(left) {
		next := state{pos: st.pos, history: seqmodel.CulDeSac}
		pq.Push(next, score.Mul(t.lm.Probability(t.lm.TermToken(), st.history)), tr)
		pushed++
	}

	return pushed
}

// Translate returns the most probable multigram index sequence decoding
// left, and its log-probability. It fails with ErrStackLimitExceeded if
// more states than the configured stack limit have been pushed onto the
// open queue before a result is found, or ErrTranslationFailed if the
// queue empties first.
func (t *Translator) Translate(left []multigram.Symbol) (logprob.LogProb, []multigram.Index, error) {
	pq := pqueue.NewQueue[state]()
	closed := make(map[state]struct{})

	seed := state{pos: 0, history: t.lm.Initial()}
	pq.Push(seed, logprob.Certain, (*trace)(nil))
	pushed := 1

	for pq.Len() > 0 {
		ent := pq.Pop()
		st := ent.State
		if _, done := closed[st]; done {
			continue
		}
		closed[st] = struct{}{}
		tr, _ := ent.Payload.(*trace)

		if st.history == seqmodel.CulDeSac {
			return ent.Score, tr.path(), nil
		}

		if pushed > t.stackLimit {
			return 0, nil, ErrStackLimitExceeded
		}
		pushed += t.expand(pq, left, st, ent.Score, tr)
	}

	return 0, nil, ErrTranslationFailed
}
