package seqmodel

import "github.com/katalvlaran/lvlath-jseq/logprob"

// Token is a symbol predicted and conditioned on by the sequence model. It
// is the caller's choice of alphabet; the decoder instantiates it with
// multigram.Index.
type Token uint32

// HistoryID names a history (a node in the back-off tree). Root is the
// empty-context history; CulDeSac is an absorbing sentinel with no backing
// node, reached only via a terminal transition.
type HistoryID int32

const (
	// Root is the empty-context history, always present once a Model is
	// built.
	Root HistoryID = 0
	// CulDeSac is a null history with no predictions and no further
	// shortening; querying Probability against it is a caller defect.
	CulDeSac HistoryID = -1
)

// historyNode is one entry of the model's node array. Children occupy
// [childLo, childHi) of the same array, sorted by token; predictions
// occupy [predLo, predHi) of the model's pred array, sorted by token.
type historyNode struct {
	token             Token
	depth             int32
	backOff           logprob.LogProb
	parent            HistoryID
	childLo, childHi  int32
	predLo, predHi    int32
}

// prediction is one (token, score) entry of a history's word-probability
// table.
type prediction struct {
	token Token
	score logprob.LogProb
}

// Model is a frozen n-gram back-off tree. The zero Model is not usable;
// construct one with Build or by calling Set on a fresh Model.
type Model struct {
	initToken Token
	termToken Token
	nodes     []historyNode
	preds     []prediction
}

// SetInitAndTerm records which tokens denote sequence-begin and
// sequence-end, used by Initial and by callers recognizing a terminal
// transition. It does not affect the tree itself and may be called before
// or after Build.
func (m *Model) SetInitAndTerm(initToken, termToken Token) {
	m.initToken = initToken
	m.termToken = termToken
}

// Initial returns the history to start decoding from: the depth-1 node
// for the init token if the model saw one during training, else Root.
func (m *Model) Initial() HistoryID {
	if child, ok := m.findChild(Root, m.initToken); ok {
		return child
	}

	return Root
}

// TermToken returns the token configured by SetInitAndTerm as denoting
// sequence-end.
func (m *Model) TermToken() Token { return m.termToken }

// HistoryLength returns the number of tokens of context h represents.
// CulDeSac has length 0.
func (m *Model) HistoryLength(h HistoryID) int {
	if h == CulDeSac {
		return 0
	}

	return int(m.nodes[h].depth)
}

// Shortened returns h's back-off parent: the history obtained by dropping
// the oldest token of h's context. Shortened(Root) is Root itself
// (idempotent, since the empty context cannot be shortened further).
func (m *Model) Shortened(h HistoryID) HistoryID {
	if h == CulDeSac {
		panic("seqmodel: cannot shorten the cul-de-sac history")
	}

	return m.nodes[h].parent
}

// HistoryAsTuple materializes h's context oldest-first, matching the
// oldest-first convention used at the package boundary.
func (m *Model) HistoryAsTuple(h HistoryID) []Token {
	if h == CulDeSac || h == Root {
		return nil
	}

	toks := make([]Token, 0, m.nodes[h].depth)
	for cur := h; cur != Root; cur = m.nodes[cur].parent {
		toks = append(toks, m.nodes[cur].token)
	}

	return toks
}

// Advanced returns the history reached by extending h with token w: the
// history's oldest-first context gains w as its newest token, and the
// result is the deepest node of the tree reachable along that extended
// context starting from Root.
//
// h's ancestor chain (h, Shortened(h), Shortened²(h), ..., Root) yields
// h's own context oldest-first directly, since each step toward the root
// drops exactly the oldest remaining token. Descending the tree consumes
// tokens in the opposite order (newest first, since a depth-1 child is
// keyed by the single most recent token); the extended context is
// therefore walked back to front.
func (m *Model) Advanced(h HistoryID, w Token) HistoryID {
	if h == CulDeSac {
		panic("seqmodel: cannot advance from the cul-de-sac history")
	}

	oldestFirst := m.HistoryAsTuple(h)
	extended := make([]Token, len(oldestFirst)+1)
	copy(extended, oldestFirst)
	extended[len(oldestFirst)] = w

	cur := Root
	for i := len(extended) - 1; i >= 0; i-- {
		child, ok := m.findChild(cur, extended[i])
		if !ok {
			break
		}
		cur = child
	}

	return cur
}

// Probability returns P(w | h): it ascends from h toward Root, multiplying
// in each level's back-off weight, and stops at (multiplies in, instead of
// the back-off weight) the first ancestor whose prediction table holds w.
// If no ancestor (including Root) predicts w, the result is the product of
// every back-off weight from h up to and including Root's.
func (m *Model) Probability(w Token, h HistoryID) logprob.LogProb {
	if h == CulDeSac {
		panic("seqmodel: cannot query probability from the cul-de-sac history")
	}

	acc := logprob.Certain
	for cur := h; ; {
		node := &m.nodes[cur]
		if score, ok := m.findPrediction(cur, w); ok {
			return acc.Mul(score)
		}
		acc = acc.Mul(node.backOff)
		if cur == Root {
			return acc
		}
		cur = node.parent
	}
}

// Entry is one row of a history's stored table: either its back-off
// weight (Token == 0) or one of its predictions.
type Entry struct {
	Token Token
	Score logprob.LogProb
}

// GetNode returns h's stored table: the back-off weight first (Token ==
// 0), then each prediction in ascending token order.
func (m *Model) GetNode(h HistoryID) []Entry {
	node := &m.nodes[h]
	out := make([]Entry, 0, 1+int(node.predHi-node.predLo))
	out = append(out, Entry{Token: 0, Score: node.backOff})
	for i := node.predLo; i < node.predHi; i++ {
		out = append(out, Entry{Token: m.preds[i].token, Score: m.preds[i].score})
	}

	return out
}

// NumHistories returns the number of distinct histories (nodes) in the
// tree, excluding the trailing sentinel.
func (m *Model) NumHistories() int {
	if len(m.nodes) == 0 {
		return 0
	}

	return len(m.nodes) - 1
}

func (m *Model) findChild(h HistoryID, token Token) (HistoryID, bool) {
	node := &m.nodes[h]
	lo, hi := node.childLo, node.childHi
	for lo < hi {
		mid := lo + (hi-lo)/2
		t := m.nodes[mid].token
		switch {
		case t < token:
			lo = mid + 1
		case t > token:
			hi = mid
		default:
			return HistoryID(mid), true
		}
	}

	return 0, false
}

func (m *Model) findPrediction(h HistoryID, token Token) (logprob.LogProb, bool) {
	node := &m.nodes[h]
	lo, hi := node.predLo, node.predHi
	for lo < hi {
		mid := lo + (hi-lo)/2
		t := m.preds[mid].token
		switch {
		case t < token:
			lo = mid + 1
		case t > token:
			hi = mid
		default:
			return m.preds[mid].score, true
		}
	}

	return 0, false
}
