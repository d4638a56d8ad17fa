package seqmodel

import (
	"sort"

	"github.com/katalvlaran/lvlath-jseq/logprob"
)

// Triple is one row of a sequence model's external (get/set) table: the
// history it conditions on (oldest-first), and either a predicted token
// with its score or, when Token is nil, the history's back-off weight.
type Triple struct {
	History []Token
	Token   *Token
	Score   logprob.LogProb
}

// buildRow is a Triple translated into the tree builder's own orientation:
// history most-recent-first, shrinking by one token at each level of
// recursion as the builder descends, and a sentinel zero token standing in
// for "no predicted token" (this row is a back-off weight).
type buildRow struct {
	history []Token // most-recent-first, remaining (unconsumed) context
	token   Token   // 0 => this row is the back-off weight for the row's history
	score   logprob.LogProb
}

// Build constructs a frozen Model from a flat list of Triples. Triples for
// the same history may arrive in any order and interleaved with other
// histories; Build groups them by history internally.
func Build(triples []Triple) *Model {
	rows := make([]buildRow, len(triples))
	for i, t := range triples {
		row := buildRow{score: t.Score}
		row.history = reversed(t.History)
		if t.Token != nil {
			row.token = *t.Token
		}
		rows[i] = row
	}

	return build(rows)
}

// Set replaces m's table with the one described by triples, as Build would
// produce, without requiring a caller to discard the old Model value.
func (m *Model) Set(triples []Triple) {
	built := Build(triples)
	m.nodes = built.nodes
	m.preds = built.preds
}

// Get returns m's complete table as Triples, suitable for feeding back
// into Build or Set to reconstruct an identical Model (a Set(Get())
// round trip).
func (m *Model) Get() []Triple {
	var out []Triple
	var walk func(h HistoryID)
	walk = func(h HistoryID) {
		node := &m.nodes[h]
		history := m.HistoryAsTuple(h)
		out = append(out, Triple{History: history, Token: nil, Score: node.backOff})
		for i := node.predLo; i < node.predHi; i++ {
			tok := m.preds[i].token
			out = append(out, Triple{History: history, Token: &tok, Score: m.preds[i].score})
		}
		for c := node.childLo; c < node.childHi; c++ {
			walk(HistoryID(c))
		}
	}
	walk(Root)

	return out
}

func reversed(toks []Token) []Token {
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[len(toks)-1-i] = t
	}

	return out
}

func headOf(history []Token) Token {
	if len(history) == 0 {
		return 0
	}

	return history[0]
}

// pendingNode is one node awaiting its table and children during
// construction.
type pendingNode struct {
	nodeIdx int
	depth   int32
	rows    []buildRow
}

// build is the core tree constructor:
//
//  1. creates a root node carrying the whole input range;
//  2. iteratively, for each pending node, sorts its range by
//     (history-head, token), consumes the prefix whose history is already
//     exhausted as the node's own predictions and back-off weight, then
//     partitions the remainder into child nodes by distinct history-head,
//     enqueueing each;
//  3. appends a sentinel node and sentinel prediction once every pending
//     node has been processed.
//
// Nodes are appended in the order their parent is processed, so a node's
// children always occupy a contiguous, token-sorted range of the node
// array; no pointer-rewriting pass is needed since childLo/childHi and
// predLo/predHi are recorded directly as each node is processed.
func build(rows []buildRow) *Model {
	m := &Model{nodes: make([]historyNode, 1)} // index 0 reserved for root

	queue := []pendingNode{{nodeIdx: 0, depth: 0, rows: rows}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		sort.Slice(cur.rows, func(i, j int) bool {
			hi, hj := headOf(cur.rows[i].history), headOf(cur.rows[j].history)
			if hi != hj {
				return hi < hj
			}

			return cur.rows[i].token < cur.rows[j].token
		})

		i := 0
		predLo := int32(len(m.preds))
		var backOff logprob.LogProb
		for i < len(cur.rows) && len(cur.rows[i].history) == 0 {
			row := cur.rows[i]
			if row.token == 0 {
				backOff = row.score
			} else {
				m.preds = append(m.preds, prediction{token: row.token, score: row.score})
			}
			i++
		}
		predHi := int32(len(m.preds))

		node := &m.nodes[cur.nodeIdx]
		node.depth = cur.depth
		node.backOff = backOff
		node.predLo, node.predHi = predLo, predHi

		childLo := int32(len(m.nodes))
		for i < len(cur.rows) {
			head := headOf(cur.rows[i].history)
			j := i
			var group []buildRow
			for j < len(cur.rows) && headOf(cur.rows[j].history) == head {
				group = append(group, buildRow{
					history: cur.rows[j].history[1:],
					token:   cur.rows[j].token,
					score:   cur.rows[j].score,
				})
				j++
			}

			childIdx := len(m.nodes)
			m.nodes = append(m.nodes, historyNode{token: head, parent: HistoryID(cur.nodeIdx)})
			queue = append(queue, pendingNode{nodeIdx: childIdx, depth: cur.depth + 1, rows: group})
			i = j
		}
		node = &m.nodes[cur.nodeIdx] // re-borrow: appends above may have reallocated m.nodes
		node.childLo, node.childHi = childLo, int32(len(m.nodes))
	}

	// Sentinel node/prediction: a harmless one-past-the-end marker, not
	// load-bearing since every node already carries explicit hi bounds.
	m.nodes = append(m.nodes, historyNode{childLo: int32(len(m.nodes)), predLo: int32(len(m.preds))})
	m.preds = append(m.preds, prediction{})

	return m
}
