package accum

import (
	"sort"

	"github.com/katalvlaran/lvlath-jseq/estimate"
	"github.com/katalvlaran/lvlath-jseq/logprob"
	"github.com/katalvlaran/lvlath-jseq/seqmodel"
)

// Key identifies one evidence bucket: a history and the token predicted
// from it.
type Key struct {
	History seqmodel.HistoryID
	Token   seqmodel.Token
}

// Item is one row of a Store's external-facing list: a history materialized
// as an oldest-first token tuple, the predicted token, and its accumulated
// mass.
type Item struct {
	History []seqmodel.Token
	Token   seqmodel.Token
	Mass    logprob.LogProb
}

// Store is the EM statistics bucket shared by every accumulator: a map
// from (history, token) to accumulated log-weight. The void token is
// never accumulated, since it stands for an anonymized, not-yet-known
// joint multigram.
type Store struct {
	lm   *seqmodel.Model
	mass map[Key]logprob.LogProb
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{mass: make(map[Key]logprob.LogProb)}
}

// SetSequenceModel points the store at the sequence model used to
// interpret history ids (for AsList and MaximumHistoryLength).
func (s *Store) SetSequenceModel(lm *seqmodel.Model) { s.lm = lm }

// Add credits weight to (h, tok)'s accumulated mass via log-sum-exp. A
// void token (0) is silently ignored.
func (s *Store) Add(h seqmodel.HistoryID, tok seqmodel.Token, weight logprob.LogProb) {
	if tok == 0 {
		return
	}
	key := Key{History: h, Token: tok}
	if cur, ok := s.mass[key]; ok {
		s.mass[key] = cur.Add(weight)
		return
	}
	s.mass[key] = weight
}

// Size returns the number of distinct (history, token) buckets.
func (s *Store) Size() int { return len(s.mass) }

// MaximumHistoryLength returns the longest history length referenced by
// any bucket.
func (s *Store) MaximumHistoryLength() int {
	max := 0
	for k := range s.mass {
		if l := s.lm.HistoryLength(k.History); l > max {
			max = l
		}
	}

	return max
}

// Maximum returns the single most likely (smallest-score) accumulated
// mass across all buckets, or logprob.Impossible if the store is empty.
func (s *Store) Maximum() logprob.LogProb {
	best := logprob.Impossible
	for _, v := range s.mass {
		if v.MoreLikely(best) {
			best = v
		}
	}

	return best
}

// Total returns the log-sum-exp of every bucket's mass.
func (s *Store) Total() logprob.LogProb {
	acc := logprob.NewAccumulator(0)
	for _, v := range s.mass {
		acc.Add(v)
	}

	return acc.Sum()
}

// AsList returns every bucket as an Item, sorted by (history tuple, token)
// for determinism.
func (s *Store) AsList() []Item {
	out := make([]Item, 0, len(s.mass))
	for k, v := range s.mass {
		out = append(out, Item{
			History: s.lm.HistoryAsTuple(k.History),
			Token:   k.Token,
			Mass:    v,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		for k := 0; k < len(a.History) && k < len(b.History); k++ {
			if a.History[k] != b.History[k] {
				return a.History[k] < b.History[k]
			}
		}
		if len(a.History) != len(b.History) {
			return len(a.History) < len(b.History)
		}

		return a.Token < b.Token
	})

	return out
}

// MakeSequenceModelEstimator returns an Estimator wired to this store's
// current contents and sequence model (for history topology).
func (s *Store) MakeSequenceModelEstimator() *estimate.Estimator {
	items := make([]estimate.Item, 0, len(s.mass))
	for k, v := range s.mass {
		items = append(items, estimate.Item{History: k.History, Token: k.Token, Evidence: v})
	}

	return estimate.NewEstimator(s.lm, items)
}
