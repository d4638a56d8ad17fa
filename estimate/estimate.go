package estimate

import (
	"sort"

	"github.com/golang/glog"

	"github.com/katalvlaran/lvlath-jseq/logprob"
	"github.com/katalvlaran/lvlath-jseq/seqmodel"
)

// Item is one row of evidence handed to an Estimator: a history, the token
// predicted from it, and the accumulated mass an accumulator credited to
// that bucket.
type Item struct {
	History  seqmodel.HistoryID
	Token    seqmodel.Token
	Evidence logprob.LogProb
}

// group is one history's working state during discounting and
// interpolation. Masses are kept in plain probability space throughout,
// since Kneser-Ney's subtraction and threshold tests only mean what they
// say there.
type group struct {
	history seqmodel.HistoryID
	level   int
	tokens  []seqmodel.Token
	mass    map[seqmodel.Token]float64
	total   float64
	beta    float64
	final   map[seqmodel.Token]float64
}

// Estimator groups one evidence store's items by history and, on
// MakeSequenceModel, applies Kneser-Ney discounting and interpolation to
// produce a fresh sequence model.
type Estimator struct {
	lm     *seqmodel.Model
	items  []Item
	groups map[seqmodel.HistoryID]*group
	maxLvl int
}

// NewEstimator returns an Estimator over items, using lm only for its
// history topology (Shortened, HistoryLength, HistoryAsTuple) — lm's own
// probabilities are not consulted.
func NewEstimator(lm *seqmodel.Model, items []Item) *Estimator {
	return &Estimator{lm: lm, items: items}
}

func (e *Estimator) ensureGroup(h seqmodel.HistoryID) *group {
	if g, ok := e.groups[h]; ok {
		return g
	}
	g := &group{
		history: h,
		level:   e.lm.HistoryLength(h),
		mass:    make(map[seqmodel.Token]float64),
	}
	e.groups[h] = g
	if g.level > e.maxLvl {
		e.maxLvl = g.level
	}

	return g
}

func (g *group) addToken(t seqmodel.Token, mass float64) {
	if _, ok := g.mass[t]; !ok {
		g.tokens = append(g.tokens, t)
	}
	g.mass[t] = mass
}

// build populates e.groups from e.items and performs the "expansion to
// support" pass: for every evidence item's history, every proper prefix
// (obtained by repeated Shortened) gets a zero-evidence entry for that
// item's token, so back-off always has somewhere to land.
func (e *Estimator) build() {
	e.groups = make(map[seqmodel.HistoryID]*group)
	e.maxLvl = 0

	for _, it := range e.items {
		g := e.ensureGroup(it.History)
		g.addToken(it.Token, float64(it.Evidence.ToProb()))
	}

	seeded := make([]seqmodel.HistoryID, 0, len(e.groups))
	for h := range e.groups {
		seeded = append(seeded, h)
	}

	for _, h := range seeded {
		g := e.groups[h]
		if h == seqmodel.Root {
			continue
		}
		for cur := e.lm.Shortened(h); ; cur = e.lm.Shortened(cur) {
			gc := e.ensureGroup(cur)
			for _, t := range g.tokens {
				if _, ok := gc.mass[t]; !ok {
					gc.addToken(t, 0)
				}
			}
			if cur == seqmodel.Root {
				break
			}
		}
	}
}

func (e *Estimator) groupsAtLevel(l int) []*group {
	var out []*group
	for _, g := range e.groups {
		if g.level == l {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].history < out[j].history })

	return out
}

// discount applies Kneser-Ney absolute discounting, level by level from
// e.maxLvl down to 0, crediting subtracted mass up to each history's
// shorter counterpart (level 0 has no shorter counterpart to credit).
func (e *Estimator) discount(discountsByLevel []float64) {
	for l := e.maxLvl; l >= 1; l-- {
		d := discountsByLevel[l]
		for _, g := range e.groupsAtLevel(l) {
			g.total = sumMass(g.mass)
			parent := e.groups[e.lm.Shortened(g.history)]
			for _, t := range g.tokens {
				p := g.mass[t]
				if p > d {
					g.mass[t] = p - d
					parent.mass[t] += d
				} else {
					g.mass[t] = 0
					parent.mass[t] += p
				}
			}
		}
	}

	d0 := discountsByLevel[0]
	for _, g := range e.groupsAtLevel(0) {
		g.total = sumMass(g.mass)
		for _, t := range g.tokens {
			p := g.mass[t]
			if p > d0 {
				g.mass[t] = p - d0
			} else {
				g.mass[t] = 0
			}
		}
	}
}

func sumMass(mass map[seqmodel.Token]float64) float64 {
	sum := 0.0
	for _, v := range mass {
		sum += v
	}

	return sum
}

// interpolate computes each group's back-off weight and its surviving
// items' interpolated probabilities, processing levels from root upward so
// that a group's shorter counterpart is always already resolved.
func (e *Estimator) interpolate(p0 float64) {
	for l := 0; l <= e.maxLvl; l++ {
		for _, g := range e.groupsAtLevel(l) {
			sumUsed := 0.0
			for _, t := range g.tokens {
				if g.mass[t] > 0 {
					sumUsed += g.mass[t]
				}
			}

			if g.total <= 0 {
				glog.V(2).Infof("estimate: history %d carries no evidence, deferring entirely to back-off", g.history)
			}

			var beta float64
			switch {
			case sumUsed <= 0:
				beta = 1
			case sumUsed > g.total:
				beta = 0
			default:
				beta = 1 - sumUsed/g.total
			}
			g.beta = beta
			g.final = make(map[seqmodel.Token]float64, len(g.tokens))

			for _, t := range g.tokens {
				if g.mass[t] <= 0 {
					continue
				}
				var lower float64
				if g.history == seqmodel.Root {
					lower = p0
				} else {
					lower = e.lowerProb(t, e.lm.Shortened(g.history), p0)
				}
				g.final[t] = g.mass[t]/g.total + beta*lower
			}
		}
	}
}

// lowerProb is P_lower(t) relative to a history one level shorter than the
// group being interpolated: the shorter group's fully-interpolated
// probability for t if it assigned t positive mass, else its back-off
// weight times the same question asked of its own shorter counterpart,
// bottoming out at p0 past the root.
func (e *Estimator) lowerProb(t seqmodel.Token, h seqmodel.HistoryID, p0 float64) float64 {
	factor := 1.0
	cur := h
	for {
		g, ok := e.groups[cur]
		if ok {
			if fp, ok := g.final[t]; ok {
				return factor * fp
			}
			factor *= g.beta
		}
		if cur == seqmodel.Root {
			return factor * p0
		}
		cur = e.lm.Shortened(cur)
	}
}

// MakeSequenceModel runs discounting and interpolation over e's evidence
// and replaces target's table with the result: every group's back-off
// weight plus its surviving items' interpolated probabilities, oldest-first
// per seqmodel's external convention. discountsByLevel must have at least
// maxLevel+1 entries, where maxLevel is the deepest history length among
// e's evidence items.
func (e *Estimator) MakeSequenceModel(target *seqmodel.Model, vocabularySize int, discountsByLevel []float64) {
	e.build()
	if len(e.groups) == 0 {
		target.Set(nil)

		return
	}
	if len(discountsByLevel) <= e.maxLvl {
		panic("estimate: discountsByLevel too short for the deepest evidence history")
	}

	e.discount(discountsByLevel)
	p0 := 1.0 / float64(vocabularySize)
	e.interpolate(p0)

	var triples []seqmodel.Triple
	for _, g := range e.groups {
		history := e.lm.HistoryAsTuple(g.history)
		triples = append(triples, seqmodel.Triple{
			History: history,
			Token:   nil,
			Score:   logprob.FromProb(logprob.Prob(g.beta)),
		})
		for _, t := range g.tokens {
			p, ok := g.final[t]
			if !ok {
				continue
			}
			tok := t
			triples = append(triples, seqmodel.Triple{
				History: history,
				Token:   &tok,
				Score:   logprob.FromProb(logprob.Prob(p)),
			})
		}
	}
	target.Set(triples)
}
