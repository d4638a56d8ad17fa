package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-jseq/logprob"
	"github.com/katalvlaran/lvlath-jseq/seqmodel"
)

func almost(t *testing.T, want, got float64) {
	t.Helper()
	assert.True(t, math.Abs(want-got) < 1e-9, "want %v got %v", want, got)
}

// TestKneserNeyOneLevel reproduces the worked example: evidence (t=1, mass
// 3) and (t=2, mass 1) at the root, discount 0.5, vocabulary size 4.
func TestKneserNeyOneLevel(t *testing.T) {
	lm := seqmodel.Build(nil)

	items := []Item{
		{History: seqmodel.Root, Token: 1, Evidence: logprob.FromProb(3)},
		{History: seqmodel.Root, Token: 2, Evidence: logprob.FromProb(1)},
	}
	est := NewEstimator(lm, items)

	target := &seqmodel.Model{}
	est.MakeSequenceModel(target, 4, []float64{0.5})

	almost(t, 0.6875, float64(est.groups[seqmodel.Root].final[1]))
	almost(t, 0.1875, float64(est.groups[seqmodel.Root].final[2]))
	almost(t, 0.25, est.groups[seqmodel.Root].beta)

	p1 := target.Probability(1, seqmodel.Root).ToProb()
	p2 := target.Probability(2, seqmodel.Root).ToProb()
	almost(t, 0.6875, float64(p1))
	almost(t, 0.1875, float64(p2))
}

// TestKneserNeyMassPreservation checks that, over the tracked tokens plus
// the two untracked vocabulary slots accounted for by beta*p0, total mass
// is 1 ("KN mass preservation").
func TestKneserNeyMassPreservation(t *testing.T) {
	lm := seqmodel.Build(nil)
	items := []Item{
		{History: seqmodel.Root, Token: 1, Evidence: logprob.FromProb(3)},
		{History: seqmodel.Root, Token: 2, Evidence: logprob.FromProb(1)},
	}
	est := NewEstimator(lm, items)
	target := &seqmodel.Model{}
	est.MakeSequenceModel(target, 4, []float64{0.5})

	g := est.groups[seqmodel.Root]
	p0 := 1.0 / 4
	sum := g.final[1] + g.final[2] + g.beta*p0 + g.beta*p0
	almost(t, 1.0, sum)
}

// TestKneserNeyTwoLevels exercises the upward credit from a depth-1
// history to the root, and back-off for an unseen bigram.
func TestKneserNeyTwoLevels(t *testing.T) {
	// Build a shape with root and one depth-1 history (conditioned on
	// token 1), so HistoryLength/Shortened have somewhere to walk.
	tokA := seqmodel.Token(1)
	lm := seqmodel.Build([]seqmodel.Triple{
		{History: nil, Token: nil, Score: logprob.Certain},
		{History: []seqmodel.Token{tokA}, Token: nil, Score: logprob.Certain},
	})

	h1 := lm.Advanced(seqmodel.Root, tokA)
	require.Equal(t, 1, lm.HistoryLength(h1))

	items := []Item{
		{History: h1, Token: 2, Evidence: logprob.FromProb(4)},
		{History: seqmodel.Root, Token: 2, Evidence: logprob.FromProb(1)},
		{History: seqmodel.Root, Token: 3, Evidence: logprob.FromProb(1)},
	}
	est := NewEstimator(lm, items)
	target := &seqmodel.Model{}
	est.MakeSequenceModel(target, 10, []float64{0.5, 0.5})

	// Root's group must hold token 2 (evidenced both at h1 and directly at
	// root), so upward credit from h1 during discounting has somewhere to
	// land.
	root := est.groups[seqmodel.Root]
	require.Contains(t, root.mass, seqmodel.Token(2))

	// Every group's beta must land in [0, 1].
	for _, g := range est.groups {
		assert.GreaterOrEqual(t, g.beta, 0.0)
		assert.LessOrEqual(t, g.beta, 1.0)
	}
}

func TestMakeSequenceModelEmptyEvidenceClearsTarget(t *testing.T) {
	lm := seqmodel.Build(nil)
	est := NewEstimator(lm, nil)
	target := &seqmodel.Model{}
	target.SetInitAndTerm(1, 2)
	est.MakeSequenceModel(target, 4, nil)
	assert.Equal(t, 1, target.NumHistories())
}
