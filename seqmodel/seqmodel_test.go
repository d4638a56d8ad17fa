package seqmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-jseq/logprob"
)

func tok(v Token) *Token { return &v }

func tinyTriples() []Triple {
	// A two-level model over tokens {1,2}: unigram predicts 1 and 2,
	// bigram [1] sharpens the prediction for 2.
	return []Triple{
		{History: nil, Token: nil, Score: logprob.FromProb(1)},
		{History: nil, Token: tok(1), Score: logprob.FromProb(0.5)},
		{History: nil, Token: tok(2), Score: logprob.FromProb(0.5)},
		{History: []Token{1}, Token: nil, Score: logprob.FromProb(0.2)},
		{History: []Token{1}, Token: tok(2), Score: logprob.FromProb(0.9)},
	}
}

func TestBuildRootPredictions(t *testing.T) {
	m := Build(tinyTriples())

	assert.Equal(t, logprob.FromProb(0.5), m.Probability(1, Root))

	h := m.Advanced(Root, 1)
	assert.InDelta(t, float64(logprob.FromProb(0.9)), float64(m.Probability(2, h)), 1e-9)
}

func TestAdvancedReachesDeeperHistory(t *testing.T) {
	m := Build(tinyTriples())

	h := m.Advanced(Root, 1)
	require.Equal(t, 1, m.HistoryLength(h))
	assert.Equal(t, []Token{1}, m.HistoryAsTuple(h))
}

func TestAdvancedFallsBackWhenNoChild(t *testing.T) {
	m := Build(tinyTriples())

	h := m.Advanced(Root, 2) // no history [2] trained, stays at Root
	assert.Equal(t, Root, h)
}

func TestProbabilityBacksOffToRoot(t *testing.T) {
	m := Build(tinyTriples())

	h := m.Advanced(Root, 1)
	// token 1 is not predicted by history [1], so probability must fall
	// back through [1]'s back-off weight into the root's P(1).
	got := m.Probability(1, h)
	want := logprob.FromProb(0.2).Mul(logprob.FromProb(0.5))
	assert.InDelta(t, float64(want), float64(got), 1e-9)
}

func TestShortenedIsParent(t *testing.T) {
	m := Build(tinyTriples())

	h := m.Advanced(Root, 1)
	assert.Equal(t, Root, m.Shortened(h))
	assert.Equal(t, Root, m.Shortened(Root))
}

func TestSetGetRoundTrip(t *testing.T) {
	original := Build(tinyTriples())
	triples := original.Get()

	var rebuilt Model
	rebuilt.Set(triples)

	h := original.Advanced(Root, 1)
	h2 := rebuilt.Advanced(Root, 1)
	require.Equal(t, original.HistoryAsTuple(h), rebuilt.HistoryAsTuple(h2))

	for _, w := range []Token{1, 2} {
		assert.Equal(t, original.Probability(w, Root), rebuilt.Probability(w, Root))
		assert.Equal(t, original.Probability(w, h), rebuilt.Probability(w, h2))
	}
}

func TestInitialUsesConfiguredToken(t *testing.T) {
	m := Build(tinyTriples())
	m.SetInitAndTerm(1, 2)

	h := m.Initial()
	assert.Equal(t, m.Advanced(Root, 1), h)
}

func TestGetNodeExposesBackOffFirst(t *testing.T) {
	m := Build(tinyTriples())

	entries := m.GetNode(Root)
	require.NotEmpty(t, entries)
	assert.Equal(t, Token(0), entries[0].Token)
}
