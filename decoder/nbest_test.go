package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-jseq/logprob"
	"github.com/katalvlaran/lvlath-jseq/multigram"
)

// TestNBestOrderingAndExhaustion checks that two equally-likely alignments
// of the same input arrive in the first two Next calls, and a third call
// fails with ErrNoFurtherTranslations.
func TestNBestOrderingAndExhaustion(t *testing.T) {
	inv, step1, step2, diag := ambiguousSplitInventory()
	tr := newTranslator(t, inv, uniformModel(), 0)

	ctx, err := tr.NBestInit([]multigram.Symbol{1, 2})
	require.NoError(t, err)

	best := ctx.BestLogLik()
	assert.Equal(t, logprob.Certain, best)

	score1, seg1, err := ctx.Next()
	require.NoError(t, err)
	assert.Equal(t, best, score1)

	score2, seg2, err := ctx.Next()
	require.NoError(t, err)
	assert.Equal(t, logprob.Certain, score2)

	seen := map[string]bool{}
	for _, seg := range [][]multigram.Index{seg1, seg2} {
		switch {
		case len(seg) == 1 && seg[0] == diag:
			seen["diag"] = true
		case len(seg) == 2 && seg[0] == step1 && seg[1] == step2:
			seen["steps"] = true
		default:
			t.Fatalf("unexpected segmentation %v", seg)
		}
	}
	assert.Len(t, seen, 2, "expected both distinct segmentations across the first two results")

	_, _, err = ctx.Next()
	assert.ErrorIs(t, err, ErrNoFurtherTranslations)

	// Exhaustion is sticky: further calls keep failing the same way.
	_, _, err = ctx.Next()
	assert.ErrorIs(t, err, ErrNoFurtherTranslations)
}

// TestNBestTotalLogLikAtLeastBest checks that the log-sum-exp total is at
// least as likely as (no less probable in score than) the single best
// path, since total mass aggregates every alignment's probability.
func TestNBestTotalLogLikAtLeastBest(t *testing.T) {
	inv, _, _, _ := ambiguousSplitInventory()
	tr := newTranslator(t, inv, uniformModel(), 0)

	ctx, err := tr.NBestInit([]multigram.Symbol{1, 2})
	require.NoError(t, err)

	total := ctx.TotalLogLik()
	assert.True(t, total.AtLeastAsLikely(ctx.BestLogLik()))
}

func TestNBestInitFailsOnUnknownInput(t *testing.T) {
	inv, _ := degenerateIdentityInventory()
	tr := newTranslator(t, inv, uniformModel(), 0)

	_, err := tr.NBestInit([]multigram.Symbol{9})
	assert.ErrorIs(t, err, ErrTranslationFailed)
}
