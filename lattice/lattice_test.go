package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-jseq/multigram"
	"github.com/katalvlaran/lvlath-jseq/seqmodel"
)

// uniformModel returns a sequence model with no explicit predictions: every
// node's back-off weight defaults to logprob.Certain, so Probability is 1
// for any token at any history, and Advanced always stays at Root (no
// children were ever trained). This is enough to exercise the lattice
// builder's graph-shape logic independent of sequence-model nuance.
func uniformModel() *seqmodel.Model {
	return seqmodel.Build(nil)
}

func TestBuildDegenerateIdentity(t *testing.T) {
	inv := multigram.NewInventory()
	lm := uniformModel()

	b := NewBuilder()
	b.AddSizeTemplate(1, 1)
	b.SetSequenceModel(inv, lm)

	left := []multigram.Symbol{1}
	right := []multigram.Symbol{1}

	lat := b.Create(left, right)
	require.NoError(t, b.Build(lat, left, right))

	assert.Equal(t, 1, inv.Size())
	// initial, the (1,1) node, and the shared final sink.
	assert.Equal(t, 3, lat.Graph.NumNodes())
	assert.Equal(t, 2, lat.Graph.NumEdges())
	assert.Equal(t, lat.Initial, lat.Topo[0])
	assert.Equal(t, lat.Final, lat.Topo[len(lat.Topo)-1])
}

func TestBuildAmbiguousSplit(t *testing.T) {
	inv := multigram.NewInventory()
	lm := uniformModel()

	b := NewBuilder()
	b.AddSizeTemplate(1, 1)
	b.AddSizeTemplate(2, 2)
	b.SetSequenceModel(inv, lm)

	left := []multigram.Symbol{1, 2}
	right := []multigram.Symbol{3, 4}

	lat := b.Create(left, right)
	require.NoError(t, b.Build(lat, left, right))

	// 3 internal nodes + the shared final sink.
	assert.Equal(t, 4, lat.Graph.NumNodes())
	// two single-step edges, one diagonal, one terminator.
	assert.Equal(t, 4, lat.Graph.NumEdges())
}

func TestBuildSuppressUnreachable(t *testing.T) {
	inv := multigram.NewInventory()
	lm := uniformModel()

	b := NewBuilder()
	b.AddSizeTemplate(1, 1)
	b.SetEmergenceMode(Suppress)
	b.SetSequenceModel(inv, lm)

	left := []multigram.Symbol{1}
	right := []multigram.Symbol{1}

	lat := b.Create(left, right)
	err := b.Build(lat, left, right)
	assert.ErrorIs(t, err, ErrFinalUnreachable)
}

func TestUpdateResyncsAfterNewModel(t *testing.T) {
	inv := multigram.NewInventory()
	lm := uniformModel()

	b := NewBuilder()
	b.AddSizeTemplate(1, 1)
	b.SetSequenceModel(inv, lm)

	left := []multigram.Symbol{1}
	right := []multigram.Symbol{1}
	lat := b.Create(left, right)
	require.NoError(t, b.Build(lat, left, right))

	freshModel := uniformModel()
	b.SetSequenceModel(inv, freshModel)
	require.NoError(t, b.Update(lat))

	assert.Equal(t, 3, lat.Graph.NumNodes())
}
