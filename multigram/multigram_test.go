package multigram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndLen(t *testing.T) {
	m := New(1, 2, 3)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []Symbol{1, 2, 3}, m.Symbols())
}

func TestNewTooLongPanics(t *testing.T) {
	symbols := make([]Symbol, MaxLen+1)
	for i := range symbols {
		symbols[i] = Symbol(i + 1)
	}
	assert.Panics(t, func() { New(symbols...) })
}

func TestMultigramEqualityIsStructural(t *testing.T) {
	a := New(1, 2)
	b := New(1, 2)
	c := New(1, 3)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestJointMultigramHashCombinesBoth(t *testing.T) {
	j := JointMultigram{Left: New(1), Right: New(2)}
	assert.Equal(t, j.Left.Hash()+j.Right.Hash(), j.Hash())
}

func TestInventoryDeterministicIndex(t *testing.T) {
	inv := NewInventory()
	left, right := New(1, 2), New(3)

	idx1 := inv.Index(left, right)
	idx2 := inv.Index(left, right)
	require.Equal(t, idx1, idx2)

	gotLeft, gotRight := inv.Symbol(idx1)
	assert.Equal(t, left, gotLeft)
	assert.Equal(t, right, gotRight)
}

func TestInventoryTestIndexUnseen(t *testing.T) {
	inv := NewInventory()
	assert.Equal(t, VoidIndex, inv.TestIndex(New(9), New(9)))
}

func TestInventoryIndexNeverReused(t *testing.T) {
	inv := NewInventory()
	a := inv.Index(New(1), New(1))
	b := inv.Index(New(2), New(2))
	c := inv.Index(New(1), New(1)) // seen again

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
	assert.Equal(t, 2, inv.Size())
}

func TestInventorySymbolOnVoidPanics(t *testing.T) {
	inv := NewInventory()
	assert.Panics(t, func() { inv.Symbol(VoidIndex) })
}
