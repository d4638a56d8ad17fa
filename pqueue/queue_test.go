package pqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-jseq/logprob"
)

func TestQueuePopsInScoreOrder(t *testing.T) {
	q := NewQueue[string]()
	q.Push("c", logprob.FromProb(0.1), nil)
	q.Push("a", logprob.FromProb(0.9), nil)
	q.Push("b", logprob.FromProb(0.5), nil)

	require.Equal(t, 3, q.Len())

	got := make([]string, 0, 3)
	for q.Len() > 0 {
		got = append(got, q.Pop().State)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestQueueLazyDecreaseKeyKeepsStaleEntry(t *testing.T) {
	q := NewQueue[int]()
	q.Push(1, logprob.FromProb(0.2), "expensive")
	q.Push(1, logprob.FromProb(0.9), "cheap")

	require.Equal(t, 2, q.Len())
	first := q.Pop()
	assert.Equal(t, 1, first.State)
	assert.Equal(t, "cheap", first.Payload)

	second := q.Pop()
	assert.Equal(t, 1, second.State)
	assert.Equal(t, "expensive", second.Payload)
}

func TestQueuePayloadRoundTrips(t *testing.T) {
	type trace struct{ n int }
	q := NewQueue[string]()
	q.Push("x", logprob.Certain, &trace{n: 7})

	got := q.Pop()
	tr, ok := got.Payload.(*trace)
	require.True(t, ok)
	assert.Equal(t, 7, tr.n)
}
