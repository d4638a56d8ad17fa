package pqueue

import (
	"container/heap"

	"github.com/katalvlaran/lvlath-jseq/logprob"
)

// Entry is one queued item: a state, its priority score, and an opaque
// payload the caller attaches (the decoder uses this for a trace
// back-pointer).
type Entry[S any] struct {
	State   S
	Score   logprob.LogProb
	Payload any
}

// innerHeap is the container/heap-facing slice; it never escapes Queue.
type innerHeap[S any] []*Entry[S]

func (h innerHeap[S]) Len() int            { return len(h) }
func (h innerHeap[S]) Less(i, j int) bool  { return h[i].Score.MoreLikely(h[j].Score) }
func (h innerHeap[S]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *innerHeap[S]) Push(x interface{}) { *h = append(*h, x.(*Entry[S])) }
func (h *innerHeap[S]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]

	return item
}

// Queue is a min-heap of Entry[S], ordered by ascending LogProb score
// (i.e. descending likelihood). The zero Queue is not usable; construct
// one with NewQueue.
type Queue[S any] struct {
	h innerHeap[S]
}

// NewQueue returns an empty Queue.
func NewQueue[S any]() *Queue[S] {
	q := &Queue[S]{}
	heap.Init(&q.h)

	return q
}

// Len returns the number of entries currently queued.
func (q *Queue[S]) Len() int { return q.h.Len() }

// Push adds a new candidate. Per the lazy-decrease-key discipline, pushing
// a cheaper entry for a state already queued is the intended way to
// "relax" it — the stale, more expensive entry is simply skipped when it
// is eventually popped (the caller's closed set recognizes this).
func (q *Queue[S]) Push(state S, score logprob.LogProb, payload any) {
	heap.Push(&q.h, &Entry[S]{State: state, Score: score, Payload: payload})
}

// Pop removes and returns the most likely (smallest-score) entry. Pop
// panics if the queue is empty; callers must check Len first.
func (q *Queue[S]) Pop() *Entry[S] {
	return heap.Pop(&q.h).(*Entry[S])
}
