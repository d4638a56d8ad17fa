// Package pqueue provides a generic min-heap priority queue ordered by
// logprob.LogProb score (smaller score, i.e. more likely, wins), following
// the lazy-decrease-key discipline used by dijkstra.Dijkstra's nodePQ: a
// cheaper state is pushed again rather than relocated in place, and a
// caller-maintained closed set (not the heap itself) is responsible for
// recognizing and skipping now-stale entries on pop.
package pqueue
