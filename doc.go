// Package jseq (lvlath-jseq) is a joint-sequence model toolkit for
// grapheme-to-phoneme style conversion: it represents an alignment between
// two symbol sequences as a concatenation of joint multigrams and scores
// candidate alignments with an n-gram back-off language model.
//
// The toolkit is organized as one package per concern, following the
// layered design below (leaves first):
//
//	logprob/   — numerically stable log-probability arithmetic
//	dag/       — node/edge graph with incoming/outgoing adjacency
//	topo/      — DFS-based topological sort over a dag.Graph
//	multigram/ — fixed-capacity symbol tuples and a content-addressed inventory
//	seqmodel/  — tree-structured n-gram language model with back-off
//	lattice/   — per-pair alignment DAG builder (emerge/suppress/anonymize)
//	accum/     — forward-backward, Viterbi and one-for-all evidence accumulators
//	estimate/  — Kneser-Ney smoothing from accumulated evidence to a fresh model
//	pqueue/    — binary heap with decrease-key, used by the decoder
//	decoder/   — A* single-best and backward-A* N-best translation
//
// Training feeds a stream of (left, right) pairs through lattice, accum and
// estimate in an EM loop; decoding runs decoder against a frozen multigram
// inventory and sequence model. The outer EM loop, corpus I/O, and the
// scripting/embedding layer that drives this package are intentionally left
// to the caller.
package jseq
