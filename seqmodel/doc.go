// Package seqmodel implements the n-gram back-off sequence model: a
// tree-structured history lookup over joint-multigram tokens, queried for
// P(token | history) with Kneser-Ney-style back-off.
//
// The model is stored as two contiguous, append-only arrays built once by
// Build and never mutated afterward: a node array (one entry per distinct
// history, in parent-before-children order) and a prediction array (the
// per-history word/score pairs). Each node's children occupy a contiguous
// range of the node array, sorted by token, enabling binary-search lookup
// instead of a map per node — the same contiguous-range-plus-binary-search
// idea used for word/state transitions in kho-fslm's Sorted type, reworked
// here into an explicit trie of Token histories rather than a flat
// state-transition table.
//
// History is identified by HistoryID, an index into the node array. Root
// is the empty-context history; CulDeSac is a sentinel absorbing history
// with no backing node, used as the target of a terminal transition.
package seqmodel
