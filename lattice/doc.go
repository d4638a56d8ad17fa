// Package lattice builds the per-training-pair alignment DAG that the
// estimation engine accumulates evidence over and the estimator learns
// from: given a (left, right) training pair, a set of size templates, and
// an emergence mode, it explores every reachable (left-position,
// right-position, history) triple via DFS and records it as a dag.Graph
// node, with edges carrying the sequence-model token consumed and (after
// a synchronization pass) its log-probability under the current model.
//
// A Lattice is long-lived across EM iterations: its graph shape is fixed
// once built, but Update re-derives the node->history and edge->log-prob
// maps from a freshly estimated sequence model without re-running the DFS.
package lattice
