// Package accum implements the three evidence accumulators that walk a
// lattice.Lattice and credit expected counts into a shared Store: a
// forward-backward accumulator (posterior mass per edge), a Viterbi
// accumulator (single best path), and a one-for-all accumulator (uniform
// flat-start counting).
//
// All three write into the same (history, token) -> accumulated log-weight
// bucket; the estimator (package estimate) later turns that bucket into a
// fresh sequence model. The Viterbi accumulator takes its idea from
// akualab-graph's Viterbi decoder, but instead of that decoder's shared
// linked backtrace records it keeps one best incoming lattice.Lattice
// edge per node and walks those edges back from the final node.
package accum
