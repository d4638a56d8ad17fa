// Package logprob implements numerically stable arithmetic over
// negated-natural-log probabilities.
//
// A Prob is a plain probability in [0, +inf). A LogProb stores -ln(p): the
// smaller the LogProb, the more likely the event it scores, which inverts
// the usual ordering on raw floats. This convention (also used by SRILM-style
// back-off language models) keeps every arithmetic operator in this package
// expressed as addition, so combining independent evidence is always a sum
// rather than a product, and so "more likely" paths accumulate smaller
// totals and can be found with a plain min-heap.
package logprob
