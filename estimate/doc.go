// Package estimate implements Kneser-Ney discounting and interpolation:
// given an evidence store's items (via an Estimator) and the sequence
// model that supplies history topology, it groups evidence by history,
// applies absolute discounting with upward credit to the shorter history,
// computes interpolated probabilities bottom-up, and emits the result into
// a fresh seqmodel.Model.
//
// Discounting and interpolation are carried out in plain probability
// space (not log-probability), since Kneser-Ney's subtraction and
// threshold comparisons only have their usual meaning there; logprob.LogProb
// is used only at the boundary, converting evidence in and probabilities
// out.
package estimate
