package logprob

import "math"

// Prob is a plain probability in [0, +inf). Toolkit code rarely computes in
// this domain directly; it exists so callers can convert at the boundary.
type Prob float64

// LogProb is -ln(p) for some probability p: a score where smaller means more
// likely. Zero means certain; Impossible is a large finite sentinel rather
// than +Inf so that arithmetic on it never produces NaN.
type LogProb float64

const (
	// Certain is the score of a probability-1 event.
	Certain LogProb = 0
	// Impossible is the score assigned to a probability-0 event. It is a
	// large finite sentinel (not +Inf) so Impossible+Impossible and similar
	// combinations stay well-defined instead of producing NaN.
	Impossible LogProb = 7e10
	// Invalid marks a LogProb that was never assigned a meaningful value.
	// It is the most negative finite value representable, so that any
	// comparison against a real score immediately shows it is bogus.
	Invalid LogProb = LogProb(-math.MaxFloat64)
)

// epsLog is the stability cutoff used by Add and Sub: once two scores
// differ by at least this much, the contribution of the less likely operand
// underflows log1p to zero anyway, so it is skipped rather than computed.
// -log(machine epsilon) bounds the point past which exp(-d) no longer moves
// log1p's result at float64 precision.
var epsLog = LogProb(-math.Log(math.Nextafter(1, 2) - 1))

// FromProb converts a plain probability to its LogProb score.
// p <= 0 maps to Impossible rather than +Inf.
func FromProb(p Prob) LogProb {
	if p <= 0 {
		return Impossible
	}
	return LogProb(-math.Log(float64(p)))
}

// ToProb converts a LogProb score back to a plain probability.
func (s LogProb) ToProb() Prob {
	return Prob(math.Exp(-float64(s)))
}

// Add combines two independent events' probabilities: Add computes the
// LogProb of p(a) + p(b) via the numerically stable log-sum-exp identity.
// It never evaluates exp of a large positive argument: past epsLog of
// separation it simply returns the smaller (more likely) operand.
func (a LogProb) Add(b LogProb) LogProb {
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	diff := hi - lo
	if diff >= epsLog {
		return lo
	}
	return lo - LogProb(math.Log1p(math.Exp(float64(-diff))))
}

// Mul combines two independent events' probabilities multiplicatively:
// Mul computes the LogProb of p(a) * p(b), which in log space is a sum.
func (a LogProb) Mul(b LogProb) LogProb {
	return a + b
}

// Div computes the LogProb of p(a) / p(b).
func (a LogProb) Div(b LogProb) LogProb {
	return a - b
}

// Sub computes the LogProb of p(a) - p(b). a must be no larger than b (i.e.
// a must be at least as likely as b); callers violating this contract get a
// panic rather than a silently wrong (negative-probability) result, per the
// "defect" error class of the toolkit's error taxonomy.
func (a LogProb) Sub(b LogProb) LogProb {
	if a > b {
		panic("logprob: Sub requires the minuend to be at least as likely as the subtrahend")
	}
	diff := b - a
	if diff >= epsLog {
		return a
	}
	return a - LogProb(math.Log1p(-math.Exp(float64(-diff))))
}

// Pow scales the score by e, i.e. computes the LogProb of p(a)^e.
func (a LogProb) Pow(e float64) LogProb {
	return LogProb(float64(a) * e)
}

// Complement computes the LogProb of 1 - p(a).
func (a LogProb) Complement() LogProb {
	return Certain.Sub(a)
}

// MoreLikely reports whether a scores a strictly more likely event than b,
// i.e. whether a's probability is strictly greater than b's. Comparison on
// LogProb is reversed relative to comparison on the raw float64 value.
func (a LogProb) MoreLikely(b LogProb) bool {
	return a < b
}

// AtLeastAsLikely reports whether a's probability is >= b's.
func (a LogProb) AtLeastAsLikely(b LogProb) bool {
	return a <= b
}

// ulpOrdered maps a float64's bit pattern to a monotonically ordered int64:
// equal floats map to equal ints, and the ordering on the ints matches the
// ordering on the floats. This is the standard two's-complement remap used
// to make ULP distance a plain integer subtraction.
func ulpOrdered(f float64) int64 {
	bits := int64(math.Float64bits(f))
	if bits < 0 {
		return math.MinInt64 - bits
	}
	return bits
}

// ULPDiff returns the number of representable float64 values between a and
// b (their ULP distance), as an absolute, unsigned count.
func ULPDiff(a, b float64) uint64 {
	d := ulpOrdered(a) - ulpOrdered(b)
	if d < 0 {
		d = -d
	}
	return uint64(d)
}

// AlmostEqual reports whether a and b are within tolerance ULPs of each
// other. It is the primitive behind every "within N ULPs" invariant check
// in this toolkit's test suites.
func AlmostEqual(a, b float64, tolerance uint64) bool {
	return ULPDiff(a, b) <= tolerance
}
