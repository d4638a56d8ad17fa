package multigram

// Symbol is an alphabet symbol. Zero is reserved as the empty/terminator
// value and is never a real symbol.
type Symbol uint16

// MaxLen is the largest number of symbols a Multigram can hold. This
// toolkit fixes the wider of the two commonly documented build widths
// since Go has no per-build symbol-width selection — see DESIGN.md.
const MaxLen = 8

// Multigram is an ordered tuple of up to MaxLen symbols. Trailing zero
// symbols denote unused slots. Being a fixed-size array, Multigram is
// directly comparable and hashable as a Go map key, which is how
// Inventory implements content-addressing.
type Multigram [MaxLen]Symbol

// New builds a Multigram from the given symbols, which must number at
// most MaxLen and must not themselves be zero (zero is reserved).
// Trailing slots are left as zero (unused).
func New(symbols ...Symbol) Multigram {
	if len(symbols) > MaxLen {
		panic("multigram: too many symbols for a single multigram")
	}
	var m Multigram
	for i, s := range symbols {
		if s == 0 {
			panic("multigram: symbol 0 is reserved and cannot appear in a multigram")
		}
		m[i] = s
	}
	return m
}

// Len returns the number of leading non-zero symbols.
func (m Multigram) Len() int {
	n := 0
	for _, s := range m {
		if s == 0 {
			break
		}
		n++
	}
	return n
}

// Symbols returns the multigram's non-zero prefix as a freshly allocated
// slice.
func (m Multigram) Symbols() []Symbol {
	n := m.Len()
	out := make([]Symbol, n)
	copy(out, m[:n])
	return out
}

// hashShift is the small multiplicative shift used to combine a
// multigram's symbols into a single hash value.
const hashShift = 131

// Hash returns a polynomial hash of m's symbols. Go's built-in map
// equality on the fixed-size Multigram array is what Inventory actually
// relies on for correctness; Hash is exposed for callers (and tests) that
// want the same combining rule.
func (m Multigram) Hash() uint64 {
	var h uint64
	for _, s := range m {
		h = h*hashShift + uint64(s)
	}
	return h
}

// JointMultigram is a pair of source/target substrings treated as one
// atomic alignment unit.
type JointMultigram struct {
	Left, Right Multigram
}

// Hash combines the hashes of Left and Right.
func (j JointMultigram) Hash() uint64 {
	return j.Left.Hash() + j.Right.Hash()
}
