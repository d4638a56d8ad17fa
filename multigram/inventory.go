package multigram

// Index identifies a JointMultigram within an Inventory. VoidIndex (0) is
// reserved: it is returned by TestIndex for an unseen joint multigram, and
// is also used by lattice.Anonymize to stand in for any joint
// multigram not yet in the inventory.
type Index uint32

// VoidIndex is the reserved index meaning "no multigram" / "anonymous".
const VoidIndex Index = 0

// Inventory is a bijective mapping between JointMultigram values and
// Index values in [1, Size()]. Insertion is monotone: once a joint
// multigram is assigned an index, the index never changes, and indices
// are never reused or reassigned even if the toolkit never calls an
// explicit deletion (there is none).
//
// Not safe for concurrent use.
type Inventory struct {
	bySymbol []JointMultigram // bySymbol[0] is the unused void placeholder
	byJmg    map[JointMultigram]Index
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		bySymbol: make([]JointMultigram, 1),
		byJmg:    make(map[JointMultigram]Index),
	}
}

// Index looks up the index of the joint multigram (left, right), inserting
// it with a fresh index if this is the first time it has been seen.
// Complexity: O(1) amortized.
func (inv *Inventory) Index(left, right Multigram) Index {
	jmg := JointMultigram{Left: left, Right: right}
	if idx, ok := inv.byJmg[jmg]; ok {
		return idx
	}
	idx := Index(len(inv.bySymbol))
	inv.bySymbol = append(inv.bySymbol, jmg)
	inv.byJmg[jmg] = idx
	return idx
}

// TestIndex looks up the index of (left, right) without inserting it,
// returning VoidIndex if it has not been seen.
func (inv *Inventory) TestIndex(left, right Multigram) Index {
	jmg := JointMultigram{Left: left, Right: right}
	if idx, ok := inv.byJmg[jmg]; ok {
		return idx
	}
	return VoidIndex
}

// Symbol reverse-looks-up the joint multigram stored at idx. idx must be
// in [1, Size()]; idx == VoidIndex or an out-of-range idx panics, as
// querying the void index or an index never assigned is a caller defect.
func (inv *Inventory) Symbol(idx Index) (left, right Multigram) {
	if idx == VoidIndex || int(idx) >= len(inv.bySymbol) {
		panic("multigram: Symbol called with an unassigned index")
	}
	jmg := inv.bySymbol[idx]
	return jmg.Left, jmg.Right
}

// Size returns the number of distinct joint multigrams inserted so far.
func (inv *Inventory) Size() int { return len(inv.bySymbol) - 1 }
