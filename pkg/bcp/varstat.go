package bcp

// FSVarStat is the per-variable fixing/setting tag (spec.md §3,
// "VariableStatus (FSVarStat)"). "Set" is locally valid within a subtree
// and is restored on backtrack; "Fixed" is globally valid and is never
// re-set once applied.
type FSVarStat int

const (
	Free FSVarStat = iota
	SetToLower
	SetToUpper
	FixedToLower
	FixedToUpper
	Fixed
)

func (s FSVarStat) String() string {
	switch s {
	case Free:
		return "Free"
	case SetToLower:
		return "SetToLower"
	case SetToUpper:
		return "SetToUpper"
	case FixedToLower:
		return "FixedToLower"
	case FixedToUpper:
		return "FixedToUpper"
	case Fixed:
		return "Fixed"
	default:
		return "Unknown"
	}
}

// IsFixed reports whether the status is one of the globally-fixed kinds.
func (s FSVarStat) IsFixed() bool {
	return s == FixedToLower || s == FixedToUpper || s == Fixed
}

// IsSet reports whether the status is one of the locally-set kinds.
func (s FSVarStat) IsSet() bool {
	return s == SetToLower || s == SetToUpper
}

// AtUpper reports whether the status pins the variable to its upper
// bound (spec.md §4.1, §9).
func (s FSVarStat) AtUpper() bool {
	return s == SetToUpper || s == FixedToUpper
}

// LPVarStat is the per-variable LP basis status (spec.md §3).
type LPVarStat int

const (
	AtLowerBound LPVarStat = iota
	Basic
	AtUpperBound
	NonBasicFree
	Eliminated
	VarStatUnknown
)

func (s LPVarStat) String() string {
	switch s {
	case AtLowerBound:
		return "AtLowerBound"
	case Basic:
		return "Basic"
	case AtUpperBound:
		return "AtUpperBound"
	case NonBasicFree:
		return "NonBasicFree"
	case Eliminated:
		return "Eliminated"
	default:
		return "Unknown"
	}
}

// SlackStat is the per-constraint LP slack status (spec.md §3).
type SlackStat int

const (
	SlackBasic SlackStat = iota
	NonBasicZero
	NonBasicNonZero
	SlackStatUnknown
)

func (s SlackStat) String() string {
	switch s {
	case SlackBasic:
		return "Basic"
	case NonBasicZero:
		return "NonBasicZero"
	case NonBasicNonZero:
		return "NonBasicNonZero"
	default:
		return "Unknown"
	}
}

// VariableStatusSet is the per-node record of FSVarStat for every locally
// active variable (spec.md §3, Subproblem attribute "per-variable
// VariableStatus"). Index i corresponds to position i of the owning
// node's active-variable set.
type VariableStatusSet struct {
	status []FSVarStat
}

// NewVariableStatusSet returns a status set of n Free entries.
func NewVariableStatusSet(n int) *VariableStatusSet {
	return &VariableStatusSet{status: make([]FSVarStat, n)}
}

// Get returns the status at position i.
func (v *VariableStatusSet) Get(i int) FSVarStat { return v.status[i] }

// Set assigns the status at position i, rejecting an attempt to re-set a
// globally fixed variable (spec.md §3 invariant: "a globally fixed
// variable is never re-set").
func (v *VariableStatusSet) Set(i int, s FSVarStat) error {
	if v.status[i].IsFixed() && s != v.status[i] {
		return Newf(KindFsVarStat, "position %d is globally fixed to %s, cannot set to %s", i, v.status[i], s)
	}
	v.status[i] = s
	return nil
}

// Clone returns an independent copy, used when a child Subproblem
// inherits its parent's local VariableStatus (spec.md §3).
func (v *VariableStatusSet) Clone() *VariableStatusSet {
	clone := make([]FSVarStat, len(v.status))
	copy(clone, v.status)
	return &VariableStatusSet{status: clone}
}

// Len returns the number of tracked positions.
func (v *VariableStatusSet) Len() int { return len(v.status) }
