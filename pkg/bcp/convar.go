package bcp

import "math"

// PosInfinity / NegInfinity are the designated bound sentinels (spec.md
// §3, Variable: "designated +∞/−∞ sentinel").
var (
	PosInfinity = math.Inf(1)
	NegInfinity = math.Inf(-1)
)

// VarType is the kind of a problem variable (spec.md §3).
type VarType int

const (
	Continuous VarType = iota
	Integer
	Binary
)

// poolItem is the capability every pool-managed object (Constraint or
// Variable) must satisfy, mirroring the small trait the design notes
// (spec.md §9) recommend in place of a polymorphic root class: a
// coefficient function against the complementary space, plus the
// identity/ranking hooks NonDupl pools and separation need.
//
// Constraint.CoeffOf(v) and Variable.CoeffOf(c) are the two concrete
// instantiations used by LpSub when materializing rows/columns for
// items that were not both known when the other was constructed
// (spec.md §3, "virtual capability to compute a coefficient").
type poolItem interface {
	// HashKey returns a deterministic hash used by NonDupl pools to find
	// duplicate-candidate buckets before falling back to Equal.
	HashKey() uint64
	// Equal reports whether this item is semantically identical to other,
	// used by NonDupl pools to suppress duplicate insertion.
	Equal(other poolItem) bool
	// Rank is the default separation ranking score; higher ranks sort
	// first when a Pool.Best call has no caller-supplied Ranker.
	Rank() float64
}

// CoefficientFunc computes the coefficient a variable has in a constraint
// (or vice versa) for variables/constraints not known when the other was
// constructed — spec.md §3's "virtual capability to compute a coefficient
// for any given variable/constraint". Implementations must be
// deterministic (spec.md §3 invariant).
type CoefficientFunc func(key any) float64

// Constraint is an immutable description of a linear inequality or
// equation over a problem-defined variable space (spec.md §3). Sense and
// dimensionality are fixed for the constraint's lifetime; only the
// Dynamic/Local/Liftable flags and Active status are mutable bookkeeping.
type Constraint struct {
	Sense Csense
	Rhs   float64

	Dynamic  bool
	Local    bool
	Liftable bool

	active bool

	coeffFn CoefficientFunc
	hashKey uint64
	rank    float64
	rhsFn   func() float64
}

// NewConstraint returns an active Constraint with the given sense, rhs,
// and coefficient function. hashKey should be a deterministic hash of the
// constraint's defining data, used only by NonDupl pools.
func NewConstraint(sense Csense, rhs float64, coeffFn CoefficientFunc, hashKey uint64) *Constraint {
	return &Constraint{
		Sense:   sense,
		Rhs:     rhs,
		active:  true,
		coeffFn: coeffFn,
		hashKey: hashKey,
	}
}

// CoeffOf computes this constraint's coefficient for the variable
// identified by key, via the constraint's coefficient function.
func (c *Constraint) CoeffOf(key any) float64 {
	if c.coeffFn == nil {
		return 0
	}
	return c.coeffFn(key)
}

// Active reports whether the constraint is currently marked active.
func (c *Constraint) Active() bool { return c.active }

// SetActive updates the active flag.
func (c *Constraint) SetActive(v bool) { c.active = v }

// HashKey implements poolItem.
func (c *Constraint) HashKey() uint64 { return c.hashKey }

// Equal implements poolItem, comparing by sense, rhs, and hash key only.
// Coefficient functions are not compared (they cannot be compared for
// equality in general), so two Constraints with matching sense, rhs and
// hash key are Equal whatever their coefficient functions.
func (c *Constraint) Equal(other poolItem) bool {
	o, ok := other.(*Constraint)
	if !ok {
		return false
	}
	return c.Sense == o.Sense && c.Rhs == o.Rhs && c.hashKey == o.hashKey
}

// Rank implements poolItem; by default ranks by |rhs|, overridable via
// SetRank for problem-specific separators that compute a sharper measure.
func (c *Constraint) Rank() float64 {
	if c.rank != 0 {
		return c.rank
	}
	return math.Abs(c.Rhs)
}

// SetRank overrides the default separation rank.
func (c *Constraint) SetRank(r float64) { c.rank = r }

// Violation computes how much the constraint is violated by activity
// (the row's Activity(x) at the current point): positive means violated.
func (c *Constraint) Violation(activity float64) float64 {
	switch c.Sense {
	case Less:
		return activity - c.Rhs
	case Greater:
		return c.Rhs - activity
	default:
		return math.Abs(activity - c.Rhs)
	}
}

// Variable is an immutable description of a problem variable (spec.md
// §3). Type and the originally-constructed bounds never change; only
// VariableStatus further narrows the *effective* bounds seen by LpSub.
type Variable struct {
	Obj  float64
	Lb   float64
	Ub   float64
	Type VarType

	coeffFn CoefficientFunc
	hashKey uint64
	rank    float64
}

// NewVariable returns a Variable with the given objective coefficient,
// bounds, type, and coefficient function.
func NewVariable(obj, lb, ub float64, typ VarType, coeffFn CoefficientFunc, hashKey uint64) *Variable {
	return &Variable{Obj: obj, Lb: lb, Ub: ub, Type: typ, coeffFn: coeffFn, hashKey: hashKey}
}

// CoeffOf computes this variable's coefficient in the constraint
// identified by key.
func (v *Variable) CoeffOf(key any) float64 {
	if v.coeffFn == nil {
		return 0
	}
	return v.coeffFn(key)
}

// HashKey implements poolItem.
func (v *Variable) HashKey() uint64 { return v.hashKey }

// Equal implements poolItem.
func (v *Variable) Equal(other poolItem) bool {
	o, ok := other.(*Variable)
	if !ok {
		return false
	}
	return v.Type == o.Type && v.Lb == o.Lb && v.Ub == o.Ub && v.hashKey == o.hashKey
}

// Rank implements poolItem; default ranks by |reduced cost| proxy via the
// objective coefficient, overridable for pricer-specific ranking.
func (v *Variable) Rank() float64 {
	if v.rank != 0 {
		return v.rank
	}
	return math.Abs(v.Obj)
}

// SetRank overrides the default pricing rank.
func (v *Variable) SetRank(r float64) { v.rank = r }

// IsIntegral reports whether the variable's type requires an integer
// value (Integer or Binary).
func (v *Variable) IsIntegral() bool { return v.Type == Integer || v.Type == Binary }
