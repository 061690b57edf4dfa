package bcp

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// ParamTable is a hash of string→string parameters with typed lookups, per
// spec.md §3/§6. The on-disk grammar is a contractual external interface
// (spec.md §6): lines beginning with '#' are comments, empty lines are
// skipped, every other line holds one whitespace-separated key and value.
// Because the grammar is named by the spec rather than left to the
// implementer, it is parsed by hand against bufio.Scanner instead of an
// ecosystem config-file library (see DESIGN.md).
type ParamTable struct {
	values map[string]string
}

// NewParamTable returns an empty parameter table.
func NewParamTable() *ParamTable {
	return &ParamTable{values: make(map[string]string)}
}

// Insert sets key to value, overwriting any previous value. Round-trips
// with GetParameter per spec.md §8's "Parameter table" law.
func (p *ParamTable) Insert(key, value string) {
	p.values[key] = value
}

// GetParameter returns the raw string value for key and whether it was
// present.
func (p *ParamTable) GetParameter(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Load parses r according to the grammar described above, inserting every
// key/value pair found. Malformed lines (a key with no value) are
// reported as a *Error of KindParamaster carrying the 1-based line number.
func (p *ParamTable) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return Newf(KindParamaster, "line %d: expected \"key value\", got %q", lineNo, line)
		}
		key := fields[0]
		value := strings.Join(fields[1:], " ")
		p.Insert(key, value)
	}
	if err := scanner.Err(); err != nil {
		return Wrap(KindParamaster, err, "reading parameter table")
	}
	return nil
}

// Int returns key parsed as an integer. ok is false if the key is absent
// or not a valid integer.
func (p *ParamTable) Int(key string) (int, bool) {
	v, ok := p.values[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float returns key parsed as a float64.
func (p *ParamTable) Float(key string) (float64, bool) {
	v, ok := p.values[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Bool returns key parsed as a bool (accepting true/false/1/0/yes/no,
// case-insensitively).
func (p *ParamTable) Bool(key string) (bool, bool) {
	v, ok := p.values[key]
	if !ok {
		return false, false
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Enum validates that key's value is one of allowed and returns it;
// otherwise returns an error naming the allowed set, per spec.md §3
// "typed queries validate range or enumerate feasible settings and fail
// loudly on violation".
func (p *ParamTable) Enum(key string, allowed ...string) (string, error) {
	v, ok := p.values[key]
	if !ok {
		return "", Newf(KindIllegalParameter, "missing parameter %q", key)
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", Newf(KindIllegalParameter, "parameter %q: value %q not in %v", key, v, allowed)
}

// Duration parses a key in the "[[H:]M:]S" form used by MaxCpuTime and
// MaxCowTime (spec.md §6).
func (p *ParamTable) Duration(key string) (time.Duration, bool) {
	v, ok := p.values[key]
	if !ok {
		return 0, false
	}
	d, err := ParseHMS(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

// ParseHMS parses a duration in "[[H:]M:]S" form, e.g. "90" (90s), "2:30"
// (2m30s), "1:02:03" (1h2m3s).
func ParseHMS(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 || len(parts) == 0 {
		return 0, Newf(KindIllegalParameter, "malformed duration %q", s)
	}
	var h, m, sec float64
	var err error
	switch len(parts) {
	case 1:
		sec, err = strconv.ParseFloat(parts[0], 64)
	case 2:
		m, err = strconv.ParseFloat(parts[0], 64)
		if err == nil {
			sec, err = strconv.ParseFloat(parts[1], 64)
		}
	case 3:
		h, err = strconv.ParseFloat(parts[0], 64)
		if err == nil {
			m, err = strconv.ParseFloat(parts[1], 64)
		}
		if err == nil {
			sec, err = strconv.ParseFloat(parts[2], 64)
		}
	}
	if err != nil {
		return 0, Newf(KindIllegalParameter, "malformed duration %q: %v", s, err)
	}
	total := h*3600 + m*60 + sec
	return time.Duration(total * float64(time.Second)), nil
}

// Known parameter table keys, per spec.md §6. Their default values are
// set in defaultMasterParams (master.go).
const (
	ParamEnumerationStrategy       = "EnumerationStrategy"
	ParamBranchingStrategy         = "BranchingStrategy"
	ParamGuarantee                 = "Guarantee"
	ParamMaxLevel                  = "MaxLevel"
	ParamMaxNSub                   = "MaxNSub"
	ParamMaxCpuTime                = "MaxCpuTime"
	ParamMaxCowTime                = "MaxCowTime"
	ParamObjInteger                = "ObjInteger"
	ParamTailOffNLps               = "TailOffNLps"
	ParamTailOffPercent            = "TailOffPercent"
	ParamOutputLevel               = "OutputLevel"
	ParamLogLevel                  = "LogLevel"
	ParamPricingFrequency          = "PricingFrequency"
	ParamSkipFactor                = "SkipFactor"
	ParamSkippingMode              = "SkippingMode"
	ParamMaxConAdd                 = "MaxConAdd"
	ParamMaxConBuffered            = "MaxConBuffered"
	ParamMaxVarAdd                 = "MaxVarAdd"
	ParamMaxVarBuffered            = "MaxVarBuffered"
	ParamMaxIterations              = "MaxIterations"
	ParamConstraintEliminationMode = "ConstraintEliminationMode"
	ParamVariableEliminationMode   = "VariableEliminationMode"
	ParamDefaultLpSolver           = "DefaultLpSolver"
	ParamNewRootReOptimize         = "NewRootReOptimize"
)
