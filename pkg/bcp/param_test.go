package bcp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParamTableInsertGetRoundTrip exercises the spec.md §8 round-trip law:
// insert(k, v); getParameter(k) = v.
func TestParamTableInsertGetRoundTrip(t *testing.T) {
	a := assert.New(t)
	p := NewParamTable()
	p.Insert(ParamGuarantee, "5.0")

	v, ok := p.GetParameter(ParamGuarantee)
	a.True(ok)
	a.Equal("5.0", v)

	_, ok = p.GetParameter("Unset")
	a.False(ok)
}

func TestParamTableLoadParsesGrammar(t *testing.T) {
	a := assert.New(t)
	p := NewParamTable()
	input := `# a comment

MaxLevel 100
ObjInteger true
DefaultLpSolver gurobi simplex
`
	a.NoError(p.Load(strings.NewReader(input)))

	n, ok := p.Int(ParamMaxLevel)
	a.True(ok)
	a.Equal(100, n)

	b, ok := p.Bool(ParamObjInteger)
	a.True(ok)
	a.True(b)

	v, ok := p.GetParameter(ParamDefaultLpSolver)
	a.True(ok)
	a.Equal("gurobi simplex", v, "value is everything after the key, whitespace-joined")
}

func TestParamTableLoadRejectsKeyWithNoValue(t *testing.T) {
	p := NewParamTable()
	err := p.Load(strings.NewReader("MaxLevel\n"))
	assert.Error(t, err)
}

func TestParamTableFloatAndEnum(t *testing.T) {
	a := assert.New(t)
	p := NewParamTable()
	p.Insert(ParamTailOffPercent, "1.5")
	p.Insert(ParamSkippingMode, "Iteration")

	f, ok := p.Float(ParamTailOffPercent)
	a.True(ok)
	a.Equal(1.5, f)

	v, err := p.Enum(ParamSkippingMode, "Iteration", "Level")
	a.NoError(err)
	a.Equal("Iteration", v)

	_, err = p.Enum(ParamSkippingMode, "Level")
	a.Error(err)

	_, err = p.Enum("Missing", "a")
	a.Error(err)
}

func TestParseHMS(t *testing.T) {
	a := assert.New(t)

	d, err := ParseHMS("90")
	a.NoError(err)
	a.Equal("1m30s", d.String())

	d, err = ParseHMS("2:30")
	a.NoError(err)
	a.Equal("2m30s", d.String())

	d, err = ParseHMS("1:02:03")
	a.NoError(err)
	a.Equal("1h2m3s", d.String())

	_, err = ParseHMS("1:2:3:4")
	a.Error(err)

	_, err = ParseHMS("abc")
	a.Error(err)
}
