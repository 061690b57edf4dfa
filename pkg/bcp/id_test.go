package bcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdString(t *testing.T) {
	id := NewId(42, 3)
	assert.Equal(t, "42.0.3", id.String())
}

func TestIdMapInsertLookupRemove(t *testing.T) {
	a := assert.New(t)
	m := NewIdMap[string]()

	id := NewId(1, 0)
	_, ok := m.Lookup(id)
	a.False(ok)

	m.Insert(id, "root")
	v, ok := m.Lookup(id)
	a.True(ok)
	a.Equal("root", v)
	a.Equal(1, m.Len())

	m.Insert(id, "replaced")
	v, _ = m.Lookup(id)
	a.Equal("replaced", v)
	a.Equal(1, m.Len())

	m.Remove(id)
	_, ok = m.Lookup(id)
	a.False(ok)
	a.Equal(0, m.Len())
}
