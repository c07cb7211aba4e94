package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityEqualsImpliesMatches(t *testing.T) {
	a := NewProvide("db", "sqlite", nil, nil)
	b := NewProvide("db", "sqlite", nil, nil)
	assert.True(t, a.Equals(b), "expected equal capabilities to be equal")
	assert.True(t, a.Matches(b), "equals must imply matches")
	assert.Equal(t, a.Hash(), b.Hash(), "equal capabilities must hash the same")
}

func TestCapabilityWildcardMatches(t *testing.T) {
	any := NewDepends("db", Wildcard)
	sqlite := NewProvide("db", "sqlite", nil, nil)

	assert.False(t, any.Equals(sqlite), "wildcard dependency should not be bit-for-bit equal to a concrete provider")
	assert.True(t, any.Matches(sqlite), "wildcard dependency should match a concrete provider of the same category")

	postgres := NewProvide("db", "postgres", nil, nil)
	assert.False(t, sqlite.Matches(postgres), "two concrete, distinct subtypes must not match")
}

func TestCapabilityLoadUnloadDefaults(t *testing.T) {
	noLoad := NewProvide("x", "y", nil, nil)
	assert.False(t, noLoad.Load(nil, noLoad, nil), "a PROVIDE with no load func must fail to load")
	assert.True(t, noLoad.Unload(nil, noLoad, nil), "a PROVIDE with no unload func must succeed unloading")
}
