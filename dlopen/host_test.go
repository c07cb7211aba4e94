package dlopen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostSymbolRoundTrip(t *testing.T) {
	t.Cleanup(ResetHostSymbols)

	_, ok := LookupHostSymbol("missing_plugin_create")
	assert.False(t, ok, "expected missing symbol to be absent")

	called := false
	RegisterHostSymbol("foo_plugin_create", func() interface{} {
		called = true
		return struct{}{}
	})

	ctor, ok := LookupHostSymbol("foo_plugin_create")
	require.True(t, ok, "expected registered symbol to be found")
	ctor()
	assert.True(t, called, "expected constructor to have been invoked")
}
