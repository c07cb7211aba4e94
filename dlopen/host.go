package dlopen

import "sync"

// Constructor is the shape of a `<name>_plugin_create` symbol: it builds a
// plugin instance or returns nil on failure.
type Constructor func() interface{}

// host stands in for dlsym(RTLD_DEFAULT, name): Go binaries cannot look up
// arbitrary symbols in their own image, so statically linked plugins
// register their constructor here at init() time instead. This is the
// idiomatic Go analogue of the host-image lookup spec.md §4.1 step 2
// describes (cf. database/sql.Register, image.RegisterFormat).
var host = struct {
	mu sync.RWMutex
	m  map[string]Constructor
}{m: map[string]Constructor{}}

// RegisterHostSymbol makes a constructor available under symbolName as if
// it had been found in the host image by dlsym. Intended to be called from
// a statically linked plugin's init().
func RegisterHostSymbol(symbolName string, ctor Constructor) {
	host.mu.Lock()
	defer host.mu.Unlock()
	host.m[symbolName] = ctor
}

// LookupHostSymbol returns the constructor registered under symbolName, if
// any.
func LookupHostSymbol(symbolName string) (Constructor, bool) {
	host.mu.RLock()
	defer host.mu.RUnlock()
	ctor, ok := host.m[symbolName]
	return ctor, ok
}

// ResetHostSymbols clears the registry. Exposed for tests.
func ResetHostSymbols() {
	host.mu.Lock()
	defer host.mu.Unlock()
	host.m = map[string]Constructor{}
}
