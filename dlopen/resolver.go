package dlopen

import "errors"

// ErrSymbolNotFound is returned by Handle.Lookup when the named symbol is
// absent from the opened shared object.
var ErrSymbolNotFound = errors.New("dlopen: symbol not found")

// Handle is an opened shared object, the Go stand-in for the dlopen(3)
// handle spec.md §6's "symbol/code loader" facility returns.
type Handle interface {
	// Lookup resolves symbolName to a Constructor, or ErrSymbolNotFound.
	Lookup(symbolName string) (Constructor, error)
	// Close releases the handle, the counterpart to dlclose(3).
	Close() error
}
