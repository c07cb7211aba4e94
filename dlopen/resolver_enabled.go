//go:build goplugin && cgo

package dlopen

import "plugin"

// OpenFile opens the shared object at path with Go's stdlib plugin loader,
// which (like dlopen with RTLD_LAZY) resolves symbols lazily and caches the
// handle for the lifetime of the process. Mirrors the teacher's
// goplugin.GetHandler, which does the same plugin.Open/Lookup dance for a
// single HTTP handler symbol.
func OpenFile(path string) (Handle, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return &pluginHandle{p}, nil
}

type pluginHandle struct {
	p *plugin.Plugin
}

func (h *pluginHandle) Lookup(symbolName string) (Constructor, error) {
	sym, err := h.p.Lookup(symbolName)
	if err != nil {
		return nil, ErrSymbolNotFound
	}
	ctor, ok := sym.(func() interface{})
	if !ok {
		return nil, ErrSymbolNotFound
	}
	return ctor, nil
}

// Close is a no-op: the stdlib plugin package never unmaps a loaded
// shared object, so there is nothing to release here. Handles are still
// threaded through the loader's pluginEntry.handle so leak-detection mode (spec.md
// §4.5 step 2) has something to retain.
func (h *pluginHandle) Close() error {
	return nil
}
