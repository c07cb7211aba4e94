package loader

import (
	"errors"
	"strings"

	"github.com/alerm-sml/strongswan/dlopen"
	"github.com/alerm-sml/strongswan/integrity"
)

// ErrConstructorNotFound is returned when neither the host image nor the
// given file (if any) exports "<name>_plugin_create".
var ErrConstructorNotFound = errors.New("loader: plugin constructor not found")

// ErrConstructorFailed is returned when dlopen, integrity checking, or the
// constructor itself failed.
var ErrConstructorFailed = errors.New("loader: plugin construction failed")

// resolve implements spec.md §4.1: build "<name>_plugin_create" from name,
// try the host-image registry first (skipped when integrity checking is
// enabled — a host-image symbol can't be file-verified), and otherwise
// fall back to opening file and resolving the symbol there, running it
// past the integrity checker if one is configured.
func (l *Loader) resolve(name, file string) (*pluginEntry, error) {
	symbolName := strings.ReplaceAll(name, "-", "_") + "_plugin_create"

	integrityOn := l.integrity != integrity.Noop

	if !integrityOn {
		if ctor, ok := dlopen.LookupHostSymbol(symbolName); ok {
			return l.construct(ctor, name, nil)
		}
	}

	if file == "" {
		return nil, ErrConstructorNotFound
	}

	if !l.integrity.CheckFile(name, file) {
		return nil, ErrConstructorFailed
	}

	handle, err := dlopen.OpenFile(file)
	if err != nil {
		return nil, ErrConstructorFailed
	}
	ctor, err := handle.Lookup(symbolName)
	if err != nil {
		handle.Close()
		return nil, ErrConstructorNotFound
	}
	if !l.integrity.CheckSegment(name, ctor) {
		handle.Close()
		return nil, ErrConstructorFailed
	}

	return l.construct(ctor, name, handle)
}

func (l *Loader) construct(ctor dlopen.Constructor, name string, handle Handle) (*pluginEntry, error) {
	obj := ctor()
	plugin, ok := obj.(Plugin)
	if obj == nil || !ok {
		if handle != nil {
			handle.Close()
		}
		return nil, ErrConstructorFailed
	}
	return &pluginEntry{name: name, plugin: plugin, handle: handle}, nil
}
