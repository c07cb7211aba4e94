// Package loader implements the strongSwan-style plugin loader: discovery
// of plugin modules, registration of the features each advertises,
// resolution of inter-feature dependencies, and loading features in a
// valid topological order while tolerating optional dependencies and
// reporting hard failures.
package loader

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/alerm-sml/strongswan/feature"
	"github.com/alerm-sml/strongswan/integrity"
	internallog "github.com/alerm-sml/strongswan/internal/log"
)

// Loader is the loader instance, spec.md §3's "Loader State". It is not
// safe for concurrent use: spec.md §5 models the loader as single-threaded
// cooperative, so no internal synchronization is added.
type Loader struct {
	id uuid.UUID

	entries  []*pluginEntry
	registry *registry
	stack    loadStack
	stats    Stats

	searchPaths []string
	defaultPath string

	loadedPlugins string

	fs            afero.Fs
	integrity     integrity.Checker
	logger        internallog.Logger
	observer      StatsObserver
	leakDetective bool
}

// Option configures a new Loader.
type Option func(*Loader)

// WithDefaultPath sets the compile-time fallback search path.
func WithDefaultPath(path string) Option {
	return func(l *Loader) { l.defaultPath = path }
}

// WithFilesystem overrides the afero.Fs used for search-path scanning,
// letting tests substitute an in-memory filesystem.
func WithFilesystem(fs afero.Fs) Option {
	return func(l *Loader) { l.fs = fs }
}

// WithIntegrityChecker installs an integrity.Checker, consulted before
// opening plugin files (spec.md §4.1). Defaults to integrity.Noop.
func WithIntegrityChecker(c integrity.Checker) Option {
	return func(l *Loader) { l.integrity = c }
}

// WithLogger overrides the logger. Defaults to internal/log.Get().
func WithLogger(logger internallog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithStatsObserver registers an observer notified after every Load/Unload.
func WithStatsObserver(o StatsObserver) Option {
	return func(l *Loader) { l.observer = o }
}

// WithLeakDetective retains shared-object handles at teardown instead of
// releasing them, spec.md §4.5 step 2.
func WithLeakDetective(enabled bool) Option {
	return func(l *Loader) { l.leakDetective = enabled }
}

// New creates an empty Loader, spec.md §3's create().
func New(opts ...Option) *Loader {
	l := &Loader{
		id:        uuid.New(),
		registry:  newRegistry(),
		fs:        afero.NewOsFs(),
		integrity: integrity.Noop,
		logger:    internallog.Get(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.WithField("loader", l.id.String())
	return l
}

// ID returns the loader's correlation identity, used to tag log lines and
// metrics samples from this instance.
func (l *Loader) ID() string {
	return l.id.String()
}

// AddStaticFeatures wraps an already-in-image, statically supplied plugin
// as a synthetic entry (no shared-object handle) and registers its
// features immediately, spec.md §4.2's add_static plus the
// originalsource's add_static_features, which registers right away rather
// than waiting for load_features.
func (l *Loader) AddStaticFeatures(name string, plugin Plugin, critical bool) {
	entry := &pluginEntry{name: name, plugin: plugin, critical: critical}
	l.entries = append(l.entries, entry)
	l.registerFeatures(entry)
}

// Load implements spec.md §4.2's load(list): parse list, resolve and
// register each not-yet-loaded plugin, abort immediately if a critical
// plugin can't even be instantiated, then run the Load Engine and purge
// plugins that ended up with no loaded feature. Returns true iff no
// critical plugin failed to instantiate and no critical feature failed to
// load.
func (l *Loader) Load(list string) bool {
	for _, token := range strings.Fields(list) {
		critical := false
		name := token
		if strings.HasSuffix(name, "!") {
			critical = true
			name = strings.TrimSuffix(name, "!")
		}

		if l.hasEntry(name) {
			continue
		}

		file := l.findFile(name)
		entry, err := l.resolve(name, file)
		if err != nil {
			if critical {
				l.logger.Warnf("loading critical plugin %q failed: %v", name, err)
				l.notify()
				return false
			}
			l.logger.Debugf("plugin %q not loaded: %v", name, err)
			continue
		}
		entry.critical = critical
		l.entries = append(l.entries, entry)
		l.registerFeatures(entry)
	}

	l.loadFeatures()
	l.purgePlugins()
	if l.stats.Critical > 0 {
		l.logger.Warnf("failed to load %d critical plugin feature(s)", l.stats.Critical)
		l.notify()
		return false
	}

	l.loadedPlugins = l.buildLoadedPluginsList()
	l.notify()
	return true
}

func (l *Loader) hasEntry(name string) bool {
	for _, e := range l.entries {
		if e.name == name {
			return true
		}
	}
	return false
}

// purgePlugins removes entries that ended up with zero loaded features,
// skipping entries whose plugin doesn't implement FeatureProvider at all
// (spec.md §4.2, and the originalsource's "feature interface not
// supported" early-out in purge_plugins).
func (l *Loader) purgePlugins() {
	kept := l.entries[:0]
	for _, entry := range l.entries {
		if _, ok := entry.plugin.(FeatureProvider); ok && !entryHasLoadedFeature(entry) {
			l.unregisterFeatures(entry)
			l.destroyEntry(entry)
			continue
		}
		kept = append(kept, entry)
	}
	l.entries = kept
}

func entryHasLoadedFeature(entry *pluginEntry) bool {
	for _, p := range entry.features {
		if p.loaded {
			return true
		}
	}
	return false
}

func (l *Loader) destroyEntry(entry *pluginEntry) {
	if d, ok := entry.plugin.(Destroyer); ok {
		d.Destroy()
	}
	if entry.handle != nil {
		entry.handle.Close()
	}
}

func (l *Loader) buildLoadedPluginsList() string {
	names := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		names = append(names, e.name)
	}
	return strings.Join(names, " ")
}

func (l *Loader) notify() {
	if l.observer != nil {
		l.observer.Observe(l.id.String(), l.stats, len(l.entries))
	}
}

// Unload tears everything down: every loaded feature is unloaded in exact
// reverse load order, then every plugin entry is destroyed in reverse
// insertion order, and statistics/display state reset to zero — spec.md
// §4.5's unload, restoring the loader to New()'s empty state.
func (l *Loader) Unload() {
	for {
		p := l.stack.removeFront()
		if p == nil {
			break
		}
		p.descriptor.Unload(p.entry.plugin, p.descriptor, p.reg)
		p.entry.features = removeProvidedFromEntry(p.entry.features, p)
		l.registry.unregister(p)
	}

	for i := len(l.entries) - 1; i >= 0; i-- {
		entry := l.entries[i]
		l.unregisterFeatures(entry)
		if l.leakDetective && entry.handle != nil {
			// Retain the handle without closing it so a leak detector can
			// still symbolicate addresses into it, spec.md §4.5 step 2.
			if d, ok := entry.plugin.(Destroyer); ok {
				d.Destroy()
			}
			entry.handle = nil
		} else {
			l.destroyEntry(entry)
		}
	}
	l.entries = nil
	l.loadedPlugins = ""
	l.stats = Stats{}
	l.notify()
}

func removeProvidedFromEntry(list []*providedFeature, target *providedFeature) []*providedFeature {
	out := list[:0]
	for _, p := range list {
		if p != target {
			out = append(out, p)
		}
	}
	return out
}

// Reload invokes the optional reload capability on every plugin matching
// list (whitespace-delimited names), or on all plugins if list is empty,
// and returns the count that acknowledged the reload. Reload never
// re-orders or loads features, spec.md §4.5.
func (l *Loader) Reload(list string) int {
	names := strings.Fields(list)
	reloaded := 0
	for _, entry := range l.entries {
		if len(names) > 0 && !containsString(names, entry.name) {
			continue
		}
		if r, ok := entry.plugin.(Reloader); ok && r.Reload() {
			reloaded++
		}
	}
	return reloaded
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// HasFeature reports whether any loaded feature of any plugin matches d.
func (l *Loader) HasFeature(d feature.Descriptor) bool {
	for _, entry := range l.entries {
		for _, p := range entry.features {
			if p.loaded && p.descriptor.Matches(d) {
				return true
			}
		}
	}
	return false
}

// LoadedPlugins returns the space-separated display string rebuilt at the
// end of the last successful Load.
func (l *Loader) LoadedPlugins() string {
	return l.loadedPlugins
}

// Stats returns a copy of the current load statistics.
func (l *Loader) Stats() Stats {
	return l.stats
}

// PluginFeatures is one entry of CreatePluginEnumerator's result: a plugin
// together with the loaded features it currently contributes.
type PluginFeatures struct {
	Plugin   Plugin
	Features []feature.Descriptor
}

// CreatePluginEnumerator returns, for every plugin entry, its plugin
// object and the subsequence of its features that are currently loaded.
func (l *Loader) CreatePluginEnumerator() []PluginFeatures {
	result := make([]PluginFeatures, 0, len(l.entries))
	for _, entry := range l.entries {
		var loaded []feature.Descriptor
		for _, p := range entry.features {
			if p.loaded {
				loaded = append(loaded, p.descriptor)
			}
		}
		result = append(result, PluginFeatures{Plugin: entry.plugin, Features: loaded})
	}
	return result
}

// Status returns the human-readable status text spec.md §4.6 describes
// and logs it at info level via the loader's logger.
func (l *Loader) Status() string {
	if l.loadedPlugins == "" {
		return ""
	}
	msg := fmt.Sprintf("loaded plugins: %s", l.loadedPlugins)
	if l.stats.Failed > 0 {
		msg += fmt.Sprintf("; unable to load %d plugin feature(s) (%d due to unmet dependencies)",
			l.stats.Failed, l.stats.Depends)
	}
	l.logger.Infof("%s", msg)
	return msg
}
