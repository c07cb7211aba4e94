package loader

import "github.com/alerm-sml/strongswan/feature"

// Plugin is the base plugin object contract (spec.md §6): a name, nothing
// more. The richer parts of the contract are optional capabilities,
// discovered with a type assertion rather than forcing every plugin to
// implement no-op methods.
type Plugin = feature.Plugin

// FeatureProvider is the optional "get_features" capability. A plugin that
// doesn't implement it contributes no features and is never purged for
// having none (spec.md's purge only applies to feature-capable plugins),
// matching the original's "feature interface not supported" early-out in
// register_features/purge_plugins.
type FeatureProvider interface {
	Plugin
	Features() []feature.Descriptor
}

// Reloader is the optional "reload" capability.
type Reloader interface {
	Plugin
	Reload() bool
}

// Destroyer is the optional "destroy" capability, run when a plugin entry
// is torn down.
type Destroyer interface {
	Plugin
	Destroy()
}

// Handle abstracts the released resource backing a plugin entry: either a
// real shared-object handle (package dlopen) or nil for a plugin that was
// found in the host image or added statically.
type Handle interface {
	Close() error
}

// pluginEntry is one loaded plugin, spec.md §3's "Plugin Entry".
type pluginEntry struct {
	name     string
	plugin   Plugin
	handle   Handle
	critical bool
	features []*providedFeature
}

// providedFeature is one capability offered by one plugin entry, spec.md
// §3's "Provided Feature". loading/loaded/failed are pairwise exclusive
// except that loading is transient and cleared before either loaded or
// failed becomes true — enforced by the engine, not by this struct.
type providedFeature struct {
	entry        *pluginEntry
	descriptor   feature.Descriptor
	dependencies []feature.Descriptor
	reg          feature.Descriptor

	loading bool
	loaded  bool
	failed  bool
}

func (p *providedFeature) loadable() bool {
	return !p.loading && !p.loaded && !p.failed
}

// registeredFeature is the registry record keyed by a canonical
// descriptor, spec.md §3's "Registered Feature Record".
type registeredFeature struct {
	descriptor feature.Descriptor
	providers  []*providedFeature
}

func (r *registeredFeature) hasLoaded() bool {
	for _, p := range r.providers {
		if p.loaded {
			return true
		}
	}
	return false
}

func (r *registeredFeature) hasLoadable() bool {
	for _, p := range r.providers {
		if p.loadable() {
			return true
		}
	}
	return false
}
