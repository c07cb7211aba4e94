package loader

import "github.com/alerm-sml/strongswan/feature"

// registerFeatures walks entry's flat descriptor list (spec.md §4.3):
// REGISTER/CALLBACK descriptors become the sticky "reg" context for
// PROVIDE descriptors that follow, until overwritten. Each PROVIDE gets a
// providedFeature whose dependency window is every immediately following
// DEPENDS/SDEPEND descriptor, and is registered into the Feature Registry.
func (l *Loader) registerFeatures(entry *pluginEntry) {
	provider, ok := entry.plugin.(FeatureProvider)
	if !ok {
		l.logger.Debugf("plugin %q does not provide features", entry.name)
		return
	}

	descriptors := provider.Features()
	var reg feature.Descriptor

	for i := 0; i < len(descriptors); i++ {
		d := descriptors[i]
		switch d.Kind() {
		case feature.Provide:
			provided := &providedFeature{
				entry:        entry,
				descriptor:   d,
				reg:          reg,
				dependencies: dependencyWindow(descriptors, i+1),
			}
			l.registry.register(provided)
			entry.features = append(entry.features, provided)
		case feature.Register, feature.Callback:
			reg = d
		default:
			// DEPENDS/SDEPEND outside a PROVIDE's window are reached only
			// through dependencyWindow above, never handled standalone.
		}
	}
}

// dependencyWindow collects the run of consecutive DEPENDS/SDEPEND
// descriptors starting at start, stopping at the first descriptor of any
// other kind.
func dependencyWindow(descriptors []feature.Descriptor, start int) []feature.Descriptor {
	var deps []feature.Descriptor
	for i := start; i < len(descriptors); i++ {
		if !descriptors[i].Kind().IsDependency() {
			break
		}
		deps = append(deps, descriptors[i])
	}
	return deps
}

// unregisterFeatures removes every feature entry owns from the registry
// and empties entry.features, spec.md §4.5's unregister_features.
func (l *Loader) unregisterFeatures(entry *pluginEntry) {
	for _, p := range entry.features {
		l.registry.unregister(p)
	}
	entry.features = nil
}
