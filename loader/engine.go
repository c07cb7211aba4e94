package loader

import "github.com/alerm-sml/strongswan/feature"

// loadFeatures is the Load Engine's entry point (spec.md §4.4): walk the
// Plugin Entry Table in insertion order, and within each entry walk its
// features in registration order, attempting to load each.
func (l *Loader) loadFeatures() {
	for _, entry := range l.entries {
		for _, p := range entry.features {
			l.loadProvided(p, 0)
		}
	}
}

// loadProvided is the cycle guard: loading is the sole cycle-detection
// mechanism, set only along the active call chain.
func (l *Loader) loadProvided(p *providedFeature, level int) {
	if p.loaded || p.failed {
		return
	}
	if p.loading {
		l.logger.Tracef("loop detected while loading %s in plugin %q", p.descriptor, p.entry.name)
		return
	}
	p.loading = true
	l.loadFeature(p, level+1)
	p.loading = false
}

// loadFeature implements spec.md §4.4's load_feature.
func (l *Loader) loadFeature(p *providedFeature, level int) {
	if l.loadDependencies(p, level) {
		if p.descriptor.Load(p.entry.plugin, p.descriptor, p.reg) {
			p.loaded = true
			l.stack.pushFront(p)
			return
		}
		if p.entry.critical {
			l.logger.Warnf("feature %s in critical plugin %q failed to load", p.descriptor, p.entry.name)
		} else {
			l.logger.Debugf("feature %s in plugin %q failed to load", p.descriptor, p.entry.name)
		}
	} else {
		l.stats.Depends++
	}
	p.failed = true
	if p.entry.critical {
		l.stats.Critical++
	}
	l.stats.Failed++
}

// loadDependencies implements spec.md §4.4's load_dependencies: for each
// dependency descriptor, exhaustively load every currently loadable
// provider of a matching registered feature (equals preferred over
// matches), then check whether a loaded provider now satisfies it.
func (l *Loader) loadDependencies(p *providedFeature, level int) bool {
	for _, d := range p.dependencies {
		for {
			rf := l.registry.getMatch(func(r *registeredFeature) bool {
				return r.descriptor.Equals(d) && r.hasLoadable()
			})
			if rf == nil {
				rf = l.registry.getMatch(func(r *registeredFeature) bool {
					return r.descriptor.Matches(d) && r.hasLoadable()
				})
			}
			if rf == nil {
				break
			}
			l.loadRegistered(rf, level)
		}

		if l.hasLoadedMatch(d) {
			continue
		}

		if d.Kind() == feature.SDepend {
			l.logger.Tracef("feature %s in plugin %q has unmet soft dependency: %s", p.descriptor, p.entry.name, d)
			continue
		}

		if p.entry.critical {
			l.logger.Warnf("feature %s in critical plugin %q has unmet dependency: %s", p.descriptor, p.entry.name, d)
		} else {
			l.logger.Debugf("feature %s in plugin %q has unmet dependency: %s", p.descriptor, p.entry.name, d)
		}
		return false
	}
	return true
}

func (l *Loader) hasLoadedMatch(d feature.Descriptor) bool {
	return l.registry.getMatch(func(r *registeredFeature) bool {
		return r.descriptor.Matches(d) && r.hasLoaded()
	}) != nil
}

// loadRegistered attempts to load every provider of rf, spec.md §4.4's
// load_registered.
func (l *Loader) loadRegistered(rf *registeredFeature, level int) {
	for _, p := range rf.providers {
		l.loadProvided(p, level)
	}
}
