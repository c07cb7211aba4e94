package loader

import "github.com/alerm-sml/strongswan/feature"

// registry is the Feature Registry (spec.md §3/§4.3): a mapping from
// canonical descriptor to registeredFeature, with exact lookups hashed by
// the external Hash/Equals and fuzzy lookups done by linear scan (the
// original uses a real hashtable for get() and a linked-list walk for
// get_match() — the same split applies here).
type registry struct {
	order   []*registeredFeature
	buckets map[uint32][]*registeredFeature
}

func newRegistry() *registry {
	return &registry{buckets: map[uint32][]*registeredFeature{}}
}

// getExact returns the record whose descriptor Equals d, if any.
func (r *registry) getExact(d feature.Descriptor) *registeredFeature {
	for _, rf := range r.buckets[d.Hash()] {
		if rf.descriptor.Equals(d) {
			return rf
		}
	}
	return nil
}

// getOrCreate returns the existing record for d, or inserts and returns a
// fresh one.
func (r *registry) getOrCreate(d feature.Descriptor) *registeredFeature {
	if rf := r.getExact(d); rf != nil {
		return rf
	}
	rf := &registeredFeature{descriptor: d}
	h := d.Hash()
	r.buckets[h] = append(r.buckets[h], rf)
	r.order = append(r.order, rf)
	return rf
}

// getMatch performs the linear scan spec.md §4.3 calls for, returning the
// first record (in registration order) satisfying pred.
func (r *registry) getMatch(pred func(*registeredFeature) bool) *registeredFeature {
	for _, rf := range r.order {
		if pred(rf) {
			return rf
		}
	}
	return nil
}

// remove deletes rf from the registry entirely.
func (r *registry) remove(rf *registeredFeature) {
	h := rf.descriptor.Hash()
	r.buckets[h] = removeRegistered(r.buckets[h], rf)
	if len(r.buckets[h]) == 0 {
		delete(r.buckets, h)
	}
	r.order = removeRegistered(r.order, rf)
}

func removeRegistered(list []*registeredFeature, target *registeredFeature) []*registeredFeature {
	out := list[:0]
	for _, rf := range list {
		if rf != target {
			out = append(out, rf)
		}
	}
	return out
}

// register adds provided to the record keyed by provided.descriptor,
// creating the record if necessary, and returns that record.
func (r *registry) register(provided *providedFeature) *registeredFeature {
	rf := r.getOrCreate(provided.descriptor)
	rf.providers = append(rf.providers, provided)
	return rf
}

// unregister removes provided from its record. If the record becomes
// empty it is deleted outright; otherwise, if the record's canonical
// descriptor was provided's own (by identity, not just Equals — mirroring
// the original's pointer comparison `registered->feature ==
// provided->feature`), it rebinds to the first remaining provider so
// lookups for surviving providers keep working (spec.md §9 Open Question a).
func (r *registry) unregister(provided *providedFeature) {
	rf := r.getExact(provided.descriptor)
	if rf == nil {
		return
	}
	rf.providers = removeProvided(rf.providers, provided)
	if len(rf.providers) == 0 {
		r.remove(rf)
		return
	}
	if rf.descriptor == provided.descriptor {
		rf.descriptor = rf.providers[0].descriptor
	}
}

func removeProvided(list []*providedFeature, target *providedFeature) []*providedFeature {
	out := list[:0]
	for _, p := range list {
		if p != target {
			out = append(out, p)
		}
	}
	return out
}
