package feature

// Plugin is the minimal contract every plugin object must satisfy. The
// richer, optional parts of the contract (get_features, reload, destroy)
// live as separate interfaces in package loader and are discovered with a
// type assertion, the idiomatic Go stand-in for an optional C function
// pointer in a vtable.
type Plugin interface {
	Name() string
}

// Descriptor is the opaque capability unit the loader schedules. Equality
// and matching are feature-specific and therefore external to the loader;
// the loader only ever calls Equals/Matches/Hash on descriptors it was
// handed, never inspects their internals. Equals(a, b) implies Matches(a, b).
//
// Load/Unload are the "feature's own load/unload actions" spec.md keeps
// external: a PROVIDE descriptor knows how to install and remove the
// capability it represents, given the plugin that offers it and the
// REGISTER/CALLBACK descriptor (if any) that preceded it in the plugin's
// descriptor list.
type Descriptor interface {
	Kind() Kind
	Hash() uint32
	Equals(other Descriptor) bool
	Matches(other Descriptor) bool
	String() string

	Load(p Plugin, self, reg Descriptor) bool
	Unload(p Plugin, self, reg Descriptor) bool
}
