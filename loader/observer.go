package loader

// Stats mirrors spec.md §3's Loader State statistics: the number of
// features that failed to load, the subset of those that failed because
// of unmet dependencies, and the subset in critical plugins.
type Stats struct {
	Failed   int
	Depends  int
	Critical int
}

// StatsObserver is notified after every Load/Unload call completes. It
// keeps the core loader oblivious to whatever exports Stats externally
// (see package metrics), the same "inject the capability, stay agnostic"
// principle spec.md's design notes apply to integrity checking.
type StatsObserver interface {
	Observe(loaderID string, s Stats, loadedPluginCount int)
}
