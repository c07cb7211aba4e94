package loader

import (
	"fmt"
	"strings"
)

// findFile implements spec.md §4.2's file location: scan the
// user-configured search paths first, then the compile-time default path,
// for "libstrongswan-<name>.so". Returns "" if none exists.
func (l *Loader) findFile(name string) string {
	for _, path := range l.searchPaths {
		if candidate := l.statCandidate(path, name); candidate != "" {
			return candidate
		}
	}
	return l.statCandidate(l.defaultPath, name)
}

func (l *Loader) statCandidate(path, name string) string {
	if path == "" {
		return ""
	}
	candidate := fmt.Sprintf("%s/libstrongswan-%s.so", path, name)
	if info, err := l.fs.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return ""
}

// AddPath appends path to the list of user-configured search paths.
func (l *Loader) AddPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// AddPluginDirs is the "plugin directory batch helper" from spec.md §6: for
// each whitespace-delimited name in plugins, translate "-" to "_" and
// append "<baseDir>/<name>/.libs" to the search paths, grounded on the
// original's plugin_loader_add_plugindirs.
func (l *Loader) AddPluginDirs(baseDir, plugins string) {
	for _, name := range strings.Fields(plugins) {
		dir := strings.ReplaceAll(name, "-", "_")
		l.AddPath(fmt.Sprintf("%s/%s/.libs", baseDir, dir))
	}
}
