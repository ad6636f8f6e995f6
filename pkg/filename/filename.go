// Package filename maps repository file names to the names they are
// deployed under.
//
// Repositories cannot usefully hold dotfiles (they would be hidden and are
// excluded from the scan), so a leading "_" in a source name stands for a
// leading "." in the deployed name. A leading "-" marks an explicit
// non-dotfile and is dropped. Only the first character is consumed, which
// makes names starting with "_" or "-" expressible:
//
//	foo    -> foo
//	_foo   -> .foo
//	-foo   -> foo
//	__foo  -> ._foo
//	_-foo  -> .-foo
//	-_foo  -> _foo
//	--foo  -> -foo
//
// Each path component is unescaped on its own. A source name that would
// deploy as "", "." or ".." ("-", "_", "_.") names no location and is not
// Deployable.
package filename

import (
	"path/filepath"
	"strings"
)

// Unescape returns the deployed form of a single path component
func Unescape(name string) string {
	switch {
	case strings.HasPrefix(name, "_"):
		return "." + name[1:]
	case strings.HasPrefix(name, "-"):
		return name[1:]
	default:
		return name
	}
}

// Deployable reports whether the source component name unescapes to a
// usable name
func Deployable(name string) bool {
	switch Unescape(name) {
	case "", ".", "..":
		return false
	default:
		return true
	}
}

// UnescapePath unescapes every component of a relative, slash-separated or
// OS-separated path
func UnescapePath(path string) string {
	if path == "" {
		return ""
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	for i, part := range parts {
		parts[i] = Unescape(part)
	}
	return filepath.FromSlash(strings.Join(parts, "/"))
}
