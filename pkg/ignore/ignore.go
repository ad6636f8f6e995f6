// Package ignore implements the repository ignore list, a file of glob
// patterns naming source paths that are not entries.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/types"
)

// FileName is the name of the ignore file at the repository root
const FileName = ".coffleignore"

// List is an ordered set of glob patterns
type List struct {
	patterns []string
}

// New creates a list from patterns. Blank patterns are dropped.
func New(patterns []string) *List {
	l := &List{}
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern != "" {
			l.patterns = append(l.patterns, pattern)
		}
	}
	return l
}

// Load reads one pattern per line from path. A missing file yields an
// empty list.
func Load(fsys types.FS, path string) (*List, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil), nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read ignore file %s", path).
			WithDetail("path", path)
	}

	return New(strings.Split(string(data), "\n")), nil
}

// Patterns returns the patterns in the list
func (l *List) Patterns() []string {
	return l.patterns
}

// Matches reports whether name matches any pattern. Malformed patterns
// never match.
func (l *List) Matches(name string) bool {
	for _, pattern := range l.patterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Excludes reports whether the relative path rel is ignored, either as a
// whole or through any one of its components
func (l *List) Excludes(rel string) bool {
	if len(l.patterns) == 0 {
		return false
	}

	rel = filepath.ToSlash(rel)
	if l.Matches(rel) {
		return true
	}
	for _, part := range strings.Split(rel, "/") {
		if l.Matches(part) {
			return true
		}
	}
	return false
}
