package repository

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/coffle/pkg/entry"
	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/filename"
	"github.com/arthur-debert/coffle/pkg/logging"
)

// Entries returns the entries of the repository in scan order: depth first,
// names sorted, a directory before its contents. The scan runs once per
// Repository.
func (r *Repository) Entries() ([]entry.Entry, error) {
	if r.scanned {
		return r.entries, nil
	}

	paths, err := r.scan()
	if err != nil {
		return nil, err
	}

	opts := entry.Options{
		FS:       r.fs,
		Renderer: r.renderer,
		Reporter: r.reporter,
		Now:      r.now,
	}
	layout := r.Layout()

	entries := make([]entry.Entry, 0, len(paths))
	for _, path := range paths {
		// Status is keyed by logical path; stale keys are dropped on the next
		// write
		status := r.status.Entries[filepath.ToSlash(filename.UnescapePath(path))]

		e, err := entry.New(layout, path, status, opts)
		if err != nil {
			return nil, err
		}
		if e == nil {
			// Neither a proper file nor a proper directory
			continue
		}
		entries = append(entries, e)
	}

	r.entries = entries
	r.scanned = true
	return entries, nil
}

// scan lists the relative paths below the repository, leaving out names
// starting with a dot, names that are not deployable and paths the ignore
// list excludes. Symlinked
// directories are not descended into.
func (r *Repository) scan() ([]string, error) {
	logger := logging.GetLogger("repository.scan")

	var paths []string
	var walk func(rel string) error
	walk = func(rel string) error {
		dir := filepath.Join(r.repositoryDir, rel)
		items, err := r.fs.ReadDir(dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir).WithDetail("path", dir)
		}

		for _, item := range items {
			name := item.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}

			path := filepath.Join(rel, name)
			if !filename.Deployable(name) {
				logger.Warn().Str("path", path).Msg("name deploys to no location, not an entry")
				continue
			}
			if r.ignore.Excludes(path) {
				logger.Trace().Str("path", path).Msg("ignored")
				continue
			}

			paths = append(paths, path)
			if item.IsDir() {
				if err := walk(path); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(""); err != nil {
		return nil, err
	}

	logger.Debug().Int("paths", len(paths)).Msg("scanned repository")
	return paths, nil
}
