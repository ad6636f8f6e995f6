package repository

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/coffle/pkg/logging"
	"github.com/arthur-debert/coffle/pkg/types"
)

// Build builds all entries in scan order. Refusals are reported and do not
// stop the run; a filesystem or template error does.
func (r *Repository) Build(rebuild, overwrite bool) error {
	logger := logging.GetLogger("repository")
	defer logging.LogOperationStart(logger, "build")()

	r.header("Building in %s (%s, %s)", r.outputDir,
		choose(rebuild, "rebuilding", "non-rebuilding"),
		choose(overwrite, "overwriting", "non-overwriting"))

	entries, err := r.Entries()
	if err != nil {
		return err
	}

	for _, e := range entries {
		if err := e.Build(rebuild, overwrite); err != nil {
			return err
		}
	}
	return nil
}

// Install installs all entries in scan order, building outdated ones first
func (r *Repository) Install(overwrite bool) error {
	logger := logging.GetLogger("repository")
	defer logging.LogOperationStart(logger, "install")()

	r.header("Installing to %s (%s)", r.targetDir, choose(overwrite, "overwriting", "non-overwriting"))

	entries, err := r.Entries()
	if err != nil {
		return err
	}

	refused := 0
	for _, e := range entries {
		ok, err := e.Install(overwrite)
		if err != nil {
			return err
		}
		if !ok {
			refused++
		}
	}

	logger.Info().Int("entries", len(entries)).Int("refused", refused).Msg("install finished")
	return nil
}

// Uninstall uninstalls all entries in reverse scan order, so that
// directories are emptied before they are considered for removal
func (r *Repository) Uninstall() error {
	logger := logging.GetLogger("repository")
	defer logging.LogOperationStart(logger, "uninstall")()

	r.header("Uninstalling from %s", r.targetDir)

	entries, err := r.Entries()
	if err != nil {
		return err
	}

	refused := 0
	for i := len(entries) - 1; i >= 0; i-- {
		ok, err := entries[i].Uninstall()
		if err != nil {
			return err
		}
		if !ok {
			refused++
		}
	}

	logger.Info().Int("entries", len(entries)).Int("refused", refused).Msg("uninstall finished")
	return nil
}

// WriteStatus persists the skip state of every scanned entry, keyed by
// logical path. Status of paths that no longer exist is dropped.
func (r *Repository) WriteStatus() error {
	entries, err := r.Entries()
	if err != nil {
		return err
	}

	doc := &types.StatusDocument{
		Version: types.StatusVersion,
		Entries: make(map[string]*types.EntryStatus, len(entries)),
	}
	for _, e := range entries {
		doc.Entries[filepath.ToSlash(e.LogicalPath())] = e.Status()
	}

	if err := saveStatus(r.fs, r.statusFile, doc); err != nil {
		return err
	}
	r.status = doc

	logger := logging.GetLogger("repository")
	logger.Debug().Str("path", r.statusFile).Msg("wrote status")
	return nil
}

func (r *Repository) header(format string, args ...interface{}) {
	if r.verbose {
		_, _ = fmt.Fprintf(r.out, format+"\n", args...)
	}
}

func choose(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
