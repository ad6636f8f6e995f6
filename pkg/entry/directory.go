package entry

import (
	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/filesystem"
)

// DirectoryEntry is an entry for a proper directory. Nothing is rendered;
// the target is created as a directory.
type DirectoryEntry struct {
	*base
}

var _ lifecycle = (*DirectoryEntry)(nil)

// Type returns "Dir"
func (e *DirectoryEntry) Type() string { return TypeDirectory }

func (e *DirectoryEntry) createDescription() string {
	return "(directory)"
}

// Built reports whether output and org are both proper directories
func (e *DirectoryEntry) Built() bool {
	return filesystem.ProperDirectory(e.fs, e.output) && filesystem.ProperDirectory(e.fs, e.org)
}

// BlockedBy reports whether path prevents installing: anything present that
// does not resolve to a directory. Symlinks to directories do not block.
func (e *DirectoryEntry) BlockedBy(path string) bool {
	return filesystem.Present(e.fs, path) && !filesystem.IsDirectory(e.fs, path)
}

// Installed reports whether the target resolves to a directory
func (e *DirectoryEntry) Installed() bool {
	return filesystem.IsDirectory(e.fs, e.target)
}

// Outdated is true only while not built. Directories have no content to go
// stale.
func (e *DirectoryEntry) Outdated() bool {
	return !e.Built()
}

// Modified is always false
func (e *DirectoryEntry) Modified() (bool, error) {
	return false, nil
}

// OutputStatus classifies the build state for reporting
func (e *DirectoryEntry) OutputStatus() (string, error) { return outputStatus(e) }

// TargetStatus classifies the install state for reporting
func (e *DirectoryEntry) TargetStatus() string { return targetStatus(e) }

// Build creates the output and org directories if needed
func (e *DirectoryEntry) Build(rebuild, overwrite bool) error { return build(e, rebuild, overwrite) }

// Install creates the target directory. An existing directory counts as
// installed; anything else at the target blocks.
func (e *DirectoryEntry) Install(overwrite bool) (bool, error) { return install(e, overwrite) }

// Uninstall removes the target directory if it is a proper, empty
// directory. It always succeeds when installed.
func (e *DirectoryEntry) Uninstall() (bool, error) { return uninstall(e) }

func (e *DirectoryEntry) forceBuild() error {
	for _, dir := range []string{e.output, e.org} {
		if err := e.fs.MkdirAll(dir, 0755); err != nil {
			return wrapFS(err, errors.ErrDirCreate, "create directory", dir)
		}
	}

	// Directories are never skipped
	e.skipped = false
	e.timestamp = nil
	return nil
}

func (e *DirectoryEntry) forceInstall() error {
	if filesystem.Present(e.fs, e.target) {
		preconditionFailed("target %s exists", e.target)
	}

	if err := e.fs.MkdirAll(e.target, 0755); err != nil {
		return wrapFS(err, errors.ErrDirCreate, "create directory", e.target)
	}
	return nil
}

// forceInstallOverwrite is unreachable: an existing target either is a
// directory (installed) or blocks, and install checks both first.
func (e *DirectoryEntry) forceInstallOverwrite() error {
	preconditionFailed("trying to overwrite directory %s", e.target)
	return nil
}

func (e *DirectoryEntry) forceUninstall() error {
	if !e.Installed() {
		preconditionFailed("target %s is not installed", e.target)
	}

	// Symlinked directories and directories with content stay
	if filesystem.ProperDirectory(e.fs, e.target) {
		empty, err := filesystem.EmptyDirectory(e.fs, e.target)
		if err != nil {
			return wrapFS(err, errors.ErrFileAccess, "read directory", e.target)
		}
		if empty {
			if err := e.fs.Remove(e.target); err != nil {
				return wrapFS(err, errors.ErrFileRemove, "remove", e.target)
			}
		}
	}

	if filesystem.ProperDirectory(e.fs, e.backup) {
		empty, err := filesystem.EmptyDirectory(e.fs, e.backup)
		if err != nil {
			return wrapFS(err, errors.ErrFileAccess, "read directory", e.backup)
		}
		if empty {
			if err := e.fs.Remove(e.backup); err != nil {
				return wrapFS(err, errors.ErrFileRemove, "remove", e.backup)
			}
		}
	}
	return nil
}
