package entry

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/filesystem"
	"github.com/arthur-debert/coffle/pkg/logging"
	"github.com/arthur-debert/coffle/pkg/template"
)

// FileEntry is an entry for a proper file. It is built by rendering the
// source and installed as a symlink to the output.
type FileEntry struct {
	*base
}

var _ lifecycle = (*FileEntry)(nil)

// Type returns "File"
func (e *FileEntry) Type() string { return TypeFile }

func (e *FileEntry) createDescription() string {
	return "-> " + e.linkTarget
}

// Built reports whether output and org are both proper files
func (e *FileEntry) Built() bool {
	return filesystem.ProperFile(e.fs, e.output) && filesystem.ProperFile(e.fs, e.org)
}

// BlockedBy reports whether path prevents installing. Only proper
// directories block a file entry; anything else can be moved to the backup.
func (e *FileEntry) BlockedBy(path string) bool {
	return filesystem.ProperDirectory(e.fs, path)
}

// Installed reports whether the target is a symlink to the output. Whether
// the output exists does not matter.
func (e *FileEntry) Installed() bool {
	if !filesystem.IsSymlink(e.fs, e.target) {
		return false
	}
	value, err := e.fs.Readlink(e.target)
	return err == nil && value == e.linkTarget
}

// Outdated reports whether the entry has to be rebuilt
//
//	built | skipped || outdated
//	------+---------++------------------------------------
//	yes   | no      || org older than source
//	no    | yes     || source changed since the skipped build
//	no    | no      || always (never built)
//	yes   | yes     || always (inconsistent, rebuild heals it)
func (e *FileEntry) Outdated() bool {
	built := e.Built()

	switch {
	case built && !e.skipped:
		older, err := filesystem.Older(e.fs, e.org, e.source)
		return err != nil || older
	case e.skipped && !built:
		if e.timestamp == nil {
			return true
		}
		mtime, err := filesystem.ModTime(e.fs, e.source)
		return err != nil || mtime.After(*e.timestamp)
	default:
		return true
	}
}

// Modified reports whether the output differs from the org, i.e. the user
// edited the built file. It is false when either is missing.
func (e *FileEntry) Modified() (bool, error) {
	if !filesystem.Present(e.fs, e.output) || !filesystem.Present(e.fs, e.org) {
		return false, nil
	}

	identical, err := filesystem.Identical(e.fs, e.output, e.org)
	if err != nil {
		return false, wrapFS(err, errors.ErrFileAccess, "compare", e.output)
	}
	return !identical, nil
}

// OutputStatus classifies the build state for reporting
func (e *FileEntry) OutputStatus() (string, error) { return outputStatus(e) }

// TargetStatus classifies the install state for reporting
func (e *FileEntry) TargetStatus() string { return targetStatus(e) }

// Build rebuilds the entry if it is outdated or rebuild is set. A modified
// output is only overwritten if overwrite is set.
func (e *FileEntry) Build(rebuild, overwrite bool) error { return build(e, rebuild, overwrite) }

// Install creates the symlink. With overwrite, an existing file at the
// target is moved to the backup first. It returns false if it refused.
func (e *FileEntry) Install(overwrite bool) (bool, error) { return install(e, overwrite) }

// Uninstall removes the symlink and restores the backup. It returns false if
// the target was replaced or removed by someone else.
func (e *FileEntry) Uninstall() (bool, error) { return uninstall(e) }

// forceBuild renders the source into output and org, or removes both if
// the template skips
func (e *FileEntry) forceBuild() error {
	logger := logging.GetLogger("entry.file")

	for _, dir := range []string{filepath.Dir(e.output), filepath.Dir(e.org)} {
		if err := e.fs.MkdirAll(dir, 0755); err != nil {
			return wrapFS(err, errors.ErrDirCreate, "create directory", dir)
		}
	}

	input, err := e.fs.ReadFile(e.source)
	if err != nil {
		return wrapFS(err, errors.ErrFileAccess, "read", e.source)
	}

	result, err := e.renderer.Render(input, template.Context{
		Path:        e.path,
		LogicalPath: e.logicalPath,
		Target:      e.target,
	})
	if err != nil {
		return err
	}

	if result.Skipped {
		for _, path := range []string{e.output, e.org} {
			if filesystem.Present(e.fs, path) {
				if err := e.fs.Remove(path); err != nil {
					return wrapFS(err, errors.ErrFileRemove, "remove", path)
				}
			}
		}

		now := e.now()
		e.skipped = true
		e.timestamp = &now
		logger.Debug().Str("path", e.path).Time("timestamp", now).Msg("build skipped")
		return nil
	}

	perm := os.FileMode(0644)
	if info, err := e.fs.Stat(e.source); err == nil {
		perm = info.Mode().Perm()
	}

	for _, path := range []string{e.output, e.org} {
		if filesystem.NonFile(e.fs, path) {
			return errors.Newf(errors.ErrFileWrite, "cannot write into non-file %s", path).WithDetail("path", path)
		}
		if err := e.fs.WriteFile(path, []byte(result.Text), perm); err != nil {
			return wrapFS(err, errors.ErrFileWrite, "write", path)
		}
	}

	e.skipped = false
	e.timestamp = nil
	logger.Debug().Str("path", e.path).Int("bytes", len(result.Text)).Msg("built file")
	return nil
}

// forceInstall creates the symlink. The target must not be present.
func (e *FileEntry) forceInstall() error {
	if filesystem.Present(e.fs, e.target) {
		preconditionFailed("target %s exists", e.target)
	}

	// A symlink to a directory is fine as the containing directory
	dir := filepath.Dir(e.target)
	if !filesystem.IsDirectory(e.fs, dir) {
		if err := e.fs.MkdirAll(dir, 0755); err != nil {
			return wrapFS(err, errors.ErrDirCreate, "create directory", dir)
		}
	}

	if err := e.fs.Symlink(e.linkTarget, e.target); err != nil {
		return wrapFS(err, errors.ErrSymlinkCreate, "create symlink", e.target)
	}
	return nil
}

// forceInstallOverwrite moves the target to the backup and installs. The
// target must be present and not blocking, the backup must not be present.
func (e *FileEntry) forceInstallOverwrite() error {
	if !filesystem.Present(e.fs, e.target) || e.BlockedBy(e.target) {
		preconditionFailed("target %s is missing or blocking", e.target)
	}
	if filesystem.Present(e.fs, e.backup) {
		preconditionFailed("backup %s exists", e.backup)
	}

	dir := filepath.Dir(e.backup)
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return wrapFS(err, errors.ErrDirCreate, "create directory", dir)
	}

	if err := e.fs.Rename(e.target, e.backup); err != nil {
		return wrapFS(err, errors.ErrFileRename, "back up", e.target)
	}

	return e.forceInstall()
}

// forceUninstall removes the symlink and moves the backup back. The backup
// must go, or the entry would count as removed on the next run.
func (e *FileEntry) forceUninstall() error {
	if !e.Installed() {
		preconditionFailed("target %s is not installed", e.target)
	}

	if err := e.fs.Remove(e.target); err != nil {
		return wrapFS(err, errors.ErrFileRemove, "remove", e.target)
	}

	if filesystem.Present(e.fs, e.backup) {
		if err := e.fs.Rename(e.backup, e.target); err != nil {
			return wrapFS(err, errors.ErrFileRename, "restore", e.backup)
		}
	}
	return nil
}
