package filesystem

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/coffle/pkg/types"
)

// Present reports whether anything is at path, including a symlink whose
// destination is missing
func Present(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}

// Exists reports whether path resolves to something. A dangling symlink
// does not exist.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// IsSymlink reports whether path itself is a symlink, regardless of what it
// points to
func IsSymlink(fsys types.FS, path string) bool {
	info, err := fsys.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

// IsDirectory reports whether path resolves to a directory (a proper
// directory or a symlink to one)
func IsDirectory(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path resolves to a regular file
func IsFile(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ProperDirectory reports whether path is a directory and not a symlink
func ProperDirectory(fsys types.FS, path string) bool {
	info, err := fsys.Lstat(path)
	return err == nil && info.IsDir()
}

// ProperFile reports whether path is a regular file and not a symlink
func ProperFile(fsys types.FS, path string) bool {
	info, err := fsys.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

// NonDirectory reports whether path is present but does not resolve to a
// directory. Symlinks to directories count as directories.
func NonDirectory(fsys types.FS, path string) bool {
	return Present(fsys, path) && !IsDirectory(fsys, path)
}

// NonFile reports whether path is present but does not resolve to a regular
// file. Symlinks to files count as files.
func NonFile(fsys types.FS, path string) bool {
	return Present(fsys, path) && !IsFile(fsys, path)
}

// BlockingAncestor returns the nearest present ancestor of path if it does
// not resolve to a directory, so that nothing can be created at path. It
// returns "" when the closest present ancestor is a directory.
func BlockingAncestor(fsys types.FS, path string) string {
	dir := filepath.Dir(path)
	for {
		if Present(fsys, dir) {
			if IsDirectory(fsys, dir) {
				return ""
			}
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Identical reports whether a and b both resolve to regular files with the
// same content
func Identical(fsys types.FS, a, b string) (bool, error) {
	if !IsFile(fsys, a) || !IsFile(fsys, b) {
		return false, nil
	}

	infoA, err := fsys.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := fsys.Stat(b)
	if err != nil {
		return false, err
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	contentA, err := fsys.ReadFile(a)
	if err != nil {
		return false, err
	}
	contentB, err := fsys.ReadFile(b)
	if err != nil {
		return false, err
	}

	return bytes.Equal(contentA, contentB), nil
}

// ModTime returns the modification time of whatever path resolves to
func ModTime(fsys types.FS, path string) (time.Time, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Older reports whether a was modified strictly before b
func Older(fsys types.FS, a, b string) (bool, error) {
	timeA, err := ModTime(fsys, a)
	if err != nil {
		return false, err
	}
	timeB, err := ModTime(fsys, b)
	if err != nil {
		return false, err
	}
	return timeA.Before(timeB), nil
}

// EmptyDirectory reports whether path resolves to a directory without
// entries
func EmptyDirectory(fsys types.FS, path string) (bool, error) {
	entries, err := fsys.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

// SetOlder sets the access and modification times of path to d before those
// of ref
func SetOlder(fsys types.FS, path, ref string, d time.Duration) error {
	refTime, err := ModTime(fsys, ref)
	if err != nil {
		return err
	}
	t := refTime.Add(-d)
	return fsys.Chtimes(path, t, t)
}
