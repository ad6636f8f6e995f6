package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem interface required for coffle operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error

	// Lstat does not follow a trailing symlink. Everything that tells a
	// proper file from a symlink depends on it.
	Lstat(name string) (fs.FileInfo, error)
}
