// Package filesystem provides filesystem implementations for coffle.
//
// It contains the OS implementation of types.FS and the path predicates
// every entry decision is built from. The predicates distinguish a path that
// is present at all (a dangling symlink is present) from one that exists
// (resolves to something), and a proper file or directory (not a symlink)
// from one reached through a symlink. None of them cache anything.
package filesystem
