// Package testutil provides helpers for testing coffle on a real
// filesystem.
//
// Entries are about symlinks, so tests run against t.TempDir() rather than
// an in-memory filesystem. RepoFixture lays out a repository and a target
// directory side by side; the plain helpers create and inspect paths and
// fail the test on error.
package testutil
