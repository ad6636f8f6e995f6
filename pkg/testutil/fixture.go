package testutil

import (
	"path/filepath"
	"testing"
)

// SourceMarker is the file that marks a repository. It mirrors the name the
// repository package looks for; testutil cannot import that package without
// creating a cycle in its tests.
const SourceMarker = ".coffle_source.yaml"

// RepoFixture is a repository next to an empty target directory
type RepoFixture struct {
	t *testing.T

	Root       string
	Repository string
	Target     string
}

// NewRepoFixture creates root/repository with a version 1 marker and an
// empty root/target
func NewRepoFixture(t *testing.T) *RepoFixture {
	t.Helper()

	root := TempDir(t)
	f := &RepoFixture{
		t:          t,
		Root:       root,
		Repository: CreateDir(t, root, "repository"),
		Target:     CreateDir(t, root, "target"),
	}
	CreateFile(t, f.Repository, SourceMarker, "version: 1\n")
	return f
}

// File adds a source file and returns its absolute path
func (f *RepoFixture) File(path, content string) string {
	f.t.Helper()
	return CreateFile(f.t, f.Repository, path, content)
}

// Dir adds a source directory and returns its absolute path
func (f *RepoFixture) Dir(path string) string {
	f.t.Helper()
	return CreateDir(f.t, f.Repository, path)
}

// TargetFile puts a file into the target directory, as if the user had
// created it
func (f *RepoFixture) TargetFile(path, content string) string {
	f.t.Helper()
	return CreateFile(f.t, f.Target, path, content)
}

// TargetPath returns the absolute path of a logical path in the target
func (f *RepoFixture) TargetPath(path string) string {
	return filepath.Join(f.Target, path)
}

// WorkPath returns the absolute path of a logical path in one of the work
// areas: "output", "org" or "backup"
func (f *RepoFixture) WorkPath(area, path string) string {
	return filepath.Join(f.Repository, ".coffle", "work", area, path)
}
