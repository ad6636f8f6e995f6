package entry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/coffle/pkg/testutil"
	"github.com/arthur-debert/coffle/pkg/types"
)

func TestFileEntry_InstallAndUninstall(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")
	e := h.entry("_foo", nil)

	require.NoError(t, e.Build(false, false))
	ok, err := e.Install(false)
	require.NoError(t, err)
	assert.True(t, ok)

	testutil.AssertSymlink(t, h.TargetPath(".foo"), e.LinkTarget())
	testutil.AssertFileContent(t, h.TargetPath(".foo"), "hi")
	assert.True(t, e.Installed())

	ok, err = e.Uninstall()
	require.NoError(t, err)
	assert.True(t, ok)
	testutil.AssertNoFile(t, h.TargetPath(".foo"))

	assert.Equal(t, []Outcome{OutcomeBuilt, OutcomeInstall, OutcomeUninstall}, h.recorder.Outcomes())
}

func TestFileEntry_OverwriteWithBackup(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")
	h.TargetFile(".foo", "mine")
	e := h.entry("_foo", nil)

	ok, err := e.Install(false)
	require.NoError(t, err)
	assert.False(t, ok)
	testutil.AssertFileContent(t, h.TargetPath(".foo"), "mine")
	assert.False(t, testutil.SymlinkExists(t, h.TargetPath(".foo")))
	testutil.AssertNoFile(t, e.Backup())

	last, _ := h.recorder.Last()
	assert.Equal(t, OutcomeExists, last.Outcome)
	assert.Equal(t, "(not overwriting)", last.Detail)

	ok, err = e.Install(true)
	require.NoError(t, err)
	assert.True(t, ok)
	testutil.AssertSymlink(t, h.TargetPath(".foo"), e.LinkTarget())
	testutil.AssertFileContent(t, e.Backup(), "mine")

	last, _ = h.recorder.Last()
	assert.Equal(t, OutcomeOverwrite, last.Outcome)
	assert.Equal(t, "-> "+e.LinkTarget()+" (backup in "+e.Backup()+")", last.Detail)

	ok, err = e.Uninstall()
	require.NoError(t, err)
	assert.True(t, ok)
	testutil.AssertFileContent(t, h.TargetPath(".foo"), "mine")
	assert.False(t, testutil.SymlinkExists(t, h.TargetPath(".foo")))
	testutil.AssertNoFile(t, e.Backup())
}

func TestFileEntry_OverwriteSymlink(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")
	testutil.CreateSymlink(t, "elsewhere", h.TargetPath(".foo"))
	e := h.entry("_foo", nil)

	assert.False(t, e.BlockedBy(e.Target()))

	ok, err := e.Install(true)
	require.NoError(t, err)
	assert.True(t, ok)
	testutil.AssertSymlink(t, e.Backup(), "elsewhere")

	ok, err = e.Uninstall()
	require.NoError(t, err)
	assert.True(t, ok)
	testutil.AssertSymlink(t, h.TargetPath(".foo"), "elsewhere")
}

func TestFileEntry_Skip(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "{{ skip }}never written")
	e := h.entry("_foo", nil)

	require.NoError(t, e.Build(false, false))
	testutil.AssertNoFile(t, e.Output())
	testutil.AssertNoFile(t, e.Org())
	assert.True(t, e.Skipped())
	require.NotNil(t, e.Timestamp())
	assert.True(t, h.now.Equal(*e.Timestamp()))
	assert.False(t, e.Built())

	for _, overwrite := range []bool{false, true} {
		h.recorder.Reset()
		ok, err := e.Install(overwrite)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []Outcome{OutcomeSkipped}, h.recorder.Outcomes())
		testutil.AssertNoFile(t, h.TargetPath(".foo"))
	}

	status, err := e.OutputStatus()
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, status)
	assert.Equal(t, &types.EntryStatus{Skipped: true, Timestamp: e.Timestamp()}, e.Status())
}

func TestFileEntry_SkipRemovesPreviousBuild(t *testing.T) {
	h := newHarness(t)
	src := h.File("_foo", "hi")
	e := h.entry("_foo", nil)

	ok, err := e.Install(false)
	require.NoError(t, err)
	require.True(t, ok)

	testutil.CreateFile(t, h.Repository, "_foo", "{{ skip }}")
	testutil.SetOlder(t, e.Org(), src, time.Minute)
	h.recorder.Reset()

	require.NoError(t, e.Build(false, false))
	testutil.AssertNoFile(t, e.Output())
	testutil.AssertNoFile(t, e.Org())
	testutil.AssertNoFile(t, h.TargetPath(".foo"))
	assert.Equal(t, []Outcome{OutcomeSkipped, OutcomeUninstall}, h.recorder.Outcomes())
}

func TestFileEntry_SkippedBecomesOutdated(t *testing.T) {
	h := newHarness(t)
	src := h.File("_foo", "hi")

	ts := h.now
	status := &types.EntryStatus{Skipped: true, Timestamp: &ts}

	testutil.SetModTime(t, src, ts.Add(-time.Minute))
	assert.False(t, h.entry("_foo", status).Outdated(), "source unchanged since the skip")

	testutil.SetModTime(t, src, ts.Add(time.Minute))
	e := h.entry("_foo", status)
	assert.True(t, e.Outdated(), "source changed since the skip")

	assert.True(t, h.entry("_foo", &types.EntryStatus{Skipped: true}).Outdated(), "no timestamp")

	require.NoError(t, e.Build(false, false))
	assert.False(t, e.Skipped())
	assert.Nil(t, e.Timestamp())
	testutil.AssertFileContent(t, e.Output(), "hi")
}

func TestFileEntry_BuiltAndSkippedIsOutdated(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")

	e := h.entry("_foo", nil)
	require.NoError(t, e.Build(false, false))
	assert.False(t, e.Outdated())

	inconsistent := h.entry("_foo", &types.EntryStatus{Skipped: true})
	assert.True(t, inconsistent.Outdated())

	require.NoError(t, inconsistent.Build(false, false))
	assert.False(t, inconsistent.Skipped())
	assert.False(t, inconsistent.Outdated())
}

func TestFileEntry_BuildIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi {{ .LogicalPath }}")
	e := h.entry("_foo", nil)

	require.NoError(t, e.Build(false, false))
	testutil.AssertFileContent(t, e.Output(), "hi .foo")
	testutil.AssertFileContent(t, e.Org(), "hi .foo")
	status := e.Status()

	require.NoError(t, e.Build(false, false))
	testutil.AssertFileContent(t, e.Output(), "hi .foo")
	testutil.AssertFileContent(t, e.Org(), "hi .foo")
	assert.Equal(t, status, e.Status())

	assert.Equal(t, []Outcome{OutcomeBuilt, OutcomeCurrent}, h.recorder.Outcomes())

	require.NoError(t, e.Build(true, false))
	assert.Equal(t, OutcomeBuilt, h.recorder.Outcomes()[2], "rebuild forces a build")
}

func TestFileEntry_ModificationDetection(t *testing.T) {
	h := newHarness(t)
	src := h.File("_foo", "hi")
	e := h.entry("_foo", nil)

	require.NoError(t, e.Build(false, false))
	modified, err := e.Modified()
	require.NoError(t, err)
	assert.False(t, modified)

	f, err := os.OpenFile(e.Output(), os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write([]byte("!"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	modified, err = e.Modified()
	require.NoError(t, err)
	assert.True(t, modified)

	// Outdated, so install tries to build first, and refuses
	testutil.SetOlder(t, e.Org(), src, time.Minute)
	h.recorder.Reset()

	_, err = e.Install(false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeModified, h.recorder.Outcomes()[0])
	testutil.AssertFileContent(t, e.Output(), "hi!")

	// Overwrite destroys the edit
	require.NoError(t, e.Build(false, true))
	testutil.AssertFileContent(t, e.Output(), "hi")
}

func TestFileEntry_ModifiedFalseWhenIncomplete(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")
	e := h.entry("_foo", nil)

	modified, err := e.Modified()
	require.NoError(t, err)
	assert.False(t, modified)

	require.NoError(t, e.Build(false, false))
	require.NoError(t, os.Remove(e.Org()))

	modified, err = e.Modified()
	require.NoError(t, err)
	assert.False(t, modified)
}

func TestFileEntry_BlockedBy(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")
	e := h.entry("_foo", nil)

	dir := h.Root
	testutil.CreateFile(t, dir, "file", "")
	testutil.CreateDir(t, dir, "dir")
	testutil.CreateSymlink(t, "file", filepath.Join(dir, "link-file"))
	testutil.CreateSymlink(t, "dir", filepath.Join(dir, "link-dir"))
	testutil.CreateSymlink(t, "missing", filepath.Join(dir, "link-dangling"))

	tests := map[string]bool{
		"missing":       false,
		"file":          false,
		"dir":           true,
		"link-file":     false,
		"link-dir":      false,
		"link-dangling": false,
	}
	for name, blocked := range tests {
		assert.Equal(t, blocked, e.BlockedBy(filepath.Join(dir, name)), name)
	}
}

func TestFileEntry_InstallBlocked(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")
	testutil.CreateDir(t, h.Target, ".foo")
	e := h.entry("_foo", nil)

	for _, overwrite := range []bool{false, true} {
		ok, err := e.Install(overwrite)
		require.NoError(t, err)
		assert.False(t, ok)
		last, _ := h.recorder.Last()
		assert.Equal(t, OutcomeBlocked, last.Outcome)
	}
	assert.True(t, testutil.DirExists(t, h.TargetPath(".foo")))
}

func TestFileEntry_InstalledIgnoresMissingOutput(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")
	e := h.entry("_foo", nil)

	testutil.CreateSymlink(t, e.LinkTarget(), e.Target())
	assert.True(t, e.Installed(), "dangling but exact")

	require.NoError(t, os.Remove(e.Target()))
	testutil.CreateSymlink(t, e.Output(), e.Target())
	assert.False(t, e.Installed(), "absolute value does not match")
}

func TestFileEntry_ReplacedAndRemoved(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")
	h.TargetFile(".foo", "mine")
	e := h.entry("_foo", nil)

	ok, err := e.Install(true)
	require.NoError(t, err)
	require.True(t, ok)

	// The user replaces the symlink
	require.NoError(t, os.Remove(e.Target()))
	h.TargetFile(".foo", "theirs")

	ok, err = e.Install(false)
	require.NoError(t, err)
	assert.False(t, ok)
	last, _ := h.recorder.Last()
	assert.Equal(t, OutcomeReplaced, last.Outcome)

	ok, err = e.Uninstall()
	require.NoError(t, err)
	assert.False(t, ok)
	last, _ = h.recorder.Last()
	assert.Equal(t, OutcomeReplaced, last.Outcome)
	testutil.AssertFileContent(t, e.Backup(), "mine")
	testutil.AssertFileContent(t, e.Target(), "theirs")

	// The user removes it
	require.NoError(t, os.Remove(e.Target()))

	ok, err = e.Uninstall()
	require.NoError(t, err)
	assert.False(t, ok)
	last, _ = h.recorder.Last()
	assert.Equal(t, OutcomeRemoved, last.Outcome)
	testutil.AssertFileContent(t, e.Backup(), "mine")

	// Install restores it
	ok, err = e.Install(false)
	require.NoError(t, err)
	assert.True(t, ok)
	last, _ = h.recorder.Last()
	assert.Equal(t, OutcomeRestored, last.Outcome)
	assert.True(t, e.Installed())

	ok, err = e.Uninstall()
	require.NoError(t, err)
	assert.True(t, ok)
	testutil.AssertFileContent(t, e.Target(), "mine")
}

func TestFileEntry_UninstallNotInstalled(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")
	e := h.entry("_foo", nil)

	ok, err := e.Uninstall()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []Outcome{OutcomeNotInstalled}, h.recorder.Outcomes())
}

func TestFileEntry_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, h *harness)
	}{
		{name: "absent", setup: func(t *testing.T, h *harness) {}},
		{name: "file", setup: func(t *testing.T, h *harness) { h.TargetFile("sub/.foo", "mine") }},
		{name: "symlink", setup: func(t *testing.T, h *harness) {
			testutil.CreateSymlink(t, "../elsewhere", h.TargetPath("sub/.foo"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.File("sub/_foo", "hi")
			tt.setup(t, h)
			e := h.entry("sub/_foo", nil)

			before := describe(t, e.Target())

			ok, err := e.Install(true)
			require.NoError(t, err)
			require.True(t, ok)
			require.True(t, e.Installed())

			ok, err = e.Uninstall()
			require.NoError(t, err)
			require.True(t, ok)

			assert.Equal(t, before, describe(t, e.Target()))
			testutil.AssertNoFile(t, e.Backup())
		})
	}
}

func TestFileEntry_PreservesMode(t *testing.T) {
	h := newHarness(t)
	src := h.File("_script", "#!/bin/sh\n")
	require.NoError(t, os.Chmod(src, 0755))
	e := h.entry("_script", nil)

	require.NoError(t, e.Build(false, false))

	info, err := os.Stat(e.Output())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestFileEntry_TemplateErrorAborts(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "{{ .Nope")
	e := h.entry("_foo", nil)

	assert.Error(t, e.Build(false, false))
	assert.False(t, e.Built())
	assert.Empty(t, h.recorder.Outcomes())
}

func TestFileEntry_Preconditions(t *testing.T) {
	h := newHarness(t)
	h.File("_foo", "hi")
	h.TargetFile(".foo", "mine")
	e := h.entry("_foo", nil).(*FileEntry)

	assert.Panics(t, func() { _ = e.forceInstall() }, "target exists")
	assert.Panics(t, func() { _ = e.forceUninstall() }, "not installed")

	testutil.CreateFile(t, filepath.Dir(e.Backup()), filepath.Base(e.Backup()), "old")
	assert.Panics(t, func() { _ = e.forceInstallOverwrite() }, "backup exists")

	testutil.AssertFileContent(t, e.Target(), "mine")
}

// describe summarizes what is at path for before/after comparisons
func describe(t *testing.T, path string) string {
	t.Helper()

	switch {
	case testutil.SymlinkExists(t, path):
		return "symlink " + testutil.ReadSymlink(t, path)
	case testutil.FileExists(t, path):
		return "file " + testutil.ReadFile(t, path)
	case testutil.DirExists(t, path):
		return "dir"
	default:
		return "absent"
	}
}
