package entry

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/filename"
	"github.com/arthur-debert/coffle/pkg/filesystem"
	"github.com/arthur-debert/coffle/pkg/logging"
	"github.com/arthur-debert/coffle/pkg/template"
	"github.com/arthur-debert/coffle/pkg/types"
)

// Output status values, in order of precedence
const (
	StatusError      = "Error"
	StatusSkipped    = "Skipped"
	StatusNotBuilt   = "Not built"
	StatusOrgMissing = "org missing"
	StatusModified   = "Modified"
	StatusOutdated   = "Outdated"
	StatusCurrent    = "Current"
)

// Target status values
const (
	StatusInstalled    = "Installed"
	StatusBlocked      = "Blocked"
	StatusNotInstalled = "Not installed"
)

// Entry types as shown in the status table
const (
	TypeFile      = "File"
	TypeDirectory = "Dir"
)

// Entry is one managed source path. It is either a *FileEntry or a
// *DirectoryEntry.
//
// Every query is answered from the filesystem at the time of the call.
// Only Skipped and Timestamp are carried over from the previous run.
type Entry interface {
	// Path is the escaped path relative to the repository
	Path() string
	// LogicalPath is the unescaped path relative to the target directory
	LogicalPath() string
	Type() string

	Source() string
	Output() string
	Org() string
	Target() string
	Backup() string

	// LinkTarget is the exact value an installed file symlink contains
	LinkTarget() string

	Skipped() bool
	Timestamp() *time.Time

	// Status returns the persisted part of the entry state, nil if there is
	// nothing to persist
	Status() *types.EntryStatus

	Built() bool
	Installed() bool
	Outdated() bool
	Modified() (bool, error)
	BlockedBy(path string) bool

	OutputStatus() (string, error)
	TargetStatus() string

	Build(rebuild, overwrite bool) error
	Install(overwrite bool) (bool, error)
	Uninstall() (bool, error)
}

// Layout holds the absolute roots entry paths are derived from
type Layout struct {
	RepositoryDir string
	OutputDir     string
	OrgDir        string
	TargetDir     string
	BackupDir     string
}

// Options carries the collaborators of an entry
type Options struct {
	FS       types.FS
	Renderer template.Renderer
	Reporter Reporter

	// Now is the clock used for the skip timestamp
	Now func() time.Time
}

// base holds what file and directory entries share
type base struct {
	path        string
	logicalPath string

	source     string
	output     string
	org        string
	target     string
	backup     string
	linkTarget string

	skipped   bool
	timestamp *time.Time

	fs       types.FS
	renderer template.Renderer
	reporter Reporter
	now      func() time.Time
}

// lifecycle is implemented by both variants. The shared build, install and
// uninstall decisions are written against it; the unconditional steps are
// variant specific.
type lifecycle interface {
	Entry

	common() *base
	createDescription() string

	// The unconditional steps check nothing but their own preconditions,
	// which panic when violated.
	forceBuild() error
	forceInstall() error
	forceInstallOverwrite() error
	forceUninstall() error
}

// New creates the entry for path (escaped, relative to the repository
// root). The source is probed once: a proper file yields a *FileEntry, a
// proper directory a *DirectoryEntry. Anything else, such as a symlink,
// yields nil.
func New(layout Layout, path string, status *types.EntryStatus, opts Options) (Entry, error) {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Renderer == nil {
		opts.Renderer = template.NewTemplateRenderer(template.Options{})
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logical := filename.UnescapePath(path)
	b := &base{
		path:        path,
		logicalPath: logical,
		source:      filepath.Join(layout.RepositoryDir, path),
		output:      filepath.Join(layout.OutputDir, logical),
		org:         filepath.Join(layout.OrgDir, logical),
		target:      filepath.Join(layout.TargetDir, logical),
		backup:      filepath.Join(layout.BackupDir, logical),
		fs:          opts.FS,
		renderer:    opts.Renderer,
		reporter:    opts.Reporter,
		now:         opts.Now,
	}

	linkTarget, err := filepath.Rel(filepath.Dir(b.target), b.output)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to compute link target for %s", path)
	}
	b.linkTarget = linkTarget

	if status != nil {
		b.skipped = status.Skipped
		if status.Timestamp != nil {
			ts := *status.Timestamp
			b.timestamp = &ts
		}
	}

	switch {
	case filesystem.ProperFile(opts.FS, b.source):
		return &FileEntry{base: b}, nil
	case filesystem.ProperDirectory(opts.FS, b.source):
		return &DirectoryEntry{base: b}, nil
	default:
		return nil, nil
	}
}

func (b *base) common() *base { return b }

func (b *base) Path() string          { return b.path }
func (b *base) LogicalPath() string   { return b.logicalPath }
func (b *base) Source() string        { return b.source }
func (b *base) Output() string        { return b.output }
func (b *base) Org() string           { return b.org }
func (b *base) Target() string        { return b.target }
func (b *base) Backup() string        { return b.backup }
func (b *base) LinkTarget() string    { return b.linkTarget }
func (b *base) Skipped() bool         { return b.skipped }
func (b *base) Timestamp() *time.Time { return b.timestamp }

func (b *base) Status() *types.EntryStatus {
	status := &types.EntryStatus{Skipped: b.skipped}
	if b.timestamp != nil {
		ts := *b.timestamp
		status.Timestamp = &ts
	}
	if status.IsZero() {
		return nil
	}
	return status
}

func (b *base) report(outcome Outcome, path, detail string) {
	b.reporter.Report(Event{Outcome: outcome, Path: path, Detail: detail})
}

// preconditionFailed aborts: an unconditional step was called in a state the
// caller should have ruled out
func preconditionFailed(format string, args ...interface{}) {
	panic(errors.Newf(errors.ErrPrecondition, format, args...))
}

// outputStatus classifies the build state
//
//	source | skipped | output | org || status
//	-------+---------+--------+-----++-------------------------------
//	no     | -       | -      | -   || Error
//	yes    | yes     | -      | -   || Skipped
//	yes    | no      | no     | -   || Not built
//	yes    | no      | yes    | no  || org missing (edits undetectable)
//	yes    | no      | yes    | yes || Modified, Outdated or Current
//
// Modified wins over Outdated: it is what the user needs to act on.
func outputStatus(e lifecycle) (string, error) {
	b := e.common()
	switch {
	case !filesystem.Exists(b.fs, b.source):
		return StatusError, nil
	case e.Skipped():
		return StatusSkipped, nil
	case !filesystem.Exists(b.fs, b.output):
		return StatusNotBuilt, nil
	case !filesystem.Exists(b.fs, b.org):
		return StatusOrgMissing, nil
	}

	modified, err := e.Modified()
	if err != nil {
		return "", err
	}

	switch {
	case modified:
		return StatusModified, nil
	case e.Outdated():
		return StatusOutdated, nil
	default:
		return StatusCurrent, nil
	}
}

func targetStatus(e lifecycle) string {
	b := e.common()
	switch {
	case e.Installed():
		return StatusInstalled
	case filesystem.Present(b.fs, b.target):
		return StatusBlocked
	default:
		return StatusNotInstalled
	}
}

// doBuild builds unconditionally and reports the result. A build that ends
// up skipped takes the entry out of the target.
func doBuild(e lifecycle) error {
	b := e.common()
	if err := e.forceBuild(); err != nil {
		return err
	}

	if !e.Skipped() {
		b.report(OutcomeBuilt, b.output, "")
		return nil
	}

	b.report(OutcomeSkipped, b.output, "")
	if e.Installed() {
		if _, err := uninstall(e); err != nil {
			return err
		}
	}
	return nil
}

// build rebuilds outdated entries. A modified output is only overwritten
// when overwrite is set; otherwise the user's edits are left alone.
func build(e lifecycle, rebuild, overwrite bool) error {
	b := e.common()
	logger := logging.GetLogger("entry")

	modified, err := e.Modified()
	if err != nil {
		return err
	}

	switch {
	case modified:
		if !overwrite {
			b.report(OutcomeModified, b.output, "")
			return nil
		}
		logger.Debug().Str("path", b.path).Msg("overwriting modified output")
		return doBuild(e)
	case e.Outdated() || rebuild:
		return doBuild(e)
	default:
		b.report(OutcomeCurrent, b.output, "")
		return nil
	}
}

// install brings the entry into the installed (or skipped) state. It
// returns false when it refused.
func install(e lifecycle, overwrite bool) (bool, error) {
	b := e.common()

	if e.Outdated() {
		if err := build(e, false, false); err != nil {
			return false, err
		}
	}

	blocker := filesystem.BlockingAncestor(b.fs, b.target)

	switch {
	case e.Skipped():
		// Skipped entries are never installed
		b.report(OutcomeSkipped, b.target, "")
		return true, nil

	case e.Installed():
		b.report(OutcomeCurrent, b.target, "")
		return true, nil

	case blocker != "":
		// A file where a parent directory should be, typically left there
		// after the parent entry was refused
		b.report(OutcomeBlocked, b.target, fmt.Sprintf("(%s is not a directory)", blocker))
		return false, nil

	case filesystem.Present(b.fs, b.backup):
		// Installed once before, but not any more: the user replaced or
		// removed what we installed
		if filesystem.Present(b.fs, b.target) {
			b.report(OutcomeReplaced, b.target, "")
			return false, nil
		}
		b.report(OutcomeRestored, b.target, "")
		if err := e.forceInstall(); err != nil {
			return false, err
		}
		return true, nil

	case !filesystem.Present(b.fs, b.target):
		b.report(OutcomeInstall, b.target, e.createDescription())
		if err := e.forceInstall(); err != nil {
			return false, err
		}
		return true, nil

	case e.BlockedBy(b.target):
		b.report(OutcomeBlocked, b.target, "")
		return false, nil

	case !overwrite:
		b.report(OutcomeExists, b.target, "(not overwriting)")
		return false, nil

	default:
		b.report(OutcomeOverwrite, b.target, fmt.Sprintf("%s (backup in %s)", e.createDescription(), b.backup))
		if err := e.forceInstallOverwrite(); err != nil {
			return false, err
		}
		return true, nil
	}
}

// uninstall removes the installed entry and restores a backup. It returns
// false, leaving the backup alone, when the target was tampered with.
func uninstall(e lifecycle) (bool, error) {
	b := e.common()

	switch {
	case e.Installed():
		b.report(OutcomeUninstall, b.target, "")
		if err := e.forceUninstall(); err != nil {
			return false, err
		}
		return true, nil

	case filesystem.Present(b.fs, b.backup):
		if filesystem.Present(b.fs, b.target) {
			b.report(OutcomeReplaced, b.target, "")
		} else {
			b.report(OutcomeRemoved, b.target, "")
		}
		return false, nil

	default:
		b.report(OutcomeNotInstalled, b.target, "")
		return true, nil
	}
}

// SimpleStatus formats the status of e on one line: type, output status,
// target status and logical path
func SimpleStatus(e Entry) (string, error) {
	row, err := StatusRow(e)
	if err != nil {
		return "", err
	}
	return strings.Join(row, " "), nil
}

// StatusRow returns the status table columns for e
func StatusRow(e Entry) ([]string, error) {
	output, err := e.OutputStatus()
	if err != nil {
		return nil, err
	}
	return []string{e.Type(), output, e.TargetStatus(), e.LogicalPath()}, nil
}

// wrapFS attaches the path to a filesystem error. A missing path or a
// permission problem gets its own code whatever the operation.
func wrapFS(err error, code errors.ErrorCode, op, path string) error {
	if err == nil {
		return nil
	}
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		code = errors.ErrFileNotFound
	case stderrors.Is(err, fs.ErrPermission):
		code = errors.ErrPermission
	}
	return errors.Wrapf(err, code, "failed to %s %s", op, path).WithDetail("path", path)
}
