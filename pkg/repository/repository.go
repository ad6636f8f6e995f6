package repository

import (
	"io"
	"path/filepath"
	"time"

	"github.com/arthur-debert/coffle/pkg/entry"
	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/filesystem"
	"github.com/arthur-debert/coffle/pkg/ignore"
	"github.com/arthur-debert/coffle/pkg/logging"
	"github.com/arthur-debert/coffle/pkg/template"
	"github.com/arthur-debert/coffle/pkg/types"
)

// Work area layout, relative to the repository
const (
	CoffleDir  = ".coffle"
	WorkDir    = "work"
	OutputDir  = "output"
	OrgDir     = "org"
	BackupDir  = "backup"
	StatusFile = "status.yaml"
)

// Options configures a Repository. Zero values select the defaults.
type Options struct {
	FS       types.FS
	Renderer template.Renderer
	Reporter entry.Reporter

	// Verbose prints a header line before each bulk operation to Out
	Verbose bool
	Out     io.Writer

	Now func() time.Time
}

// Repository is a source tree deployed into a target directory
type Repository struct {
	repositoryDir string
	targetDir     string
	coffleDir     string
	workDir       string
	outputDir     string
	orgDir        string
	backupDir     string
	statusFile    string

	fs       types.FS
	renderer template.Renderer
	reporter entry.Reporter
	verbose  bool
	out      io.Writer
	now      func() time.Time

	status  *types.StatusDocument
	ignore  *ignore.List
	entries []entry.Entry
	scanned bool
}

// New opens the repository at repositoryDir for deployment into targetDir.
// It fails before creating anything if repositoryDir is not a repository or
// its configuration or status file is unusable, and before touching any
// entry if the work area is in the way. The target directory is created if
// needed.
func New(repositoryDir, targetDir string, opts Options) (*Repository, error) {
	logger := logging.GetLogger("repository")

	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Renderer == nil {
		opts.Renderer = template.NewTemplateRenderer(template.Options{})
	}
	if opts.Reporter == nil {
		opts.Reporter = entry.ReporterFunc(func(entry.Event) {})
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	fsys := opts.FS

	repositoryDir, err := filepath.Abs(repositoryDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid repository path %s", repositoryDir)
	}
	targetDir, err = filepath.Abs(targetDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid target path %s", targetDir)
	}

	if _, err := readConfig(fsys, repositoryDir); err != nil {
		return nil, err
	}

	// Everything that can refuse the repository is read before anything is
	// created
	statusFile := filepath.Join(repositoryDir, CoffleDir, WorkDir, StatusFile)
	if filesystem.NonFile(fsys, statusFile) {
		return nil, errors.Newf(errors.ErrLayoutInvalid, "status file %s is not a file", statusFile).
			WithDetail("path", statusFile)
	}
	status, err := loadStatus(fsys, statusFile)
	if err != nil {
		return nil, err
	}
	ignoreList, err := ignore.Load(fsys, filepath.Join(repositoryDir, ignore.FileName))
	if err != nil {
		return nil, err
	}

	if err := fsys.MkdirAll(targetDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create target %s", targetDir).
			WithDetail("path", targetDir)
	}

	// Entry paths are derived from the resolved roots, so that link targets
	// are relative between real locations
	if repositoryDir, err = filepath.EvalSymlinks(repositoryDir); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", repositoryDir)
	}
	if targetDir, err = filepath.EvalSymlinks(targetDir); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", targetDir)
	}

	r := &Repository{
		repositoryDir: repositoryDir,
		targetDir:     targetDir,
		coffleDir:     filepath.Join(repositoryDir, CoffleDir),
		fs:            fsys,
		renderer:      opts.Renderer,
		reporter:      opts.Reporter,
		verbose:       opts.Verbose,
		out:           opts.Out,
		now:           opts.Now,
		status:        status,
		ignore:        ignoreList,
	}
	r.workDir = filepath.Join(r.coffleDir, WorkDir)
	r.outputDir = filepath.Join(r.workDir, OutputDir)
	r.orgDir = filepath.Join(r.workDir, OrgDir)
	r.backupDir = filepath.Join(r.workDir, BackupDir)
	r.statusFile = filepath.Join(r.workDir, StatusFile)

	for _, dir := range []string{r.outputDir, r.orgDir} {
		// Left for validateLayout to report
		if filesystem.NonDirectory(fsys, dir) {
			continue
		}
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).WithDetail("path", dir)
		}
	}

	if err := r.validateLayout(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("repository", r.repositoryDir).
		Str("target", r.targetDir).
		Int("statusEntries", len(r.status.Entries)).
		Msg("opened repository")

	return r, nil
}

// validateLayout checks that every work location is usable: the ones that
// must exist are directories, the backup is not in the way
func (r *Repository) validateLayout() error {
	mustBeDirectory := []struct{ name, path string }{
		{"repository", r.repositoryDir},
		{"target", r.targetDir},
		{"coffle", r.coffleDir},
		{"work", r.workDir},
		{"output", r.outputDir},
		{"org", r.orgDir},
	}
	for _, loc := range mustBeDirectory {
		if !filesystem.IsDirectory(r.fs, loc.path) {
			return errors.Newf(errors.ErrLayoutInvalid, "%s location %s is not a directory", loc.name, loc.path).
				WithDetail("path", loc.path)
		}
	}

	if filesystem.NonDirectory(r.fs, r.backupDir) {
		return errors.Newf(errors.ErrLayoutInvalid, "backup location %s is not a directory", r.backupDir).
			WithDetail("path", r.backupDir)
	}
	return nil
}

// Layout returns the roots entries derive their paths from
func (r *Repository) Layout() entry.Layout {
	return entry.Layout{
		RepositoryDir: r.repositoryDir,
		OutputDir:     r.outputDir,
		OrgDir:        r.orgDir,
		TargetDir:     r.targetDir,
		BackupDir:     r.backupDir,
	}
}

func (r *Repository) RepositoryDir() string { return r.repositoryDir }
func (r *Repository) TargetDir() string     { return r.targetDir }
func (r *Repository) OutputDir() string     { return r.outputDir }
func (r *Repository) OrgDir() string        { return r.orgDir }
func (r *Repository) BackupDir() string     { return r.backupDir }
func (r *Repository) StatusFile() string    { return r.statusFile }
