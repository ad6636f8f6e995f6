package repository

import (
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/filesystem"
	"github.com/arthur-debert/coffle/pkg/types"
)

// TargetMarker is written into the target directory after each run
const TargetMarker = ".coffle_target.yaml"

// TargetStatusFile returns the path of the target marker
func (r *Repository) TargetStatusFile() string {
	return filepath.Join(r.targetDir, TargetMarker)
}

// WriteTargetStatus records in the target directory that coffle deploys
// into it. Nothing is written if the target directory is gone.
func (r *Repository) WriteTargetStatus() error {
	if !filesystem.IsDirectory(r.fs, r.targetDir) {
		return nil
	}

	data, err := yaml.Marshal(types.TargetStatus{Version: types.TargetVersion})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode target status")
	}

	path := r.TargetStatusFile()
	if err := r.fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path)
	}
	return nil
}

// ReadTargetStatus reads the target marker. It returns nil if there is none.
func (r *Repository) ReadTargetStatus() (*types.TargetStatus, error) {
	path := r.TargetStatusFile()
	if !filesystem.Present(r.fs, path) {
		return nil, nil
	}

	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).WithDetail("path", path)
	}

	root, _, err := parseVersioned(data, path, types.TargetVersion, statusCodes)
	if err != nil {
		return nil, err
	}

	var status types.TargetStatus
	if err := root.Decode(&status); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStatusCorrupt, "%s is corrupt", path).WithDetail("path", path)
	}
	return &status, nil
}
