package repository

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/filesystem"
	"github.com/arthur-debert/coffle/pkg/logging"
	"github.com/arthur-debert/coffle/pkg/types"
)

// SourceMarker is the file identifying a repository. The repository was once
// called the source directory, hence the name.
const SourceMarker = ".coffle_source.yaml"

// ConfigFile returns the marker path for dir
func ConfigFile(dir string) string {
	return filepath.Join(dir, SourceMarker)
}

// IsRepository reports whether dir contains a marker file
func IsRepository(dir string) bool {
	return filesystem.IsFile(filesystem.NewOS(), ConfigFile(dir))
}

// Initialize turns dir into a repository. It returns false, touching
// nothing, if dir already is one.
func Initialize(dir string) (bool, error) {
	logger := logging.GetLogger("repository")

	if IsRepository(dir) {
		logger.Debug().Str("dir", dir).Msg("already a repository")
		return false, nil
	}

	data, err := yaml.Marshal(types.RepositoryConfig{Version: types.RepositoryVersion})
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to encode repository configuration")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).WithDetail("path", dir)
	}

	path := ConfigFile(dir)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path)
	}

	logger.Info().Str("dir", dir).Int("version", types.RepositoryVersion).Msg("initialized repository")
	return true, nil
}

// readConfig reads and validates the marker file of dir
func readConfig(fsys types.FS, dir string) (*types.RepositoryConfig, error) {
	if !filesystem.IsFile(fsys, ConfigFile(dir)) {
		return nil, errors.Newf(errors.ErrNotRepository, "%s is not a coffle repository", dir).WithDetail("path", dir)
	}

	path := ConfigFile(dir)
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).WithDetail("path", path)
	}

	root, _, err := parseVersioned(data, path, types.RepositoryVersion, configCodes)
	if err != nil {
		return nil, err
	}

	var config types.RepositoryConfig
	if err := root.Decode(&config); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigCorrupt, "%s is corrupt", path).WithDetail("path", path)
	}
	return &config, nil
}
