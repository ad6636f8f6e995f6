package repository

import (
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/filesystem"
	"github.com/arthur-debert/coffle/pkg/types"
)

// loadStatus reads the status document at path. A missing file is an empty
// document.
func loadStatus(fsys types.FS, path string) (*types.StatusDocument, error) {
	doc := &types.StatusDocument{
		Version: types.StatusVersion,
		Entries: map[string]*types.EntryStatus{},
	}

	if !filesystem.Present(fsys, path) {
		return doc, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).WithDetail("path", path)
	}

	root, _, err := parseVersioned(data, path, types.StatusVersion, statusCodes)
	if err != nil {
		return nil, err
	}

	if err := root.Decode(doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStatusCorrupt, "%s is corrupt", path).WithDetail("path", path)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]*types.EntryStatus{}
	}
	return doc, nil
}

// saveStatus writes doc to path. Entries without anything to persist are
// left out.
func saveStatus(fsys types.FS, path string, doc *types.StatusDocument) error {
	out := types.StatusDocument{
		Version: types.StatusVersion,
		Entries: make(map[string]*types.EntryStatus, len(doc.Entries)),
	}

	for key, status := range doc.Entries {
		if !status.IsZero() {
			out.Entries[key] = status
		}
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode status")
	}

	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path)
	}
	return nil
}
