package repository

import (
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/coffle/pkg/errors"
)

// versionCodes are the error codes reported for each way a versioned
// document can be unusable
type versionCodes struct {
	corrupt    errors.ErrorCode
	notRecord  errors.ErrorCode
	missing    errors.ErrorCode
	notInteger errors.ErrorCode
	tooNew     errors.ErrorCode
}

var configCodes = versionCodes{
	corrupt:    errors.ErrConfigCorrupt,
	notRecord:  errors.ErrConfigNotRecord,
	missing:    errors.ErrVersionMissing,
	notInteger: errors.ErrVersionNotInteger,
	tooNew:     errors.ErrVersionTooNew,
}

var statusCodes = versionCodes{
	corrupt:    errors.ErrStatusCorrupt,
	notRecord:  errors.ErrStatusCorrupt,
	missing:    errors.ErrStatusVersion,
	notInteger: errors.ErrStatusVersion,
	tooNew:     errors.ErrStatusVersion,
}

// parseVersioned parses data as a YAML mapping with an integer version no
// newer than supported and returns the mapping node for decoding
func parseVersioned(data []byte, path string, supported int, codes versionCodes) (*yaml.Node, int, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, 0, errors.Wrapf(err, codes.corrupt, "%s is corrupt", path).WithDetail("path", path)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, 0, errors.Newf(codes.notRecord, "%s does not contain a mapping", path).WithDetail("path", path)
	}
	root := doc.Content[0]

	var value *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "version" {
			value = root.Content[i+1]
			break
		}
	}
	if value == nil {
		return nil, 0, errors.Newf(codes.missing, "%s has no version", path).WithDetail("path", path)
	}

	var version int
	if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!int" || value.Decode(&version) != nil {
		return nil, 0, errors.Newf(codes.notInteger, "version in %s is not an integer: %q", path, value.Value).
			WithDetail("path", path)
	}

	if version > supported {
		return nil, 0, errors.Newf(codes.tooNew, "%s has version %d, this coffle supports up to %d", path, version, supported).
			WithDetails(map[string]interface{}{"path": path, "version": version, "supported": supported})
	}

	return root, version, nil
}
