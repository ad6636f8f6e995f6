package types

import "time"

// StatusVersion is the version of the status document this build writes and
// the newest one it can read
const StatusVersion = 1

// RepositoryVersion is the newest repository configuration version supported
const RepositoryVersion = 1

// TargetVersion is the version written to the target status file
const TargetVersion = 1

// EntryStatus is the part of an entry's state that cannot be derived from
// the filesystem. A nil *EntryStatus means "not skipped".
type EntryStatus struct {
	// Skipped is true if the renderer declined to produce content on the
	// last build
	Skipped bool `yaml:"skipped,omitempty"`

	// Timestamp is the time of the last build that was skipped. A skipped
	// build leaves no org file to compare the source against.
	Timestamp *time.Time `yaml:"timestamp,omitempty"`
}

// IsZero reports whether the status carries no information and can be
// omitted from the status document
func (s *EntryStatus) IsZero() bool {
	return s == nil || (!s.Skipped && s.Timestamp == nil)
}

// StatusDocument is the persisted status file, keyed by logical path
type StatusDocument struct {
	Version int                     `yaml:"version"`
	Entries map[string]*EntryStatus `yaml:"entries"`
}

// RepositoryConfig is the content of the repository marker file
type RepositoryConfig struct {
	Version int `yaml:"version"`
}

// TargetStatus is the content of the file written into the target directory
type TargetStatus struct {
	Version int `yaml:"version"`
}
