// Package types defines the core types and interfaces used throughout coffle.
// This includes the FS interface every filesystem operation goes through and
// the records persisted between runs: the repository configuration, the
// per-entry status and the status document that holds them.
package types
