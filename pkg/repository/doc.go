// Package repository drives entries in bulk.
//
// A repository is a directory with a .coffle_source.yaml marker. Its work
// area lives under .coffle/work:
//
//	output/      rendered files, what installed symlinks point to
//	org/         a second copy of each rendered file, to detect edits
//	backup/      whatever occupied a target before an overwriting install
//	status.yaml  skip state per logical path
//
// Entries are scanned afresh on every run. Build and install walk them in
// scan order so that directories come before their contents; uninstall
// walks them in reverse.
package repository
