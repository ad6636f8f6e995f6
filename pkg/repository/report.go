package repository

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/arthur-debert/coffle/pkg/entry"
	"github.com/arthur-debert/coffle/pkg/errors"
)

// Labels of the two sides of a diff
const (
	DiffOriginalLabel = "original"
	DiffModifiedLabel = "modified"
)

var diffRule = strings.Repeat("=", 80)

// Info writes the locations the repository works with
func (r *Repository) Info(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Repository: %s\n", r.repositoryDir)
	_, _ = fmt.Fprintf(w, "Target:     %s\n", r.targetDir)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Output:     %s\n", r.outputDir)
	_, _ = fmt.Fprintf(w, "Org:        %s\n", r.orgDir)
	_, _ = fmt.Fprintf(w, "Backup:     %s\n", r.backupDir)
}

// StatusTable returns one row per entry: type, output status, target status
// and logical path
func (r *Repository) StatusTable() ([][]string, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row, err := entry.StatusRow(e)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Diff writes a unified diff between org and output for every modified
// entry, i.e. the edits the user made to built files
func (r *Repository) Diff(w io.Writer) error {
	entries, err := r.Entries()
	if err != nil {
		return err
	}

	for _, e := range entries {
		modified, err := e.Modified()
		if err != nil {
			return err
		}
		if !modified {
			continue
		}

		original, err := r.fs.ReadFile(e.Org())
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", e.Org()).WithDetail("path", e.Org())
		}
		edited, err := r.fs.ReadFile(e.Output())
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", e.Output()).WithDetail("path", e.Output())
		}

		_, _ = fmt.Fprintln(w, diffRule)
		_, _ = fmt.Fprintf(w, "== %s (%s)\n", e.LogicalPath(), e.Path())
		_, _ = fmt.Fprintln(w, diffRule)

		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(original)),
			B:        difflib.SplitLines(string(edited)),
			FromFile: DiffOriginalLabel,
			ToFile:   DiffModifiedLabel,
			Context:  3,
		}
		if err := difflib.WriteUnifiedDiff(w, diff); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to write diff")
		}
	}
	return nil
}
