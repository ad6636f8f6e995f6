package style

import (
	"github.com/pterm/pterm"
)

// StatusHeader is the first row of the status table
var StatusHeader = []string{"Type", "Output", "Target", "Path"}

// RenderStatusTable renders status rows (type, output status, target status,
// logical path) as a table with a header
func RenderStatusTable(rows [][]string) (string, error) {
	data := pterm.TableData{StatusHeader}
	for _, row := range rows {
		styled := make([]string, len(row))
		copy(styled, row)
		for _, i := range []int{1, 2} {
			if i < len(styled) {
				styled[i] = StatusStyle(styled[i]).Render(styled[i])
			}
		}
		data = append(data, styled)
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithSeparator("  ").
		WithData(data).
		Srender()
}
