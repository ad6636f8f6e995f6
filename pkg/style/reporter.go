package style

import (
	"fmt"
	"io"

	"github.com/arthur-debert/coffle/pkg/entry"
)

// LabelWidth is the column the path starts in
const LabelWidth = 15

// Printer is an entry.Reporter writing one line per event
type Printer struct {
	w io.Writer
}

var _ entry.Reporter = (*Printer)(nil)

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Report writes the event as "<label> <path>[ <detail>]"
func (p *Printer) Report(e entry.Event) {
	_, _ = fmt.Fprintln(p.w, FormatEvent(e))
}

// FormatEvent styles an event line. The label is padded before styling so
// that paths line up.
func FormatEvent(e entry.Event) string {
	label := fmt.Sprintf("%-*s", LabelWidth, e.Outcome.String())
	line := OutcomeStyle(e.Outcome).Render(label) + PathStyle.Render(e.Path)
	if e.Detail != "" {
		line += " " + e.Detail
	}
	return line
}
