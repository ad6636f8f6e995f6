package entry

import "fmt"

// Outcome classifies what an entry action did or refused to do. Refusals are
// outcomes, not errors: a bulk operation reports them and moves on.
type Outcome int

const (
	OutcomeBuilt Outcome = iota
	OutcomeSkipped
	OutcomeCurrent
	OutcomeModified
	OutcomeInstall
	OutcomeOverwrite
	OutcomeExists
	OutcomeBlocked
	OutcomeReplaced
	OutcomeRestored
	OutcomeRemoved
	OutcomeUninstall
	OutcomeNotInstalled
)

var outcomeLabels = map[Outcome]string{
	OutcomeBuilt:        "Built",
	OutcomeSkipped:      "Skipped",
	OutcomeCurrent:      "Current",
	OutcomeModified:     "Modified",
	OutcomeInstall:      "Installing",
	OutcomeOverwrite:    "Overwrite",
	OutcomeExists:       "Exists",
	OutcomeBlocked:      "Blocked",
	OutcomeReplaced:     "Replaced",
	OutcomeRestored:     "Restored",
	OutcomeRemoved:      "Removed",
	OutcomeUninstall:    "Uninstalling",
	OutcomeNotInstalled: "Not installed",
}

// String returns the label printed in front of the path
func (o Outcome) String() string {
	if label, ok := outcomeLabels[o]; ok {
		return label
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Refusal reports whether the outcome leaves the entry short of the state
// the action asked for
func (o Outcome) Refusal() bool {
	switch o {
	case OutcomeModified, OutcomeExists, OutcomeBlocked, OutcomeReplaced, OutcomeRemoved:
		return true
	}
	return false
}

// Event is one reported line: an outcome for a path, with optional detail
// such as the link target or the backup location
type Event struct {
	Outcome Outcome
	Path    string
	Detail  string
}

// String formats the event the way it is printed
func (e Event) String() string {
	if e.Detail == "" {
		return fmt.Sprintf("%-15s%s", e.Outcome, e.Path)
	}
	return fmt.Sprintf("%-15s%s %s", e.Outcome, e.Path, e.Detail)
}

// Reporter receives one event per entry action
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(Event)

// Report calls f(e)
func (f ReporterFunc) Report(e Event) { f(e) }

// nopReporter drops every event
type nopReporter struct{}

func (nopReporter) Report(Event) {}

// Recorder is a Reporter that keeps every event
type Recorder struct {
	Events []Event
}

// Report appends e
func (r *Recorder) Report(e Event) {
	r.Events = append(r.Events, e)
}

// Outcomes returns the outcomes recorded so far, in order
func (r *Recorder) Outcomes() []Outcome {
	outcomes := make([]Outcome, len(r.Events))
	for i, e := range r.Events {
		outcomes[i] = e.Outcome
	}
	return outcomes
}

// Last returns the most recent event
func (r *Recorder) Last() (Event, bool) {
	if len(r.Events) == 0 {
		return Event{}, false
	}
	return r.Events[len(r.Events)-1], true
}

// Reset forgets all events
func (r *Recorder) Reset() {
	r.Events = nil
}
