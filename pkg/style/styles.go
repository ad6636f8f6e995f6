package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/coffle/pkg/entry"
)

var (
	// Something was changed
	ActionStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// Nothing to do
	QuietStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Refused, the user has to act
	RefusalStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// Something of the user's was moved or removed
	AttentionStyle = lipgloss.NewStyle().
			Foreground(InfoColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor)
)

// OutcomeStyle returns the style of an outcome label
func OutcomeStyle(o entry.Outcome) lipgloss.Style {
	if o.Refusal() {
		return RefusalStyle
	}

	switch o {
	case entry.OutcomeBuilt, entry.OutcomeInstall, entry.OutcomeRestored:
		return ActionStyle
	case entry.OutcomeOverwrite, entry.OutcomeUninstall:
		return AttentionStyle
	default:
		return QuietStyle
	}
}

// StatusStyle returns the style of a status table cell
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case entry.StatusCurrent, entry.StatusInstalled:
		return ActionStyle
	case entry.StatusModified, entry.StatusOrgMissing, entry.StatusBlocked:
		return RefusalStyle
	case entry.StatusOutdated, entry.StatusNotBuilt:
		return AttentionStyle
	case entry.StatusError:
		return ErrorStyle
	default:
		return QuietStyle
	}
}
