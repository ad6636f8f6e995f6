package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// DetectColor decides whether output to f should be colored. mode is
// "always", "never" or "auto"; auto colors terminals that support it unless
// NO_COLOR is set.
func DetectColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check if we're being piped or redirected
	if f == nil || (!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())) {
		return false
	}

	return termenv.ColorProfile() != termenv.Ascii
}

// SetColor turns styling of both lipgloss and pterm on or off
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.ColorProfile())
		pterm.EnableColor()
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableColor()
}
