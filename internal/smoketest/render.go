package smoketest

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// noteStyle for muted detail lines
	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Render prints one line per check, the notes, and a closing summary.
func Render(w io.Writer, report *Report) {
	for _, check := range report.Checks {
		if check.Passed {
			fmt.Fprintln(w, passStyle.Render("✓ "+check.Name))
			continue
		}
		line := "✗ " + check.Name
		if check.Detail != "" {
			line += ": " + check.Detail
		}
		fmt.Fprintln(w, failStyle.Render(line))
	}
	for _, note := range report.Notes {
		fmt.Fprintln(w, noteStyle.Render("  → "+note))
	}

	fmt.Fprintln(w)
	if failures := report.Failures(); failures > 0 {
		fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("✗ %d validation error(s) found", failures)))
		return
	}
	fmt.Fprintln(w, passStyle.Render("✓ All validation checks passed"))
}
