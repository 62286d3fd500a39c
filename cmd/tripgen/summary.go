package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-tripdata/internal/generator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func printSummary(w io.Writer, result *generator.BuildResult) {
	if result == nil {
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("✓ %d days, %d activities", result.Days, result.Activities)))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  → %d schedule rows, %d lodging entries", result.ScheduleRows, result.Lodging)))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  → %d locations in gazetteer", result.Locations)))

	for _, id := range result.Stubs {
		fmt.Fprintln(w, warnStyle.Render("! stub created: "+id))
	}
	for _, id := range result.Orphans {
		fmt.Fprintln(w, warnStyle.Render("! trip parts cleared: "+id))
	}

	if result.DryRun {
		fmt.Fprintln(w, mutedStyle.Render("  dry run, nothing written"))
		return
	}
	for _, path := range result.Outputs {
		fmt.Fprintln(w, mutedStyle.Render("  wrote "+path))
	}
	if result.Snapshot != nil {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  snapshot: %d locations, %d days, %d activities",
			result.Snapshot.Locations, result.Snapshot.Days, result.Snapshot.Activities)))
	}
}
