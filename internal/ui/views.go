package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/quietfile/deadair/internal/logging"
)

// maxInFlightShown caps the in-flight list so wide worker pools on big
// trees do not scroll the progress view off screen.
const maxInFlightShown = 8

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#005F87"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D7AF00"))

	countStyle = lipgloss.NewStyle().Bold(true)
)

// renderScanView renders the live progress view
func renderScanView(m Model) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Deadair 📻 - scanning for dead air"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d audio file(s) under %s", m.TotalFiles, m.Root)))
	b.WriteString("\n\n")

	b.WriteString(renderCounts(m))
	b.WriteString("\n")

	shown := m.InFlight
	if len(shown) > maxInFlightShown {
		shown = shown[:maxInFlightShown]
	}
	for _, path := range shown {
		b.WriteString(fmt.Sprintf(" %s %s\n", activeStyle.Render("⚙"), filepath.Base(path)))
	}
	if extra := len(m.InFlight) - len(shown); extra > 0 {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("   … and %d more\n", extra)))
	}

	return b.String()
}

// renderCounts renders the one-line scan tally
func renderCounts(m Model) string {
	return fmt.Sprintf(" %s analysed · %s with silence · %s flagged · %s failed\n",
		countStyle.Render(fmt.Sprintf("%d/%d", m.Completed, m.TotalFiles)),
		countStyle.Render(fmt.Sprintf("%d", m.Silent)),
		countStyle.Render(fmt.Sprintf("%d", m.Flagged)),
		countStyle.Render(fmt.Sprintf("%d", m.Failed)))
}

// renderSummary renders the view left on screen after the scan finishes
func renderSummary(m Model) string {
	elapsed := time.Since(m.StartTime).Round(100 * time.Millisecond)

	verdict := "scan complete"
	if m.Aborted {
		verdict = "scan aborted"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Deadair 📻 " + verdict))
	b.WriteString("\n")
	b.WriteString(renderCounts(m))
	b.WriteString(subtitleStyle.Render(fmt.Sprintf(" %s · finished %s (%s)\n",
		elapsed, time.Now().Format("15:04:05"), logging.LocalZone())))
	return b.String()
}
