package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dee-Wang-92/Physician-MB/internal/llmtag"
	"github.com/Dee-Wang-92/Physician-MB/internal/marker"
)

var (
	// titleStyle for report headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted label text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for healthy counts
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for failure counts
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// MarkReport summarizes one rule-based marking run.
type MarkReport struct {
	Input    string
	Output   string
	Pages    int
	LinesIn  int
	LinesOut int
	Stats    marker.Stats
}

// FormatMarkReport renders the marker statistics box after a mark run.
func FormatMarkReport(w io.Writer, r MarkReport) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render("Marking complete"))
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Input:"), r.Input)
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Output:"), r.Output)
	fmt.Fprintf(&b, "%s %d pages, %d lines in, %d lines out\n",
		dimStyle.Render("Size:"), r.Pages, r.LinesIn, r.LinesOut)
	fmt.Fprintf(&b, "%s %s L1, %s L2, %s L3, %s L4\n",
		dimStyle.Render("Headings:"),
		successStyle.Render(fmt.Sprint(r.Stats.L1)),
		successStyle.Render(fmt.Sprint(r.Stats.L2)),
		successStyle.Render(fmt.Sprint(r.Stats.L3)),
		successStyle.Render(fmt.Sprint(r.Stats.L4)))
	fmt.Fprintf(&b, "%s %s (%d provisional, %d asterisked)",
		dimStyle.Render("Codes:"),
		successStyle.Render(fmt.Sprint(r.Stats.Codes)),
		r.Stats.Provisional, r.Stats.Asterisked)

	fmt.Fprintln(w, boxStyle.Render(b.String()))
}

// ClaudeSummary summarizes one instruction-based tagging run.
type ClaudeSummary struct {
	Input         string
	Output        string
	Model         string
	Windows       int
	FailedWindows []int
	Elapsed       time.Duration
	Latency       llmtag.StatsSnapshot
}

// FormatClaudeSummary renders the batch tagging summary box.
func FormatClaudeSummary(w io.Writer, s ClaudeSummary) {
	succeeded := s.Windows - len(s.FailedWindows)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render("Tagging complete"))
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Input:"), s.Input)
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Output:"), s.Output)
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Model:"), s.Model)

	failed := successStyle.Render("0")
	if len(s.FailedWindows) > 0 {
		failed = errorStyle.Render(fmt.Sprint(len(s.FailedWindows)))
	}
	fmt.Fprintf(&b, "%s %s succeeded, %s failed of %d\n",
		dimStyle.Render("Windows:"),
		successStyle.Render(fmt.Sprint(succeeded)), failed, s.Windows)
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Elapsed:"), s.Elapsed.Round(time.Second))

	if s.Latency.Count > 0 {
		fmt.Fprintf(&b, "%s avg %.0fms, p50 %.0fms, p95 %.0fms, p99 %.0fms",
			dimStyle.Render("Latency:"),
			s.Latency.AvgMs, s.Latency.P50Ms, s.Latency.P95Ms, s.Latency.P99Ms)
	} else {
		fmt.Fprintf(&b, "%s no successful calls", dimStyle.Render("Latency:"))
	}

	fmt.Fprintln(w, boxStyle.Render(b.String()))
}
