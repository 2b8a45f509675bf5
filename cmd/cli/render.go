package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"marquee/domain/show"
	"marquee/internal/pipeline"
	"marquee/ui/services"
)

var (
	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	noteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("214"))
)

func windowLine(v *services.View) string {
	p := v.Report.Params
	return mutedStyle.Render(fmt.Sprintf("%s to %s", p.Start.Format(show.ISODateLayout), p.End.Format(show.ISODateLayout)))
}

// renderRanking draws the ranking table with its note
func renderRanking(v *services.View) string {
	p := v.Report.Params

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s %d by %s", strings.ToUpper(string(p.Direction)), p.Limit, p.Metric.Label())))
	sb.WriteString("\n")
	sb.WriteString(windowLine(v))
	sb.WriteString("\n\n")

	nameWidth := len("Show")
	for _, r := range v.Report.Ranking {
		if len(r.Show) > nameWidth {
			nameWidth = len(r.Show)
		}
	}

	sb.WriteString(mutedStyle.Render(fmt.Sprintf("%4s  %-*s  %12s  %16s", "#", nameWidth, "Show", "Performances", "Gross")))
	sb.WriteString("\n")
	for _, r := range v.Report.Ranking {
		sb.WriteString(fmt.Sprintf("%4d  %-*s  %12s  %16s\n",
			r.Rank, nameWidth, r.Show, pipeline.FormatNumber(r.TotalPerformances), r.GrossM))
	}
	if len(v.Report.Ranking) == 0 {
		sb.WriteString(mutedStyle.Render("no shows in this window"))
		sb.WriteString("\n")
	}

	if v.Report.Note != "" {
		sb.WriteString("\n")
		sb.WriteString(noteStyle.Width(72).Render(v.Report.Note))
	}

	return boxStyle.Render(strings.TrimRight(sb.String(), "\n")) + "\n"
}

// renderShows lists the show names in the window, one per line
func renderShows(v *services.View) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Shows"))
	sb.WriteString("\n")
	sb.WriteString(windowLine(v))
	sb.WriteString("\n\n")
	// first entry is the "All shows" selector option
	for _, name := range v.Report.Shows[1:] {
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("%d shows", len(v.Report.Shows)-1)))
	return boxStyle.Render(sb.String()) + "\n"
}

// renderSummary prints the window statistics as aligned label/value pairs
func renderSummary(v *services.View) string {
	s := v.Summary
	f := s.Formatted()

	lines := [][2]string{
		{"Weeks of data", fmt.Sprintf("%d", s.Rows)},
		{"Shows", fmt.Sprintf("%d", s.Shows)},
		{"Total performances", pipeline.FormatNumber(s.TotalPerformances)},
		{"Total gross", f["total_gross"]},
		{"Mean weekly gross", f["mean_gross"]},
		{"Median weekly gross", f["median_gross"]},
		{"P90 weekly gross", f["p90_gross"]},
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Summary: " + v.Report.Params.Show))
	sb.WriteString("\n")
	sb.WriteString(windowLine(v))
	sb.WriteString("\n\n")
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("%-20s %s\n", l[0], l[1]))
	}
	return boxStyle.Render(strings.TrimRight(sb.String(), "\n")) + "\n"
}
