package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	analyzer "github.com/okian/throwbench/internal/app"
	"github.com/okian/throwbench/internal/domain/band"
	"github.com/okian/throwbench/pkg/metrics"
)

// Issues at or above these priorities render red and yellow; everything
// below renders cyan.
const (
	severityHigh   = 90
	severityMedium = 60
)

const sparkRunes = "▁▂▃▄▅▆▇█"

// Text writes the colored terminal report: session summary, the per-metric
// benchmark table with inline population sparklines, coaching notes, and the
// prioritized issue list. Color output honors color.NoColor.
func Text(w io.Writer, report *analyzer.Report) error {
	var b strings.Builder

	writeSummary(&b, report)
	writeMetricsTable(&b, report)
	writeNotes(&b, report)
	writeIssues(&b, report)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	metrics.RecordReportRendered(FormatText)
	return nil
}

func writeSummary(b *strings.Builder, report *analyzer.Report) {
	b.WriteString(color.New(color.Bold).Sprintf("Throw quality report: %s", report.Source))
	b.WriteString("\n\n")

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendRow(table.Row{"Throws", report.Throws})
	tbl.AppendRow(table.Row{"Usable", report.Usable})
	if report.Duplicates > 0 {
		tbl.AppendRow(table.Row{"Duplicates dropped", report.Duplicates})
	}
	tbl.AppendRow(table.Row{"Reference", fmt.Sprintf("%d synthetic throwers, seed %d", report.Samples, report.Seed)})
	tbl.AppendRow(table.Row{"Generated", report.GeneratedAt.Format(time.RFC3339)})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
}

func writeMetricsTable(b *strings.Builder, report *analyzer.Report) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.AppendHeader(table.Row{"Metric", "Mean", "SD", "Best", "N", "Percentile", "Band", "Population"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	for _, mr := range report.Metrics {
		prec := precisionFor(mr.Metric)
		mean := missingValue
		if v, ok := mr.Mean.Value(); ok {
			mean = valueWithUnit(v, mr.Unit, prec)
		}

		tbl.AppendRow(table.Row{
			mr.Label,
			mean,
			numberCell(mr.SD, prec),
			numberCell(mr.Best, prec),
			mr.N,
			percentileCell(mr.Percentile),
			bandCell(mr.Band),
			sparkline(mr.Histogram),
		})
	}

	b.WriteString(tbl.Render())
	b.WriteString("\n")
}

func writeNotes(b *strings.Builder, report *analyzer.Report) {
	var notes []string
	for _, mr := range report.Metrics {
		if !mr.Band.NoData && mr.Band.Note != "" {
			notes = append(notes, fmt.Sprintf("  %s: %s", mr.Label, mr.Band.Note))
		}
	}
	if len(notes) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(strings.Join(notes, "\n"))
	b.WriteString("\n")
}

func writeIssues(b *strings.Builder, report *analyzer.Report) {
	b.WriteString("\n")

	switch {
	case report.AllClear:
		b.WriteString(color.New(color.FgGreen, color.Bold).Sprint("All clear."))
		b.WriteString(" No mechanical issues diagnosed in this session.\n")
		return
	case len(report.Issues) == 0:
		b.WriteString(color.New(color.FgYellow).Sprint("No usable throw data."))
		b.WriteString(" Diagnosis needs at least speed or spin readings.\n")
		return
	}

	b.WriteString(color.New(color.Bold).Sprint("Diagnosed issues, most important first:"))
	b.WriteString("\n")

	for i, issue := range report.Issues {
		headline := severityColor(issue.Priority).Sprint(issue.Headline)
		measured := valueWithUnit(issue.Value, issue.Unit, precisionFor(issue.Metric))
		fmt.Fprintf(b, "\n%2d. %s (measured %s, goal %s)\n", i+1, headline, measured, issue.Goal)
		b.WriteString("    " + issue.Detail + "\n")

		for _, res := range issue.Resources {
			fmt.Fprintf(b, "      - %s (%s", res.Title, res.Kind)
			if res.Minutes > 0 {
				fmt.Fprintf(b, ", %d min", res.Minutes)
			}
			fmt.Fprintf(b, ") %s\n", res.URL)
		}
	}
}

func percentileCell(p *int) string {
	if p == nil {
		return missingValue
	}
	return ordinal(*p)
}

func bandCell(r band.Result) string {
	if r.NoData {
		return color.New(color.Faint).Sprint("no data")
	}

	switch r.Band {
	case band.Advanced:
		return color.New(color.FgGreen).Sprint(string(r.Band))
	case band.Intermediate:
		return color.New(color.FgYellow).Sprint(string(r.Band))
	default:
		return color.New(color.FgRed).Sprint(string(r.Band))
	}
}

func severityColor(priority int) *color.Color {
	switch {
	case priority >= severityHigh:
		return color.New(color.FgRed, color.Bold)
	case priority >= severityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

// sparkline compresses a population histogram into a single table cell; the
// bucket holding the session mean is highlighted.
func sparkline(h analyzer.Histogram) string {
	levels := []rune(sparkRunes)
	top := 0
	for _, c := range h.Counts {
		if c > top {
			top = c
		}
	}
	if top == 0 {
		return ""
	}

	marker := markerBucket(h)
	var sb strings.Builder
	for i, c := range h.Counts {
		r := levels[c*(len(levels)-1)/top]
		if i == marker {
			sb.WriteString(color.New(color.FgHiMagenta, color.Bold).Sprint(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
