// Package render formats harness results for the console.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/kmorling/elevbench/internal/bench"
	"github.com/kmorling/elevbench/internal/compare"
	"github.com/kmorling/elevbench/internal/util"
	"github.com/kmorling/elevbench/internal/validate"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

	passMark = color.New(color.FgGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

// CheckMark renders a PASS/FAIL marker for one target check.
func CheckMark(check bench.TargetCheck) string {
	if check.Passed {
		return passMark("PASS")
	}
	return failMark("FAIL")
}

func heading(title string) string {
	return headingStyle.Render("=== " + title + " ===")
}

func row(label, value string) string {
	return fmt.Sprintf("  %s %s", labelStyle.Render(fmt.Sprintf("%-14s", label+":")), valueStyle.Render(value))
}

// Suite renders one full benchmark run.
func Suite(result *bench.SuiteResult) string {
	var b strings.Builder

	b.WriteString(heading("Elevation Service Benchmark") + "\n")
	b.WriteString(row("Version", result.ServiceVersion) + "\n\n")

	b.WriteString(headingStyle.Render("Memory") + "\n")
	if result.BaselineMemory != nil {
		b.WriteString(row("Baseline", fmt.Sprintf("%.1f MB", result.BaselineMemory.CurrentMB)) + "\n")
	} else {
		b.WriteString(row("Baseline", warnMark("unknown")) + "\n")
	}
	for _, phase := range result.MemoryPhases {
		value := warnMark("unknown")
		if phase.Memory != nil {
			value = fmt.Sprintf("%.1f MB", phase.Memory.CurrentMB)
		}
		b.WriteString(row(fmt.Sprintf("%d tiles", phase.Tiles), value) + "\n")
	}

	if result.ColdLatency.Count > 0 {
		b.WriteString("\n" + headingStyle.Render("Latency (cold cache)") + "\n")
		b.WriteString(row("p50", fmt.Sprintf("%.2f ms", result.ColdLatency.P50)) + "\n")
		b.WriteString(row("mean", fmt.Sprintf("%.2f ms (n=%d)", result.ColdLatency.Mean, result.ColdLatency.Count)) + "\n")
	}

	b.WriteString("\n" + headingStyle.Render("Latency (warm cache)") + "\n")
	b.WriteString(row("p50", fmt.Sprintf("%.2f ms", result.WarmLatency.P50)) + "\n")
	b.WriteString(row("p95", fmt.Sprintf("%.2f ms", result.WarmLatency.P95)) + "\n")
	b.WriteString(row("p99", fmt.Sprintf("%.2f ms", result.WarmLatency.P99)) + "\n")
	b.WriteString(row("mean", fmt.Sprintf("%.2f ms (n=%d)", result.WarmLatency.Mean, result.WarmLatency.Count)) + "\n")

	b.WriteString("\n" + headingStyle.Render("Throughput") + "\n")
	b.WriteString(row("Rate", fmt.Sprintf("%.0f req/sec", result.Throughput.RequestsPerSecond)) + "\n")
	b.WriteString(row("Requests", fmt.Sprintf("%d", result.Throughput.TotalRequests)) + "\n")
	if result.Throughput.Errors > 0 {
		b.WriteString(row("Errors", warnMark(fmt.Sprintf("%d", result.Throughput.Errors))) + "\n")
	}
	b.WriteString(row("Duration", fmt.Sprintf("%.1f s", result.Throughput.DurationSeconds)) + "\n")

	if len(result.BatchTimings) > 0 {
		b.WriteString("\n" + headingStyle.Render("GeoJSON Batch") + "\n")
		for _, timing := range result.BatchTimings {
			b.WriteString(row(fmt.Sprintf("%d points", timing.Points), fmt.Sprintf("%.1f ms", timing.ElapsedMS)) + "\n")
		}
	}

	b.WriteString("\n" + headingStyle.Render("Cache") + "\n")
	b.WriteString(row("Cached tiles", fmt.Sprintf("%d", result.CachedTiles)) + "\n")
	b.WriteString(row("Hit rate", fmt.Sprintf("%.1f%%", result.HitRate*100)) + "\n")

	if len(result.Checks) > 0 {
		b.WriteString("\n" + headingStyle.Render("Targets") + "\n")
		for _, check := range result.Checks {
			direction := "<"
			if check.Name == "throughput_rps" {
				direction = ">"
			}
			b.WriteString(fmt.Sprintf("  %s %-22s %.1f (target: %s%.0f)\n",
				CheckMark(check), check.Name, check.Value, direction, check.Target))
		}
	}

	return b.String()
}

// Comparison renders per-implementation records and their relative ratios.
func Comparison(records []compare.Record, ratios []compare.Ratio) string {
	var b strings.Builder

	b.WriteString(heading("Implementation Comparison") + "\n")
	b.WriteString(fmt.Sprintf("  %-16s %-22s %12s %12s %12s\n", "Name", "Implementation", "Per Query", "Throughput", "Total"))
	for _, record := range records {
		if !record.Available {
			b.WriteString(fmt.Sprintf("  %-16s %-22s %s\n",
				record.Name, record.Implementation, failMark("Error: "+util.TruncateRunes(record.Error, 60))))
			continue
		}
		b.WriteString(fmt.Sprintf("  %-16s %-22s %9.2f µs %9d q/s %9.2f ms\n",
			record.Name, record.Implementation, record.PerQueryMicros, record.QueriesPerSec, record.TotalTimeMS))
	}

	if len(ratios) > 1 {
		b.WriteString("\n" + headingStyle.Render("Relative Performance (vs fastest)") + "\n")
		for _, ratio := range ratios {
			if ratio.Baseline {
				b.WriteString(fmt.Sprintf("  %-16s %s\n", ratio.Name, passMark("1.0x (fastest)")))
				continue
			}
			b.WriteString(fmt.Sprintf("  %-16s %.1fx slower\n", ratio.Name, ratio.Factor))
		}
	}

	return b.String()
}

// Validation renders the accuracy comparison rows, per-source statistics,
// and the overall verdict.
func Validation(report *validate.Report, sourceNames map[string]string) string {
	var b strings.Builder

	b.WriteString(heading("Elevation Accuracy Validation") + "\n")
	for _, r := range report.Rows {
		primary := "N/A"
		if r.Primary != nil {
			primary = fmt.Sprintf("%.1f", *r.Primary)
		}
		b.WriteString(fmt.Sprintf("  %-14s (%8.4f, %9.4f)  service=%s", r.Name, r.Lat, r.Lon, primary))
		for _, ref := range r.References {
			value, diff := "N/A", "N/A"
			if ref.Value != nil {
				value = fmt.Sprintf("%.1f", *ref.Value)
			}
			if ref.Diff != nil {
				diff = fmt.Sprintf("%+.1f", *ref.Diff)
			}
			b.WriteString(fmt.Sprintf("  %s=%s (%s)", ref.Tag, value, diff))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + headingStyle.Render("Summary Statistics") + "\n")
	for tag, stats := range report.SourceStats {
		name := sourceNames[tag]
		if name == "" {
			name = tag
		}
		b.WriteString(fmt.Sprintf("  %s:\n", name))
		b.WriteString(row("Mean abs err", fmt.Sprintf("%.1f m", stats.MeanAbsError)) + "\n")
		b.WriteString(row("Max error", fmt.Sprintf("%.1f m", stats.MaxAbsError)) + "\n")
		b.WriteString(row("Std dev", fmt.Sprintf("%.1f m", stats.StdDev)) + "\n")
		b.WriteString(row("Within ±1m", fmt.Sprintf("%.0f%%", stats.Within1m)) + "\n")
		b.WriteString(row("Within ±5m", fmt.Sprintf("%.0f%%", stats.Within5m)) + "\n")
	}

	b.WriteString("\n" + VerdictLine(report) + "\n")

	return b.String()
}

// VerdictLine renders the colored one-line verdict for a validation report.
func VerdictLine(report *validate.Report) string {
	switch report.Verdict {
	case validate.VerdictPass:
		return fmt.Sprintf("Result: %s - all elevations within 5m tolerance", passMark("PASS"))
	case validate.VerdictWarning:
		return fmt.Sprintf("Result: %s - differences up to %.1fm", warnMark("WARNING"), report.MaxAbsError)
	case validate.VerdictFail:
		return fmt.Sprintf("Result: %s - differences exceed 30m threshold", failMark("FAIL"))
	default:
		return fmt.Sprintf("Result: %s - no comparisons could be made (is the service running?)", warnMark("INCONCLUSIVE"))
	}
}
