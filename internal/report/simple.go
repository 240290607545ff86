package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ghostedhq/ghostscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteScan outputs the scan result in human-readable format.
func (w *SimpleWriter) WriteScan(result *model.ScanResult) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "GHOSTSCAN SCAN REPORT")

	if result.HasInvisibleChars {
		sb.WriteString(fmt.Sprintf("Invisible Characters: %d occurrence(s) of %d distinct code point(s)\n",
			result.TotalInvisibleCount, len(result.Findings)))
	} else {
		sb.WriteString("Invisible Characters: none\n")
	}
	sb.WriteString(fmt.Sprintf("Text Length:          %d characters\n", result.CharCount))
	sb.WriteString(fmt.Sprintf("Likely Source:        %s\n", headingFor(string(result.Context.LikelySource))))
	sb.WriteString("\n")

	w.writeCategories(&sb, result.Categories)
	w.writeFindings(&sb, result.Findings)
	w.writeSmartChars(&sb, result.SmartChars)

	writeRule(&sb)
	sb.WriteString(result.Context.Explanation)
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// WriteClean outputs the clean result in human-readable format.
func (w *SimpleWriter) WriteClean(result *model.CleanResult) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "GHOSTSCAN CLEAN REPORT")

	sb.WriteString(fmt.Sprintf("Original Length: %d characters\n", result.OriginalLength))
	sb.WriteString(fmt.Sprintf("Cleaned Length:  %d characters\n", result.CleanedLength))
	sb.WriteString(fmt.Sprintf("Chars Removed:   %d\n", result.CharsRemoved))
	sb.WriteString("\n")

	if len(result.Removals) > 0 || w.showEmpty {
		writeSection(&sb, "REMOVALS")
		if len(result.Removals) == 0 {
			sb.WriteString("  Nothing removed\n")
		}
		for _, entry := range result.Removals {
			sb.WriteString(fmt.Sprintf("  * %s (%s) x%d\n", entry.Char, entry.Name, entry.Count))
		}
		sb.WriteString("\n")
	}

	writeSection(&sb, "CLEANED TEXT")
	sb.WriteString(result.CleanedText)
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// WriteDetect outputs the detection report in human-readable format.
func (w *SimpleWriter) WriteDetect(report *model.DetectReport) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "GHOSTSCAN DETECTION REPORT")
	w.writeDetectBody(&sb, report)

	writeRule(&sb)
	sb.WriteString(report.Summary.Disclaimer)
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// WriteCompare outputs the comparison report in human-readable format.
func (w *SimpleWriter) WriteCompare(report *model.CompareReport) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "GHOSTSCAN COMPARISON REPORT")

	sb.WriteString(fmt.Sprintf("Invisible Characters Removed: %d\n", report.Comparison.CharsRemoved))
	sb.WriteString(fmt.Sprintf("Reliability Assessment:       %s\n", headingFor(string(report.Comparison.Reliability))))
	sb.WriteString("\n")

	writeSection(&sb, "ORIGINAL TEXT")
	w.writeDetectBody(&sb, report.OriginalDetection)

	writeSection(&sb, "CLEANED TEXT")
	w.writeDetectBody(&sb, report.CleanedDetection)

	if len(report.Comparison.VerdictChanges) > 0 {
		writeSection(&sb, "VERDICT CHANGES")
		for _, change := range report.Comparison.VerdictChanges {
			sb.WriteString(fmt.Sprintf("  * %s: %s -> %s (score %+.4f)\n",
				change.Detector, change.BeforeVerdict, change.AfterVerdict, change.ScoreDelta))
		}
		sb.WriteString("\n")
	}

	writeSection(&sb, "INSIGHT")
	sb.WriteString(report.Comparison.Insight)
	sb.WriteString("\n\n")

	writeRule(&sb)
	sb.WriteString(report.Disclaimer)
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeCategories writes the per-category occurrence counts in a stable
// alphabetical order.
func (w *SimpleWriter) writeCategories(sb *strings.Builder, categories map[model.Category]int) {
	if len(categories) == 0 && !w.showEmpty {
		return
	}

	writeSection(sb, "CATEGORIES")

	if len(categories) == 0 {
		sb.WriteString("  No invisible characters found\n\n")
		return
	}

	names := make([]string, 0, len(categories))
	for cat := range categories {
		names = append(names, string(cat))
	}
	sort.Strings(names)

	for _, name := range names {
		sb.WriteString(fmt.Sprintf("  %-16s %d\n", headingFor(name), categories[model.Category(name)]))
	}
	sb.WriteString("\n")
}

// writeFindings writes the per-character findings with their threat level.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, findings []model.CharFinding) {
	if len(findings) == 0 && !w.showEmpty {
		return
	}

	writeSection(sb, "FINDINGS")

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, f := range findings {
		indicator := threatIndicator(f.Threat)
		sb.WriteString(fmt.Sprintf("  [%s] %s %s x%d\n", indicator, f.Char, f.Name, f.Count))
		if w.verbose && len(f.Positions) > 0 {
			sb.WriteString(fmt.Sprintf("      positions: %s\n", formatPositions(f.Positions, f.Count)))
		}
	}
	sb.WriteString("\n")
}

// writeSmartChars writes the smart character findings. A nil slice means
// smart scanning was not requested and the section is skipped entirely.
func (w *SimpleWriter) writeSmartChars(sb *strings.Builder, smart []model.SmartCharFinding) {
	if smart == nil {
		return
	}
	if len(smart) == 0 && !w.showEmpty {
		return
	}

	writeSection(sb, "SMART CHARACTERS")

	if len(smart) == 0 {
		sb.WriteString("  No smart characters found\n\n")
		return
	}

	for _, f := range smart {
		sb.WriteString(fmt.Sprintf("  * %s %s x%d -> %q\n", f.Char, f.Name, f.Count, f.Replacement))
	}
	sb.WriteString("\n")
}

// writeDetectBody writes per-detector results plus the batch summary.
func (w *SimpleWriter) writeDetectBody(sb *strings.Builder, report *model.DetectReport) {
	if len(report.Results) == 0 {
		sb.WriteString("  No detectors returned results\n\n")
	}

	for _, res := range report.Results {
		sb.WriteString(fmt.Sprintf("  * %-40s %-14s ai=%.4f\n", res.DetectorName, res.Verdict, res.AIScore))
		if w.verbose && res.Note != "" {
			sb.WriteString(fmt.Sprintf("      %s\n", res.Note))
		}
	}
	if len(report.Results) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("  Consensus:        %s\n", report.Summary.Consensus))
	sb.WriteString(fmt.Sprintf("  Agreement Ratio:  %.4f\n", report.Summary.AgreementRatio))
	sb.WriteString(fmt.Sprintf("  Average AI Score: %.4f\n", report.Summary.AverageAIScore))
	sb.WriteString("\n")
}

// threatIndicator returns a visual indicator for the threat level.
func threatIndicator(threat model.ThreatLevel) string {
	switch threat {
	case model.ThreatHigh:
		return "!!"
	case model.ThreatMedium:
		return "!"
	case model.ThreatLow:
		return "-"
	default:
		return "?"
	}
}

// formatPositions renders a position sample, noting truncation when the
// count exceeds the recorded positions.
func formatPositions(positions []int, count int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprintf("%d", p)
	}
	s := strings.Join(parts, ", ")
	if count > len(positions) {
		s += fmt.Sprintf(" (+%d more)", count-len(positions))
	}
	return s
}

func writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	pad := (70 - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

func writeRule(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
