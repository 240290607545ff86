package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/ghostedhq/ghostscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteScan outputs the scan result in Markdown format.
func (w *MarkdownWriter) WriteScan(result *model.ScanResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Invisible Character Scan")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Invisible Characters", strconv.Itoa(result.TotalInvisibleCount)},
			{"Distinct Code Points", strconv.Itoa(len(result.Findings))},
			{"Text Length", strconv.Itoa(result.CharCount)},
			{"Likely Source", headingFor(string(result.Context.LikelySource))},
		},
	})
	md.PlainText("")

	w.writeScanAlert(md, result)
	w.writeCategoryChart(md, result.Categories)
	w.writeFindingsTable(md, result.Findings)
	w.writeSmartCharsTable(md, result.SmartChars)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainText(result.Context.Explanation)

	return len(md.String()), md.Build()
}

// WriteClean outputs the clean result in Markdown format.
func (w *MarkdownWriter) WriteClean(result *model.CleanResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Invisible Character Cleanup")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Original Length", strconv.Itoa(result.OriginalLength)},
			{"Cleaned Length", strconv.Itoa(result.CleanedLength)},
			{"Chars Removed", strconv.Itoa(result.CharsRemoved)},
		},
	})
	md.PlainText("")

	if len(result.Removals) > 0 {
		md.H2("Removals")
		md.PlainText("")

		rows := make([][]string, len(result.Removals))
		for i, entry := range result.Removals {
			rows[i] = []string{"`" + entry.Char + "`", entry.Name, strconv.Itoa(entry.Count)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Code Point", "Name", "Count"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.H2("Cleaned Text")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightText, result.CleanedText)

	return len(md.String()), md.Build()
}

// WriteDetect outputs the detection report in Markdown format.
func (w *MarkdownWriter) WriteDetect(report *model.DetectReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("AI Detection Report")
	md.PlainText("")

	w.writeDetectBody(md, report)

	md.HorizontalRule()
	md.PlainText("")
	md.Note(report.Summary.Disclaimer)

	return len(md.String()), md.Build()
}

// WriteCompare outputs the comparison report in Markdown format.
func (w *MarkdownWriter) WriteCompare(report *model.CompareReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Before/After Comparison")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Invisible Characters Removed", strconv.Itoa(report.Comparison.CharsRemoved)},
			{"Reliability Assessment", headingFor(string(report.Comparison.Reliability))},
		},
	})
	md.PlainText("")

	md.H2("Original Text")
	md.PlainText("")
	w.writeDetectBody(md, report.OriginalDetection)

	md.H2("Cleaned Text")
	md.PlainText("")
	w.writeDetectBody(md, report.CleanedDetection)

	if len(report.Comparison.VerdictChanges) > 0 {
		md.H2("Verdict Changes")
		md.PlainText("")

		rows := make([][]string, len(report.Comparison.VerdictChanges))
		for i, change := range report.Comparison.VerdictChanges {
			rows[i] = []string{
				change.Detector,
				string(change.BeforeVerdict),
				string(change.AfterVerdict),
				fmt.Sprintf("%+.4f", change.ScoreDelta),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Detector", "Before", "After", "Score Delta"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.H2("Insight")
	md.PlainText("")
	switch report.Comparison.Reliability {
	case model.ReliabilityBytePattern:
		md.Warning(report.Comparison.Insight)
	case model.ReliabilityContentBased:
		md.Tip(report.Comparison.Insight)
	default:
		md.Note(report.Comparison.Insight)
	}
	md.PlainText("")

	md.HorizontalRule()
	md.PlainText("")
	md.Note(report.Disclaimer)

	return len(md.String()), md.Build()
}

// writeScanAlert writes an alert reflecting the highest threat present.
func (w *MarkdownWriter) writeScanAlert(md *markdown.Markdown, result *model.ScanResult) {
	highest := model.ThreatUnknown
	for _, f := range result.Findings {
		if f.Threat < highest {
			highest = f.Threat
		}
	}

	switch {
	case !result.HasInvisibleChars:
		md.Tip("No invisible characters detected.")
	case highest == model.ThreatHigh:
		md.Cautionf(
			"High-threat invisible characters detected. %d occurrence(s) strongly associated with AI text generation.",
			result.TotalInvisibleCount,
		)
	case highest == model.ThreatMedium:
		md.Warningf(
			"Invisible directional marks detected. %d occurrence(s) may affect text processing.",
			result.TotalInvisibleCount,
		)
	default:
		md.Notef("%d low-threat invisible character(s) detected.", result.TotalInvisibleCount)
	}
	md.PlainText("")
}

// writeCategoryChart writes a mermaid pie chart for category distribution.
func (w *MarkdownWriter) writeCategoryChart(md *markdown.Markdown, categories map[model.Category]int) {
	if len(categories) == 0 {
		return
	}

	names := make([]string, 0, len(categories))
	for cat := range categories {
		names = append(names, string(cat))
	}
	sort.Strings(names)

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Category Distribution"),
		piechart.WithShowData(true),
	)
	for _, name := range names {
		chart.LabelAndIntValue(headingFor(name), uint64(categories[model.Category(name)]))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFindingsTable writes the per-character findings table.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.CharFinding) {
	md.H2("Findings")
	md.PlainText("")

	if len(findings) == 0 {
		md.PlainText("No invisible characters found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		rows[i] = []string{
			"`" + f.Char + "`",
			f.Name,
			headingFor(string(f.Category)),
			f.Threat.String(),
			strconv.Itoa(f.Count),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Code Point", "Name", "Category", "Threat", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSmartCharsTable writes the smart character findings table.
// A nil slice means smart scanning was not requested.
func (w *MarkdownWriter) writeSmartCharsTable(md *markdown.Markdown, smart []model.SmartCharFinding) {
	if smart == nil {
		return
	}

	md.H2("Smart Characters")
	md.PlainText("")

	if len(smart) == 0 {
		md.PlainText("No smart characters found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(smart))
	for i, f := range smart {
		rows[i] = []string{
			"`" + f.Char + "`",
			f.Name,
			strconv.Itoa(f.Count),
			"`" + f.Replacement + "`",
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Code Point", "Name", "Count", "Replacement"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDetectBody writes per-detector results plus the batch summary.
func (w *MarkdownWriter) writeDetectBody(md *markdown.Markdown, report *model.DetectReport) {
	if len(report.Results) == 0 {
		md.PlainText("No detectors returned results.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(report.Results))
		for i, res := range report.Results {
			rows[i] = []string{
				res.DetectorName,
				string(res.Verdict),
				fmt.Sprintf("%.4f", res.AIScore),
				string(res.Method),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Detector", "Verdict", "AI Score", "Method"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.Table(markdown.TableSet{
		Header: []string{"Consensus", "Agreement Ratio", "Average AI Score"},
		Rows: [][]string{{
			string(report.Summary.Consensus),
			fmt.Sprintf("%.4f", report.Summary.AgreementRatio),
			fmt.Sprintf("%.4f", report.Summary.AverageAIScore),
		}},
	})
	md.PlainText("")
}
