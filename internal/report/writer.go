package report

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ghostedhq/ghostscan/internal/model"
)

// Writer defines the interface for report output.
// Implementations write pipeline results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteScan outputs a scan result.
	// Returns the number of bytes written and any error encountered.
	WriteScan(result *model.ScanResult) (int, error)

	// WriteClean outputs a clean result.
	WriteClean(result *model.CleanResult) (int, error)

	// WriteDetect outputs a detection batch report.
	WriteDetect(report *model.DetectReport) (int, error)

	// WriteCompare outputs a before/after comparison report.
	WriteCompare(report *model.CompareReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteScan outputs the scan result to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteScan(result *model.ScanResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteScan(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteClean outputs the clean result to all configured Writers.
func (m *MultiWriter) WriteClean(result *model.CleanResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteClean(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteDetect outputs the detection report to all configured Writers.
func (m *MultiWriter) WriteDetect(report *model.DetectReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteDetect(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteCompare outputs the comparison report to all configured Writers.
func (m *MultiWriter) WriteCompare(report *model.CompareReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteCompare(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// titleCaser renders snake_case and kebab-case identifiers as English
// headings ("copy_paste" becomes "Copy Paste").
var titleCaser = cases.Title(language.English)

// headingFor converts an internal identifier to a display heading.
func headingFor(id string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(id)
	return titleCaser.String(cleaned)
}
