// Package report renders benchmark results.
//
// The text layout matches what engineers compare by eye: fixed-point seconds
// with nine fractional digits, so sub-microsecond differences stay visible.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/cachewalk/internal/align"
	"github.com/roach88/cachewalk/internal/stats"
)

// Precision is the number of fractional digits printed for seconds.
const Precision = 9

const rule = "------------------------------------------------"

// Report is the complete result of one benchmark configuration.
type Report struct {
	RunID        string         `json:"run_id"`
	Size         int            `json:"size"`
	Iterations   int            `json:"iterations"`
	Elements     int            `json:"elements"`
	LineBytes    int            `json:"line_bytes"`
	Checksum     int64          `json:"checksum"`
	Row          stats.Summary  `json:"row_major"`
	Col          stats.Summary  `json:"column_major"`
	RowSamples   []float64      `json:"row_samples"`
	ColSamples   []float64      `json:"column_samples"`
	AlignRepeats int            `json:"align_repeats"`
	Alignment    []align.Result `json:"alignment"`
}

// Ratio returns mean column-major time over mean row-major time, or 0 when
// the row-major mean is 0.
func (r *Report) Ratio() float64 {
	return stats.Ratio(r.Col.Mean, r.Row.Mean)
}

func seconds(v float64) string {
	return fmt.Sprintf("%.*f", Precision, v)
}

// WriteText writes the human-readable report to w.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder
	printer := message.NewPrinter(language.English)
	title := cases.Title(language.English)

	if r.RunID != "" {
		fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	}
	fmt.Fprintf(&b, "Matrix size: %d x %d (%s elements)\n", r.Size, r.Size, printer.Sprintf("%d", r.Elements))
	fmt.Fprintf(&b, "Iterations: %d\n", r.Iterations)
	fmt.Fprintf(&b, "Checksum: %s\n", printer.Sprintf("%d", r.Checksum))
	fmt.Fprintf(&b, "Cache line: %d bytes\n\n", r.LineBytes)

	fmt.Fprintf(&b, "Average Row-major traversal time: %s seconds (stddev: %s)\n", seconds(r.Row.Mean), seconds(r.Row.StdDev))
	fmt.Fprintf(&b, "Average Column-major traversal time: %s seconds (stddev: %s)\n", seconds(r.Col.Mean), seconds(r.Col.StdDev))
	if ratio := r.Ratio(); ratio > 0 {
		fmt.Fprintf(&b, "Column/row ratio: %.2fx\n", ratio)
	}
	b.WriteString("\n")

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Comparing traversal times for matrix size %dx%d\n", align.Rows, align.Cols)
	b.WriteString(rule + "\n")

	for i, a := range r.Alignment {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Case %d (%s %dx%d, offset %d, crosses line: %t)\n",
			i+1, title.String(a.Case), align.Rows, align.Cols, a.Offset, a.CrossesLine)
		writeAlignLine(&b, "Row-major time", a.Row, r.AlignRepeats)
		writeAlignLine(&b, "Col-major time", a.Col, r.AlignRepeats)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeAlignLine(b *strings.Builder, label string, s stats.Summary, repeats int) {
	if repeats > 1 {
		fmt.Fprintf(b, "  %s : %s seconds (mean of %d, stddev: %s)\n", label, seconds(s.Mean), s.N, seconds(s.StdDev))
		return
	}
	fmt.Fprintf(b, "  %s : %s seconds\n", label, seconds(s.Mean))
}

// WriteTextAll writes several reports separated by a blank line.
func WriteTextAll(w io.Writer, reports []*Report) error {
	for i, r := range reports {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := WriteText(w, r); err != nil {
			return err
		}
	}
	return nil
}
