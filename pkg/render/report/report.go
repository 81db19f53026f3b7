// Package report writes a plain-text summary of a reduced Wallace tree:
// configuration, partial-product layout, compressor usage, per-level timing,
// the critical path and the final column contents.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/boothtree/pkg/circuit"
	"github.com/matzehuels/boothtree/pkg/wallace"
)

// Options configures the report.
type Options struct {
	// Detailed lists the signal names of every final column.
	Detailed bool
}

// Render returns the report as a string.
func Render(t *wallace.Tree, opts Options) string {
	var b strings.Builder
	_ = Write(&b, t, opts)
	return b.String()
}

// Write writes the report for t to w.
func Write(w io.Writer, t *wallace.Tree, opts Options) error {
	var b strings.Builder
	tm := t.Timing()

	section(&b, "Configuration")
	fmt.Fprintf(&b, "width %d, result width %d, partial products %d\n", t.Width(), t.ResultWidth(), t.PPNum())
	fmt.Fprintf(&b, "logic depth %d, prefix %s\n", t.LogicDepth(), t.Prefix())
	fmt.Fprintf(&b, "levels %d, %s\n", t.Levels(), t.Registry())

	section(&b, "Layout")
	b.WriteString("row 0 on top, column 0 on the left\n")
	b.WriteString(t.Layout().String())

	section(&b, "Compressors")
	counts := t.Registry().CountByKind()
	kinds := newTable("Kind", "Module", "Count")
	for _, k := range circuit.Kinds {
		kinds.Row(k.String(), k.Module(), strconv.Itoa(counts[k]))
	}
	kinds.Row("total", "", strconv.Itoa(t.Registry().Len()))
	b.WriteString(kinds.Render())
	b.WriteByte('\n')

	section(&b, "Timing")
	levels := newTable("Level", "Compressors", "Latency")
	for _, lt := range tm.Levels {
		levels.Row(strconv.Itoa(lt.Level), strconv.Itoa(lt.Compressors), formatLatency(lt.Latency))
	}
	b.WriteString(levels.Render())
	b.WriteByte('\n')
	fmt.Fprintf(&b, "critical latency %s at %s\n", formatLatency(tm.Critical), tm.CriticalSignal)

	section(&b, "Critical path")
	for i, s := range t.CriticalPath() {
		fmt.Fprintf(&b, "%2d  %-40s %s\n", i, s.Name(), formatLatency(s.Latency()))
	}

	section(&b, "Final columns")
	cols := newTable("Column", "Signals", "Latency")
	for col, live := range t.Columns() {
		row := []string{strconv.Itoa(col), strconv.Itoa(len(live)), formatLatency(tm.Columns[col])}
		if opts.Detailed {
			row = append(row, strings.Join(circuit.Names(live), " "))
		}
		cols.Row(row...)
	}
	if opts.Detailed {
		cols.Headers("Column", "Signals", "Latency", "Names")
	}
	b.WriteString(cols.Render())
	b.WriteByte('\n')

	if trunc := t.Truncated(); len(trunc) > 0 {
		section(&b, "Truncated carries")
		for _, s := range trunc {
			fmt.Fprintf(&b, "%s %s\n", s.Name(), formatLatency(s.Latency()))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, title string) {
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func formatLatency(l float64) string { return strconv.FormatFloat(l, 'f', 1, 64) }
