package export

import (
	"fmt"
	"geg-automation/internal/scrapers/geg"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
)

func appendCounts(t table.Writer, group string, counts map[string]int) {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	for _, label := range labels {
		t.AppendRow(table.Row{group, label, counts[label]})
	}
	t.AppendSeparator()
}

// RenderStatistics prints the per-run summary as a table.
func RenderStatistics(w io.Writer, stats geg.Statistics) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Group", "Value", "Count"})
	appendCounts(t, "status", stats.ByLicenseStatus)
	appendCounts(t, "cargo", stats.ByRole)
	appendCounts(t, "situacao", stats.ByEmploymentStatus)
	appendCounts(t, "operacao", stats.ByOperationSite)
	t.AppendFooter(table.Row{"total", "", stats.Total})
	t.Render()
}

// RenderLayout prints the column positions of `layout`.
func RenderLayout(w io.Writer, layout geg.Layout) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("layout %s (%s)", layout.Version, layout.GridTableID))
	t.AppendHeader(table.Row{"Index", "Field", "Numeric"})
	for _, col := range layout.Columns {
		t.AppendRow(table.Row{col.Index, col.Field, !col.Field.IsText()})
	}
	t.Render()
}
