// Package report renders terminal summaries of point datasets.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"archviz/internal/dataset"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	countStyle  = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#243141"))
)

// untypedLabel stands in for the category of points without a type column.
const untypedLabel = "(untyped)"

// Summary describes a dataset: total count, per-category counts in
// first-seen order, and the coordinate ranges.
func Summary(title string, ds *dataset.Dataset) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total points: %d\n", ds.Len())
	if ds.Len() == 0 {
		return b.String()
	}

	b.WriteString(Categories(ds))
	b.WriteString("\n")

	box := ds.Bounds()
	fmt.Fprintf(&b, "X range: %s .. %s\n", num(box.MinX), num(box.MaxX))
	fmt.Fprintf(&b, "Y range: %s .. %s\n", num(box.MinY), num(box.MaxY))
	if ds.HasZ() {
		fmt.Fprintf(&b, "Z range: %s .. %s\n", num(box.MinZ), num(box.MaxZ))
	}
	return b.String()
}

// Categories renders the per-category point counts as a table.
func Categories(ds *dataset.Dataset) string {
	counts := ds.CountByType()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("TYPE", "POINTS").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return countStyle
			}
			return cellStyle
		})
	for _, c := range ds.Categories() {
		label := c
		if !ds.HasType() || label == "" {
			label = untypedLabel
		}
		t.Row(label, strconv.Itoa(counts[c]))
	}
	return t.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
