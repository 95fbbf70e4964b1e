package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RowStyle selects how a table row is highlighted.
type RowStyle int

const (
	RowPlain RowStyle = iota
	RowActive
	RowNext
	RowMuted
)

// Table renders an aligned text table with optional color support.
// Cell widths are measured in terminal columns, so Arabic names and other
// wide text line up.
type Table struct {
	headers []string
	rows    [][]string
	styles  []RowStyle
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a plain row. The number of values should match the number of headers.
func (t *Table) AddRow(values []string) {
	t.AddStyledRow(values, RowPlain)
}

// AddStyledRow appends a row rendered with style.
func (t *Table) AddStyledRow(values []string, style RowStyle) {
	t.rows = append(t.rows, values)
	t.styles = append(t.styles, style)
}

// Render produces the formatted table string with leading indent.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var sb strings.Builder

	sb.WriteString("  " + Bold(formatRow(t.headers, widths)) + "\n")

	sepParts := make([]string, len(widths))
	for i, w := range widths {
		sepParts[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim("  "+strings.Join(sepParts, "  ")) + "\n")

	for i, row := range t.rows {
		line := formatRow(row, widths)
		switch t.styles[i] {
		case RowActive:
			line = Active(line)
		case RowNext:
			line = Accent(line)
		case RowMuted:
			line = Dim(line)
		}
		sb.WriteString("  " + line + "\n")
	}

	return sb.String()
}

// formatRow formats a row of cells using the given column widths.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = PadRight(cell, w)
	}
	return strings.Join(parts, "  ")
}

// PadRight pads s with spaces to width terminal columns.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
