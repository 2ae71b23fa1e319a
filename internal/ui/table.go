package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gauge/internal/reardiff"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 28
)

// buildColumns sizes display columns from the actual cell content, dropping
// trailing columns that do not fit the terminal width.
func buildColumns(records []reardiff.Record, fields []string, totalWidth int) []table.Column {
	columns := make([]table.Column, 0, len(fields))
	used := 0
	for _, field := range fields {
		width := len(field)
		for _, record := range records {
			if l := len(reardiff.FormatValue(record[field])); l > width {
				width = l
			}
		}
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		// +2 accounts for the cell padding bubbles/table applies.
		if totalWidth > 0 && used+width+2 > totalWidth {
			break
		}
		used += width + 2
		columns = append(columns, table.Column{Title: field, Width: width})
	}
	return columns
}

// buildRows renders records into table rows following the column order.
func buildRows(records []reardiff.Record, columns []table.Column) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, record := range records {
		row := make(table.Row, 0, len(columns))
		for _, column := range columns {
			row = append(row, truncate(reardiff.FormatValue(record[column.Title]), column.Width))
		}
		rows = append(rows, row)
	}
	return rows
}

// newListingTable assembles a focused bubbles table for a listing.
func newListingTable(records []reardiff.Record, fields []string, width, height int, theme Theme) table.Model {
	columns := buildColumns(records, fields, width)
	rows := buildRows(records, columns)

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(theme.SelectionText)).
		Background(lipgloss.Color(theme.SelectionBg)).
		Bold(false)
	t.SetStyles(styles)

	return t
}
