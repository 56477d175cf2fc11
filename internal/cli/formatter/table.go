package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colGap is the padding between table columns.
const colGap = 2

// selectedRow highlights the cursor row in interactive tables.
var selectedRow = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

// RenderTable renders a simple aligned table with a header separator line.
// Headers are rendered with the Header style. Columns are padded to the
// maximum visible width found in each column across headers and rows.
func RenderTable(headers []string, rows [][]string) string {
	return RenderSelectableTable(headers, rows, -1)
}

// RenderSelectableTable is RenderTable with row selected marked by a
// pointer. A negative selected renders no marker column.
func RenderSelectableTable(headers []string, rows [][]string, selected int) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	marker := func(i int) string {
		switch {
		case selected < 0:
			return ""
		case i == selected:
			return selectedRow.Render("›") + " "
		default:
			return "  "
		}
	}

	var b strings.Builder

	b.WriteString(marker(-2))
	for i, h := range headers {
		b.WriteString(StyleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)+colGap))
		}
	}
	b.WriteString("\n")

	b.WriteString(marker(-2))
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for r, row := range rows {
		b.WriteString(marker(r))
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell))+colGap))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
