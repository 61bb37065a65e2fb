package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nhath/askdb/internal/config"
)

const maxColumnWidth = 40

var (
	headerColor  = lipgloss.Color("#8FBCBB")
	textColor    = lipgloss.Color("#D8DEE9")
	faintColor   = lipgloss.Color("#4C566A")
	errorColor   = lipgloss.Color("#BF616A")
	successColor = lipgloss.Color("#A3BE8C")
	nullColor    = lipgloss.Color("#B48EAD")
	numberColor  = lipgloss.Color("#B48EAD")
	boolColor    = lipgloss.Color("#D08770")
	stringColor  = lipgloss.Color("#EBCB8B")
)

// Init applies the configured palette
func Init(theme config.Theme) {
	headerColor = lipgloss.Color(theme.Highlight)
	textColor = lipgloss.Color(theme.TextPrimary)
	faintColor = lipgloss.Color(theme.TextFaint)
	errorColor = lipgloss.Color(theme.Error)
	successColor = lipgloss.Color(theme.Success)
	boolColor = lipgloss.Color(theme.Warning)
}

// View draws the fragment for a terminal of the given width (0 = unbounded)
func (f Fragment) View(width int) string {
	switch f.Kind {
	case KindError:
		msg := "✗ " + ErrorPrefix + f.Message
		if width > 4 {
			msg = wordwrap.String(msg, width-2)
		}
		return lipgloss.NewStyle().Foreground(errorColor).Bold(true).Render(msg)
	case KindEmpty:
		return lipgloss.NewStyle().Foreground(successColor).Render("✓ " + f.Message)
	}

	t := f.Table()
	if width > 0 {
		t = t.WithMaxTotalWidth(width)
	}
	footer := lipgloss.NewStyle().Foreground(faintColor).Render(fmt.Sprintf("%d rows", len(f.Rows)))
	return t.View() + "\n" + footer
}

// Table builds the bubble-table model for a KindTable fragment
func (f Fragment) Table() bbtable.Model {
	widths := columnWidths(f.Columns, f.Rows)
	cols := make([]bbtable.Column, 0, len(f.Columns))
	for _, c := range f.Columns {
		cols = append(cols, bbtable.NewColumn(c, c, widths[c]))
	}

	rows := make([]bbtable.Row, 0, len(f.Rows))
	for _, r := range f.Rows {
		data := bbtable.RowData{}
		for i, val := range r {
			data[f.Columns[i]] = bbtable.NewStyledCell(val, valueStyle(val))
		}
		rows = append(rows, bbtable.NewRow(data))
	}

	return bbtable.New(cols).
		WithRows(rows).
		WithBaseStyle(lipgloss.NewStyle().Foreground(textColor)).
		HeaderStyle(lipgloss.NewStyle().Foreground(headerColor).Bold(true)).
		BorderRounded().
		WithNoPagination()
}

func columnWidths(headers []string, rows [][]string) map[string]int {
	widths := make(map[string]int, len(headers))
	for _, h := range headers {
		widths[h] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(headers) && lipgloss.Width(val) > widths[headers[i]] {
				widths[headers[i]] = lipgloss.Width(val)
			}
		}
	}
	for h, w := range widths {
		w += 2
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		widths[h] = w
	}
	return widths
}

// valueStyle colours a cell by what its text looks like; the text itself is
// never changed
func valueStyle(val string) lipgloss.Style {
	if val == "" || val == "null" {
		return lipgloss.NewStyle().Foreground(nullColor).Italic(true)
	}
	if _, err := fmt.Sscanf(val, "%f", new(float64)); err == nil && !strings.ContainsAny(val, " \t") {
		return lipgloss.NewStyle().Foreground(numberColor)
	}
	if val == "true" || val == "false" {
		return lipgloss.NewStyle().Foreground(boolColor)
	}
	return lipgloss.NewStyle().Foreground(stringColor)
}
