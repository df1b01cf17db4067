package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grovetools/llmcompare/tui/theme"
)

// Options provides additional configuration for the table
type Options struct {
	Bordered      bool
	HeaderStyle   lipgloss.Style
	RowStyle      lipgloss.Style
	AlternateRows bool
	// StyleCell, when set, adjusts the style of a data cell.
	StyleCell func(row, col int, style lipgloss.Style) lipgloss.Style
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	t := theme.DefaultTheme
	return Options{
		Bordered:      true,
		HeaderStyle:   t.TableHeader.Padding(0, 1),
		RowStyle:      t.TableRow.Padding(0, 1),
		AlternateRows: t.UseAlternatingRows,
	}
}

// Builder provides a fluent interface for creating styled tables
type Builder struct {
	table   *ltable.Table
	options Options
}

// NewBuilder creates a new table builder
func NewBuilder() *Builder {
	return &Builder{
		table:   ltable.New(),
		options: DefaultOptions(),
	}
}

// WithBorder enables or disables the border
func (b *Builder) WithBorder(bordered bool) *Builder {
	b.options.Bordered = bordered
	return b
}

// WithAlternateRows enables or disables alternating row colors
func (b *Builder) WithAlternateRows(alternate bool) *Builder {
	b.options.AlternateRows = alternate
	return b
}

// WithCellStyle sets a per-cell style hook for data rows.
func (b *Builder) WithCellStyle(fn func(row, col int, style lipgloss.Style) lipgloss.Style) *Builder {
	b.options.StyleCell = fn
	return b
}

// WithHeaders sets the table headers
func (b *Builder) WithHeaders(headers ...string) *Builder {
	b.table = b.table.Headers(headers...)
	return b
}

// WithRows sets the table rows
func (b *Builder) WithRows(rows ...[]string) *Builder {
	for _, row := range rows {
		b.table = b.table.Row(row...)
	}
	return b
}

// WithWidth sets the total table width
func (b *Builder) WithWidth(width int) *Builder {
	if width > 0 {
		b.table = b.table.Width(width)
	}
	return b
}

// Build creates the styled table
func (b *Builder) Build() *ltable.Table {
	opts := b.options
	if opts.Bordered {
		b.table = b.table.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Border))
	} else {
		b.table = b.table.Border(lipgloss.HiddenBorder())
	}

	// Header cells are reported as ltable.HeaderRow; data rows start at 0.
	b.table = b.table.StyleFunc(func(row, col int) lipgloss.Style {
		if row == ltable.HeaderRow {
			return opts.HeaderStyle
		}
		style := opts.RowStyle
		if opts.AlternateRows && row%2 == 1 {
			style = style.Background(theme.DefaultTheme.Colors.VerySubtleBackground)
		}
		if opts.StyleCell != nil {
			style = opts.StyleCell(row, col, style)
		}
		return style
	})

	return b.table
}

// SimpleTable creates a basic bordered table with headers and rows
func SimpleTable(headers []string, rows [][]string) string {
	return NewBuilder().
		WithHeaders(headers...).
		WithRows(rows...).
		Build().
		String()
}

// StatusTable renders label/value pairs without borders.
func StatusTable(items [][]string) string {
	b := NewBuilder().
		WithBorder(false).
		WithAlternateRows(false)

	for _, item := range items {
		if len(item) >= 2 {
			b.WithRows([]string{theme.DefaultTheme.Muted.Render(item[0] + ":"), item[1]})
		}
	}
	return b.Build().String()
}

// SelectableTable renders a bordered table with an arrow in front of the
// selected data row. A negative selectedIndex shows no arrow.
func SelectableTable(headers []string, rows [][]string, selectedIndex int) string {
	t := theme.DefaultTheme

	tableStr := NewBuilder().
		WithHeaders(headers...).
		WithRows(rows...).
		WithCellStyle(func(row, col int, style lipgloss.Style) lipgloss.Style {
			if row == selectedIndex {
				return style.Inherit(t.Selected)
			}
			return style
		}).
		Build().
		String()

	// Line 0 is the top border. With headers, lines 1 and 2 are the header
	// row and its separator.
	first := 1
	if len(headers) > 0 {
		first = 3
	}
	selectedLine := -1
	if selectedIndex >= 0 {
		selectedLine = first + selectedIndex
	}

	arrow := t.Highlight.Render(theme.IconArrow)
	lines := strings.Split(tableStr, "\n")
	for i, line := range lines {
		if i == selectedLine {
			lines[i] = arrow + " " + line
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
