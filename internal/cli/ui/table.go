package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// headerRule underlines table headers
const headerRule = '─'

// NewTable creates a table writing to the CLI output. Headers are dimmed and
// underlined, the first column is bold.
func NewTable(headers ...interface{}) table.Table {
	return table.New(headers...).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return DimStyle.Render(fmt.Sprintf(format, vals...))
		}).
		WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
			return BoldStyle.Render(fmt.Sprintf(format, vals...))
		}).
		WithHeaderSeparatorRow(headerRule).
		WithPadding(2).
		WithWidthFunc(lipgloss.Width).
		WithWriter(stdout)
}

// PrintSectionHeader prints a title with its item count, e.g. "Matching codes (1,024)"
func PrintSectionHeader(icon string, title string, count int) {
	OutputLine("\n%s %s (%s)", icon, title, FormatCount(uint64(count)))
}
