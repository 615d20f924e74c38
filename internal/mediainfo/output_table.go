package mediainfo

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableWriter renders each section as its own table as soon as it arrives.
type TableWriter struct {
	w     io.Writer
	style table.Style
}

// NewTableWriter returns a TableWriter; colorize selects a coloured style for
// terminals.
func NewTableWriter(w io.Writer, colorize bool) *TableWriter {
	style := table.StyleRounded
	if colorize {
		style = table.StyleColoredBright
	}
	return &TableWriter{w: w, style: style}
}

func (t *TableWriter) WriteSection(section ReportSection) error {
	_, err := io.WriteString(t.w, renderTableSection(section, t.style)+"\n")
	return err
}

func (t *TableWriter) Close() error {
	return nil
}

func renderTableSection(section ReportSection, style table.Style) string {
	tw := table.NewWriter()
	tw.SetStyle(style)
	tw.SetTitle(section.Title)
	tw.AppendHeader(table.Row{"Field", "Value"})
	for _, field := range section.Fields {
		tw.AppendRow(table.Row{field.Name, formatTableValue(field)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func formatTableValue(field Field) string {
	if size, ok := field.Value.(int64); ok && field.Name == "bytes" && size >= 0 {
		return fmt.Sprintf("%d (%s)", size, humanize.Bytes(uint64(size)))
	}
	return formatPlainValue(field.Value)
}
