package render

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable returns a borderless table writer with left aligned columns
func newTable(columns int) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: "   ",
	}

	colConfigs := make([]table.ColumnConfig, columns)
	for i := range colConfigs {
		colConfigs[i] = table.ColumnConfig{
			Number: i + 1,
			Align:  text.AlignLeft,
		}
	}
	t.SetColumnConfigs(colConfigs)

	return t
}

// keyValueTable renders label/value pairs, skipping empty values
func keyValueTable(rows [][2]string) string {
	t := newTable(2)
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		t.AppendRow(table.Row{labelStyle.Sprint(row[0]), row[1]})
	}
	return t.Render()
}
