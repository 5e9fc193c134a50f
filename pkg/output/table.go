package output

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/TFMV/azquery/pkg/models"
)

// WriteTable renders the result as a fixed-width text table.
func WriteTable(w io.Writer, result *models.ResultTable) error {
	t := table.NewWriter()

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)

	header := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range result.Rows {
		cells := make(table.Row, len(result.Columns))
		for i := range cells {
			cells[i] = FormatValue(cellAt(row, i))
		}
		t.AppendRow(cells)
	}

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}
