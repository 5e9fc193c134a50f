package output

import (
	"encoding/csv"
	"io"

	"github.com/TFMV/azquery/pkg/models"
)

// WriteCSV writes a header row followed by one record per row.
func WriteCSV(w io.Writer, table *models.ResultTable) error {
	c := csv.NewWriter(w)
	if err := c.Write(table.Columns); err != nil {
		return err
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i := range record {
			record[i] = FormatValue(cellAt(row, i))
		}
		if err := c.Write(record); err != nil {
			return err
		}
	}
	c.Flush()
	return c.Error()
}
