package output

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/TFMV/azquery/pkg/models"
)

// SheetName is the single worksheet written to XLSX exports.
const SheetName = "Sheet1"

// WriteXLSX writes the table as a workbook with one sheet holding a header
// row followed by the data rows.
func WriteXLSX(w io.Writer, table *models.ResultTable) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	header := make([]any, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for r, row := range table.Rows {
		cells := make([]any, len(table.Columns))
		for i := range cells {
			cells[i] = scalarValue(cellAt(row, i))
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
