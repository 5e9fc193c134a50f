package output

import (
	"bufio"
	"io"

	"github.com/goccy/go-json"

	"github.com/TFMV/azquery/pkg/models"
)

// WriteJSONLines writes one JSON object per row with keys in column order.
func WriteJSONLines(w io.Writer, table *models.ResultTable) error {
	keys := make([][]byte, len(table.Columns))
	for i, col := range table.Columns {
		k, err := json.Marshal(col)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	bw := bufio.NewWriter(w)
	for _, row := range table.Rows {
		bw.WriteByte('{')
		for i := range table.Columns {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.Write(keys[i])
			bw.WriteByte(':')

			b, err := json.Marshal(scalarValue(cellAt(row, i)))
			if err != nil {
				return err
			}
			bw.Write(b)
		}
		bw.WriteString("}\n")
	}
	return bw.Flush()
}
