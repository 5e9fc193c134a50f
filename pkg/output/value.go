package output

import (
	"fmt"
	"math"
	"time"
)

// TimeLayout is used for every timestamp written as text.
const TimeLayout = time.RFC3339Nano

// FormatValue renders a cell as text. nil renders as the empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(TimeLayout)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// scalarValue keeps the values that have a native representation in typed
// formats (JSON, XLSX) and renders everything else as text. NaN and the
// infinities have no JSON form and become nil.
func scalarValue(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		if f := float64(x); math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return x
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return x
	default:
		return FormatValue(x)
	}
}

// cellAt returns the value in column i, or nil for a short row.
func cellAt(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}
