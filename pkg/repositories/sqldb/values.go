package sqldb

import (
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
)

// normalizeValue turns a scanned driver value into one of the types the
// output package knows how to render.
func normalizeValue(v any, databaseType string) any {
	switch x := v.(type) {
	case []byte:
		// SQL Server returns GUIDs as 16 mixed-endian bytes.
		if strings.EqualFold(databaseType, "UNIQUEIDENTIFIER") && len(x) == 16 {
			var id mssql.UniqueIdentifier
			if err := id.Scan(x); err == nil {
				return id.String()
			}
		}
		return string(x)
	default:
		return v
	}
}
