package database

import (
	"strings"

	"github.com/microsoft/go-mssqldb/azuread"
)

// Kind is the family of database/sql driver a connection goes through.
type Kind int

const (
	KindSQLServer Kind = iota
	KindAzureAD
	KindPostgres
	KindDuckDB
	KindODBC
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindSQLServer:
		return "sqlserver"
	case KindAzureAD:
		return "azuread"
	case KindPostgres:
		return "postgres"
	case KindDuckDB:
		return "duckdb"
	case KindODBC:
		return "odbc"
	default:
		return "unknown"
	}
}

// DriverName returns the name the driver registers with database/sql.
func (k Kind) DriverName() string {
	switch k {
	case KindSQLServer:
		return "sqlserver"
	case KindAzureAD:
		return azuread.DriverName
	case KindPostgres:
		return "postgres"
	case KindDuckDB:
		return "duckdb"
	default:
		return "odbc"
	}
}

// ResolveKind maps a configured driver identifier to a Kind. Identifiers that
// name no native driver, such as "{ODBC Driver 17 for SQL Server}", are
// treated as ODBC driver names.
func ResolveKind(driver string) Kind {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlserver", "mssql":
		return KindSQLServer
	case "azuresql", "azuread":
		return KindAzureAD
	case "postgres", "postgresql", "pgx":
		return KindPostgres
	case "duckdb":
		return KindDuckDB
	default:
		return KindODBC
	}
}
