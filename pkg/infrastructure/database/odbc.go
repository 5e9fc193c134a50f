//go:build !noodbc

package database

// The ODBC driver needs cgo and the unixODBC headers; build with -tags noodbc
// to leave it out.
import _ "github.com/alexbrainman/odbc"
