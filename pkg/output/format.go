// Package output renders result tables to stdout or to an export file.
package output

import (
	"fmt"
	"strings"
)

// Format is an export file format. It implements pflag.Value so an
// unsupported format is rejected while flags are parsed.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatXLSX, FormatJSON}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (expected one of %s)", s, formatList())
}

// String implements pflag.Value.
func (f *Format) String() string {
	return string(*f)
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}
