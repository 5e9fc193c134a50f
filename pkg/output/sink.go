package output

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/TFMV/azquery/pkg/errors"
	"github.com/TFMV/azquery/pkg/models"
)

// NoDataMessage is logged when a query returns no rows.
const NoDataMessage = "No data found."

// Sink delivers a result table either to stdout as a text table or to an
// export file.
type Sink struct {
	stdout io.Writer
	path   string
	format Format
	logger zerolog.Logger
}

// NewSink creates a sink. An empty path selects stdout; format is ignored in
// that case.
func NewSink(stdout io.Writer, path string, format Format, logger zerolog.Logger) *Sink {
	if format == "" {
		format = FormatCSV
	}
	return &Sink{
		stdout: stdout,
		path:   path,
		format: format,
		logger: logger.With().Str("component", "output").Logger(),
	}
}

// Emit writes the table. An empty table writes nothing and creates no file.
// It reports whether anything was written.
func (s *Sink) Emit(table *models.ResultTable) (bool, error) {
	if table.Empty() {
		s.logger.Info().Msg(NoDataMessage)
		return false, nil
	}

	if s.path == "" {
		if err := WriteTable(s.stdout, table); err != nil {
			return false, errors.Wrap(err, errors.CodeOutput, "failed to write result table")
		}
		return true, nil
	}

	if err := s.writeFile(table); err != nil {
		return false, errors.Wrapf(err, errors.CodeOutput, "error writing results to %s", s.path).
			WithDetail("path", s.path).
			WithDetail("format", string(s.format))
	}

	s.logger.Info().
		Str("path", s.path).
		Str("format", string(s.format)).
		Int("rows", table.NumRows()).
		Msg("Results saved")
	return true, nil
}

// writeFile encodes the table into a temporary file next to the target and
// renames it into place. Whatever already sits at the target is left alone
// when encoding or the rename fails.
func (s *Sink) writeFile(table *models.ResultTable) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".azquery-*"+filepath.Ext(s.path))
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		tmp.Close()
		if rmErr := os.Remove(tmp.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn().Err(rmErr).Str("path", tmp.Name()).Msg("Failed to remove partial output file")
		}
	}()

	if err := s.encode(tmp, table); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Sink) encode(w io.Writer, table *models.ResultTable) error {
	switch s.format {
	case FormatJSON:
		return WriteJSONLines(w, table)
	case FormatCSV:
		return WriteCSV(w, table)
	case FormatXLSX:
		return WriteXLSX(w, table)
	default:
		return errors.New(errors.CodeOutput, "unsupported output format "+string(s.format))
	}
}
