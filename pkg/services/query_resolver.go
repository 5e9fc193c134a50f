package services

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/TFMV/azquery/pkg/errors"
)

// QueryPrompt is shown before reading a query interactively.
const QueryPrompt = "Enter SQL query to execute: "

// QuerySource names where a resolved query came from.
type QuerySource string

const (
	QuerySourceArgument    QuerySource = "argument"
	QuerySourceFile        QuerySource = "file"
	QuerySourceInteractive QuerySource = "interactive"
)

// QueryInput carries the user-supplied query options.
type QueryInput struct {
	Query     string
	QueryFile string
}

// QueryResolver determines the SQL text to run.
type QueryResolver struct {
	stdin       io.Reader
	prompt      io.Writer
	interactive bool
	logger      zerolog.Logger
}

// NewQueryResolver creates a resolver that falls back to reading stdin.
// The prompt is written only when interactive is true.
func NewQueryResolver(stdin io.Reader, prompt io.Writer, interactive bool, logger zerolog.Logger) *QueryResolver {
	return &QueryResolver{
		stdin:       stdin,
		prompt:      prompt,
		interactive: interactive,
		logger:      logger,
	}
}

// StdinIsTerminal reports whether os.Stdin is attached to a terminal.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Resolve returns the trimmed query text. An explicit query wins over a query
// file; with neither, one line is read from stdin.
func (r *QueryResolver) Resolve(in QueryInput) (string, error) {
	query, source, err := r.read(in)
	if err != nil {
		return "", err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New(errors.CodeInput, "no SQL query provided").
			WithDetail("source", string(source))
	}

	r.logger.Debug().
		Str("source", string(source)).
		Int("length", len(query)).
		Msg("Resolved query")

	return query, nil
}

func (r *QueryResolver) read(in QueryInput) (string, QuerySource, error) {
	if in.Query != "" {
		return in.Query, QuerySourceArgument, nil
	}

	if in.QueryFile != "" {
		b, err := os.ReadFile(in.QueryFile)
		if err != nil {
			return "", QuerySourceFile, errors.Wrapf(err, errors.CodeInput, "error reading query file %s", in.QueryFile).
				WithDetail("path", in.QueryFile)
		}
		return string(b), QuerySourceFile, nil
	}

	if r.interactive && r.prompt != nil {
		if _, err := io.WriteString(r.prompt, QueryPrompt); err != nil {
			return "", QuerySourceInteractive, errors.Wrap(err, errors.CodeInput, "failed to write prompt")
		}
	}

	if r.stdin == nil {
		return "", QuerySourceInteractive, nil
	}

	line, err := bufio.NewReader(r.stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", QuerySourceInteractive, errors.Wrap(err, errors.CodeInput, "failed to read query from stdin")
	}
	return line, QuerySourceInteractive, nil
}
