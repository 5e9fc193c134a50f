// Package errors provides the error kinds reported by azquery.
package errors

import (
	"errors"
	"fmt"
)

// Error codes, one per pipeline stage.
const (
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeInput         = "INPUT_ERROR"
	CodeConnection    = "CONNECTION_ERROR"
	CodeExecution     = "EXECUTION_ERROR"
	CodeOutput        = "OUTPUT_ERROR"
)

// QueryError represents an azquery error with code, message, and optional details.
type QueryError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *QueryError) Is(target error) bool {
	t, ok := target.(*QueryError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail adds a single detail to the error.
func (e *QueryError) WithDetail(key string, value interface{}) *QueryError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Sentinels for errors.Is checks against a whole kind. Any QueryError
// carrying the same code matches.
var (
	ErrConfiguration = &QueryError{Code: CodeConfiguration, Message: "invalid configuration"}
	ErrInput         = &QueryError{Code: CodeInput, Message: "invalid query input"}
	ErrConnection    = &QueryError{Code: CodeConnection, Message: "database connection failed"}
	ErrExecution     = &QueryError{Code: CodeExecution, Message: "statement execution failed"}
	ErrOutput        = &QueryError{Code: CodeOutput, Message: "result output failed"}
)

// New creates a new QueryError with the given code and message.
func New(code, message string) *QueryError {
	return &QueryError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with a QueryError.
func Wrap(err error, code, message string) *QueryError {
	if err == nil {
		return nil
	}
	return &QueryError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, code, format string, args ...interface{}) *QueryError {
	if err == nil {
		return nil
	}
	return &QueryError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsInput reports whether err is an input error.
func IsInput(err error) bool {
	return errors.Is(err, ErrInput)
}

// IsConnection reports whether err is a connection error.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsExecution reports whether err is an execution error.
func IsExecution(err error) bool {
	return errors.Is(err, ErrExecution)
}

// IsOutput reports whether err is an output error.
func IsOutput(err error) bool {
	return errors.Is(err, ErrOutput)
}
