package pkgerror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that the requested local file could not be found.
	ErrNotFound = errors.New("file not found")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeInternal Type = iota // Unexpected failures (e.g., recovered panics).
	TypeConfig               // Invalid or unreadable configuration.
	TypeFetch                // Download or integrity failures.
	TypeSchema               // Source files that do not have the expected shape.
	TypeIO                   // Local file system failures.
)

func (t Type) String() string {
	switch t {
	case TypeConfig:
		return "ERROR_TYPE_CONFIG"
	case TypeFetch:
		return "ERROR_TYPE_FETCH"
	case TypeSchema:
		return "ERROR_TYPE_SCHEMA"
	case TypeIO:
		return "ERROR_TYPE_IO"
	case TypeInternal:
		return "ERROR_TYPE_INTERNAL"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to exit statuses.
type Code int

const (
	CodeInternal         Code = iota // Internal or unspecified error.
	CodeInvalidConfig                // Configuration failed validation.
	CodeDownload                     // Remote file could not be downloaded.
	CodeChecksumMismatch             // Local file digest does not match the descriptor.
	CodeMissingColumn                // Expected column absent from a source header.
	CodeMalformedCSV                 // Source file could not be parsed as CSV.
	CodeIO                           // Local read, write or delete failed.
	CodeCanceled                     // Run was canceled by a signal or deadline.
)

func (c Code) String() string {
	switch c {
	case CodeInvalidConfig:
		return "ERROR_CODE_INVALID_CONFIG"
	case CodeDownload:
		return "ERROR_CODE_DOWNLOAD"
	case CodeChecksumMismatch:
		return "ERROR_CODE_CHECKSUM_MISMATCH"
	case CodeMissingColumn:
		return "ERROR_CODE_MISSING_COLUMN"
	case CodeMalformedCSV:
		return "ERROR_CODE_MALFORMED_CSV"
	case CodeIO:
		return "ERROR_CODE_IO"
	case CodeCanceled:
		return "ERROR_CODE_CANCELED"
	case CodeInternal:
		return "ERROR_CODE_INTERNAL"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a message,
// a high-level type, and a stable error code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil && e.msg != "" {
		return e.msg + ": " + e.err.Error()
	}

	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeConfig:
		return "Invalid configuration"
	case TypeFetch:
		return "Failed to fetch dataset"
	case TypeSchema:
		return "Unexpected dataset schema"
	case TypeIO:
		return "File system error"
	case TypeInternal:
		return "Internal error"
	}

	return "Unknown error"
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.err,
	)
}

// Msg returns the error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// ExitCode maps the error to a process exit status.
func (e *Error) ExitCode() int {
	if e.code == CodeCanceled {
		return 130
	}

	switch e.errType {
	case TypeConfig:
		return 2
	case TypeFetch:
		return 3
	case TypeSchema:
		return 4
	case TypeIO:
		return 5
	default:
		return 1
	}
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewInternal creates an internal-type error wrapping err.
func NewInternal(err error) error {
	return new(err, "internal error", TypeInternal, CodeInternal)
}

// NewInvalidConfig creates a config-type error wrapping err.
func NewInvalidConfig(err error) error {
	return new(err, "invalid configuration", TypeConfig, CodeInvalidConfig)
}

// NewFetch creates a fetch-type error with the specified message and code.
func NewFetch(err error, msg string, code Code) error {
	return new(err, msg, TypeFetch, code)
}

// NewSchema creates a schema-type error with the specified message and code.
func NewSchema(err error, msg string, code Code) error {
	return new(err, msg, TypeSchema, code)
}

// NewIO creates an I/O-type error wrapping err.
func NewIO(err error, msg string) error {
	return new(err, msg, TypeIO, CodeIO)
}

// NewCanceled creates an error for a run interrupted by its context.
func NewCanceled(err error) error {
	return new(err, "run canceled", TypeInternal, CodeCanceled)
}

// ExitCode returns the exit status for any error, falling back to 1 for
// errors that are not *Error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var perr *Error
	if errors.As(err, &perr) {
		return perr.ExitCode()
	}

	return 1
}
