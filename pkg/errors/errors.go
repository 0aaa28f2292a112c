// Package errors defines the coded errors shared by the diagramkit library,
// the CLI and the HTTP server.
//
// The analysis and layout algorithms never fail on data-shape problems.
// Coded errors come from the layers around them: decoding, strict selector
// validation, caching, export and the server. A Code is stable and safe to
// match on; the message is for people.
//
//	err := errors.New(errors.ErrCodeInvalidAlgorithm, "unknown layout algorithm: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidAlgorithm) {
//	    ...
//	}
//
// The outermost coded error in a chain decides the code, so a layer can
// re-classify a lower-level failure with Wrap.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidDiagram   Code = "INVALID_DIAGRAM"
	ErrCodeInvalidAnalysis  Code = "INVALID_ANALYSIS"
	ErrCodeInvalidAlgorithm Code = "INVALID_ALGORITHM"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidShapeKind Code = "INVALID_SHAPE_KIND"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Budget failures: the work was valid but did not fit.
	ErrCodeTimeout       Code = "TIMEOUT"
	ErrCodeLimitExceeded Code = "LIMIT_EXCEEDED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a Code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error that keeps cause reachable through errors.Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// As is errors.As from the standard library.
func As(err error, target any) bool { return errors.As(err, target) }

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether GetCode(err) equals code.
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// UserMessage strips the code prefix and cause from coded errors. Other
// errors are returned verbatim.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}

func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
