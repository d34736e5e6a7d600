// Package errors gives mosaic's failures a machine-readable code.
//
// Codes let the CLI and tests tell a bad manifest from a missing file or
// an unreachable caption server without matching on message text:
//
//   - INVALID_*: manifests, image dimensions, aspect ratios, keys, paths
//     and formats rejected before a layout is computed
//   - NOT_FOUND, FILE_NOT_FOUND: empty image directories, missing manifests
//     and config files
//   - NETWORK_ERROR: caption documents that could not be fetched
//   - INTERNAL_ERROR, UNSUPPORTED: render failures and unknown output formats
//
// # Usage
//
//	if err := errors.ValidateImage(id, w, h); err != nil {
//	    return err
//	}
//	f, err := os.Open(path)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeFileNotFound, err, "open manifest %s", path)
//	}
//
// [Is] and [GetCode] look through fmt.Errorf wrapping, so commands can add
// context with %w and still be matched by code.
package errors

import (
	"errors"
	"fmt"
)

// Code names a failure category. Codes are stable across releases and show
// up as the first token of the CLI's "Error:" line.
type Code string

const (
	// Rejected before layout.
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidAspect     Code = "INVALID_ASPECT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidManifest   Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidKey        Code = "INVALID_KEY"

	// Missing manifests, config files and image directories.
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Caption fetches.
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Renderers.
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a Code, the message shown to the user and, for wrapped
// I/O or decode failures, the cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders as "CODE: message" or "CODE: message: cause".
func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches code and a formatted message to cause, typically an
// os, json or net/http error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain carries code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "" when
// there is none (a plain os or context error, for example).
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause, leaving the sentence a
// command reports. Errors without a code are returned verbatim.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
