// Copyright 2025 Truthcrawl Contributors
//
// Package errs provides the coded error taxonomy shared by every
// truthcrawl package: FormatError, ValidationError, SignatureError,
// NotFound, IoError, IllegalInput.
package errs

import "fmt"

// Code identifies which of the taxonomy's six error kinds an Error is.
type Code string

const (
	// FormatError means canonical text was malformed: missing key, wrong
	// order, non-hex where hex was required, wrong field count.
	FormatError Code = "FORMAT_ERROR"

	// ValidationError means a semantic invariant was broken: a count
	// mismatch, a chain link that isn't genesis when it must be, etc.
	ValidationError Code = "VALIDATION_ERROR"

	// SignatureError means a cryptographic verification failed.
	SignatureError Code = "SIGNATURE_ERROR"

	// NotFound means a lookup by hash or id returned nothing.
	NotFound Code = "NOT_FOUND"

	// IoError means a filesystem operation failed.
	IoError Code = "IO_ERROR"

	// IllegalInput means the caller passed a structurally impossible
	// value: an empty manifest, too few observations to resolve, a
	// negative count.
	IllegalInput Code = "ILLEGAL_INPUT"
)

// Error is the single structured error type used across truthcrawl.
// Construction operations return the first Error they hit; verification
// operations collect many into a Result and never panic.
type Error struct {
	Code    Code
	Message string
	Details string
	Cause   error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with no cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new Error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Cause: err}
}

// Wrapf attaches a cause to a new Error with a formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetails returns a copy of e with Details set.
func (e *Error) WithDetails(details string) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// Is allows errors.Is(err, errs.New(errs.NotFound, "")) style checks
// against codes: it matches any *Error target with the same Code.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code
}
