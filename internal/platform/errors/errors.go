// Package errors provides the structured error type used across the gate.
//
// Always import as perr (platform/errors).
//
// The taxonomy matters here: a backend or corrupt-data failure must never be
// conflated with a policy verdict. Anything the gate cannot answer confidently
// escalates to an internal error carried to the entry point, which surfaces
// only an opaque correlation id to the pusher.
package errors

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode classifies gate failures. Values are stable; add sparingly
type ErrorCode uint8

const (
	// ErrorCodeUnknown is for unclassified internal errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeBackend means the version-control backend could not be queried
	// (spawn failure, non-empty error stream)
	ErrorCodeBackend

	// ErrorCodeCorruptData means the backend answered but violated its
	// contract (unparseable commit record, unexpected verification code)
	ErrorCodeCorruptData

	// ErrorCodeConfigStore means the policy configuration source is
	// unreachable or malformed beyond its documented fail-open rules
	ErrorCodeConfigStore

	// ErrorCodeValidation is for policy-file schema violations
	ErrorCodeValidation

	// ErrorCodeInvalidArgument is for bad invocation input
	ErrorCodeInvalidArgument

	// ErrorCodeStore is for audit-store failures (best effort, never fatal
	// to a verdict)
	ErrorCodeStore
)

// Error is the structured error type with wrapping and metadata.
// msg is developer facing, code is machine facing, field is optional
// (validation), op is an optional operation tag, orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// Mutators (copy-on-write)

// WithOp attaches an operation label. If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// WithField attaches a field. If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// Backendf returns a backend-unreachable error
func Backendf(format string, a ...any) error { return Newf(ErrorCodeBackend, format, a...) }

// CorruptDataf returns a backend-contract-violation error
func CorruptDataf(format string, a ...any) error { return Newf(ErrorCodeCorruptData, format, a...) }

// ConfigStoref returns a configuration-source error
func ConfigStoref(format string, a ...any) error { return Newf(ErrorCodeConfigStore, format, a...) }

// Validationf returns a policy-file validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Storef returns an audit-store error
func Storef(format string, a ...any) error { return Newf(ErrorCodeStore, format, a...) }

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }
