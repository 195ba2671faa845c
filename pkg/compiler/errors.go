package compiler

import (
	"errors"
	"fmt"

	"mlogc/pkg/exitcode"
)

// ParseError is returned for every failure in Parse. The parser never
// recovers: the first ParseError aborts the whole parse.
type ParseError struct {
	Reason  exitcode.Reason
	Message string
	// Line and Column locate the offending token; both are zero for
	// internal errors that have no token.
	Line   int
	Column int
}

func (e *ParseError) Error() string { return e.Message }

// ExitReason reports the exit reason of the failure.
func (e *ParseError) ExitReason() exitcode.Reason { return e.Reason }

// errorAt builds a ParseError positioned at tok. The position suffix is
// appended to the message.
func errorAt(reason exitcode.Reason, tok Token, format string, args ...any) *ParseError {
	return &ParseError{
		Reason:  reason,
		Message: fmt.Sprintf(format, args...) + tok.pos(),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// internalError reports a broken parser invariant.
func internalError(reason exitcode.Reason, format string, args ...any) *ParseError {
	return &ParseError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// ReasonOf returns the exit reason carried by err, looking through wrapping.
// The outermost reason wins. Errors that do not carry a reason are reported
// as exitcode.Internal.
func ReasonOf(err error) exitcode.Reason {
	if err == nil {
		return exitcode.OK
	}
	var r interface{ ExitReason() exitcode.Reason }
	if errors.As(err, &r) {
		return r.ExitReason()
	}
	return exitcode.Internal
}

// reasonError tags a non-parse error (such as a failed file read) with an
// exit reason.
type reasonError struct {
	reason exitcode.Reason
	err    error
}

func (e *reasonError) Error() string { return e.err.Error() }
func (e *reasonError) Unwrap() error { return e.err }

func (e *reasonError) ExitReason() exitcode.Reason { return e.reason }

// WithReason attaches reason to err. It returns nil when err is nil.
func WithReason(reason exitcode.Reason, err error) error {
	if err == nil {
		return nil
	}
	return &reasonError{reason: reason, err: err}
}
