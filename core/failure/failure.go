// Package failure defines the error taxonomy of a prediction run. Every error
// returned to the CLI is fatal; the kind only selects the message prefix and
// the process exit code.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindArgument
	KindData
	KindFilter
	KindModel
)

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "ArgumentError"
	case KindData:
		return "DataError"
	case KindFilter:
		return "FilterError"
	case KindModel:
		return "ModelError"
	default:
		return "Error"
	}
}

// Sentinels usable with errors.Is.
var (
	ErrArgument = &Error{Kind: KindArgument}
	ErrData     = &Error{Kind: KindData}
	ErrFilter   = &Error{Kind: KindFilter}
	ErrModel    = &Error{Kind: KindModel}
)

// Error is a classified failure with an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, which makes the package sentinels
// work with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Argument returns an ArgumentError.
func Argument(format string, args ...any) error {
	return &Error{Kind: KindArgument, Msg: fmt.Sprintf(format, args...)}
}

// Data wraps err as a DataError.
func Data(err error, format string, args ...any) error {
	return &Error{Kind: KindData, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Filter returns a FilterError.
func Filter(format string, args ...any) error {
	return &Error{Kind: KindFilter, Msg: fmt.Sprintf(format, args...)}
}

// Model wraps err as a ModelError.
func Model(err error, format string, args ...any) error {
	return &Error{Kind: KindModel, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindArgument:
		return 2
	case KindData:
		return 3
	case KindFilter:
		return 4
	case KindModel:
		return 5
	default:
		return 1
	}
}
