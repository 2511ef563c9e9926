package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the stage that produced it.
type Kind string

const (
	// KindInput covers a missing, unreadable or malformed input file.
	KindInput Kind = "input"
	// KindDataShape covers well-formed JSON that does not describe a report.
	KindDataShape Kind = "data_shape"
	// KindOutput covers failures creating the output directory or writing a chart.
	KindOutput Kind = "output"
)

// Sentinels for errors.Is matching against an *Error of the same kind.
var (
	ErrInput     = &Error{Kind: KindInput}
	ErrDataShape = &Error{Kind: KindDataShape}
	ErrOutput    = &Error{Kind: KindOutput}
)

// Error is a classified failure of the chart pipeline.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := string(e.Kind) + " error"
	if e.Op != "" {
		msg = e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Input wraps err as an input failure for path.
func Input(op, path string, err error) error {
	return &Error{Kind: KindInput, Op: op, Path: path, Err: err}
}

// DataShape reports a malformed report at the given location.
func DataShape(path, format string, args ...any) error {
	return &Error{Kind: KindDataShape, Op: "invalid report", Path: path, Err: fmt.Errorf(format, args...)}
}

// Output wraps err as an output failure for path.
func Output(op, path string, err error) error {
	return &Error{Kind: KindOutput, Op: op, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
