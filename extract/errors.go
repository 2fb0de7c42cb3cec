package extract

import (
	"errors"
	"fmt"

	"github.com/arnodel/jsonsplit/token"
)

// Messages of the StructureError values returned by this package.
const (
	MsgExpectedTopLevelObject = "expected top-level object"
	MsgExpectedCollection     = "expected object after target key"
	MsgTrailingData           = "trailing data after collection end"
	MsgTruncatedRecord        = "truncated record"
	MsgTargetNotFound         = "target key not found"
	MsgUnexpectedEvent        = "unexpected event"
)

// A StructureError means the input is valid JSON but does not have the
// expected shape.
type StructureError struct {
	Msg string

	// Event is the offending token, nil if there is none (e.g. the input
	// ended).
	Event token.Token

	// At is the input position after the offending token, when known.
	At string
}

func (e *StructureError) Error() string {
	msg := "structure error: " + e.Msg
	if e.Event != nil {
		msg += ": " + e.Event.String()
	}
	if e.At != "" {
		msg += " (at " + e.At + ")"
	}
	return msg
}

// A StreamError is a failure to read the input (including invalid JSON) or
// to write the output.
type StreamError struct {
	Op  string
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error: %s: %s", e.Op, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// IsStructureError reports whether err is or wraps a *StructureError.
func IsStructureError(err error) bool {
	var serr *StructureError
	return errors.As(err, &serr)
}

// IsStreamError reports whether err is or wraps a *StreamError.
func IsStreamError(err error) bool {
	var serr *StreamError
	return errors.As(err, &serr)
}

func structureError(msg string, tok token.Token) *StructureError {
	return &StructureError{Msg: msg, Event: tok}
}
