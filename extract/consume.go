package extract

import (
	"context"
	"errors"
	"io"

	"github.com/arnodel/jsonsplit/encoding/json"
	"github.com/arnodel/jsonsplit/token"
)

// A skipper is a source which can avoid keeping the contents of values that
// are skipped, e.g. *json.Reader.
type skipper interface {
	SetSkipping(on bool)
}

// ConsumeValue reads exactly one JSON value from src and forwards all its
// tokens to sink.  If sink is nil the value is skipped.
//
// Only a depth counter is kept: the value is complete when the counter goes
// back to 0, or straight away if the value is a scalar.  If src ends before
// that, a *StructureError with MsgTruncatedRecord is returned.
func ConsumeValue(src token.Source, sink token.Sink) error {
	if sink == nil {
		defer skipping(src)()
	}
	tok, err := src.Next()
	if err != nil {
		return readError(err)
	}
	return consumeFrom(tok, src, sink)
}

// consumeFrom is like ConsumeValue but tok, the first token of the value,
// has already been read.
func consumeFrom(tok token.Token, src token.Source, sink token.Sink) error {
	if sink == nil {
		sink = token.Discard
		defer skipping(src)()
	}
	depth := 0
	for {
		switch kind := token.KindOf(tok); {
		case kind.IsStart():
			sink.Put(tok)
			depth++
		case kind.IsEnd():
			if depth == 0 {
				return structureError(MsgUnexpectedEvent, tok)
			}
			sink.Put(tok)
			depth--
		case kind == token.KindKey:
			if depth == 0 {
				return structureError(MsgUnexpectedEvent, tok)
			}
			sink.Put(tok)
		case kind == token.KindScalar:
			sink.Put(tok)
		default:
			return structureError(MsgUnexpectedEvent, tok)
		}
		if depth == 0 {
			return nil
		}
		var err error
		tok, err = src.Next()
		if err != nil {
			return readError(err)
		}
	}
}

// skipping turns on skipping in src if it supports it, and returns a
// function turning it off again.
func skipping(src token.Source) func() {
	s, ok := src.(skipper)
	if !ok {
		return func() {}
	}
	s.SetSkipping(true)
	return func() { s.SetSkipping(false) }
}

// readError converts an error from a token.Source.  Input ending inside a
// value is a truncated record, and context errors are returned unchanged.
func readError(err error) error {
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return structureError(MsgTruncatedRecord, nil)
	case errors.As(err, &syntaxErr) && errors.Is(syntaxErr.Err, io.ErrUnexpectedEOF):
		return structureError(MsgTruncatedRecord, nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return &StreamError{Op: "read", Err: err}
}
