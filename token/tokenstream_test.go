package token

import (
	"errors"
	"io"
	"testing"
)

func assertNext(t *testing.T, r Source, expected Token, expectedErr error) {
	t.Helper()
	next, err := r.Next()
	if next != expected {
		t.Fatalf("Expected %v, got %v", expected, next)
	}
	if !errors.Is(err, expectedErr) {
		t.Fatalf("Expected error %v, got %v", expectedErr, err)
	}
}

func TestSliceSource(t *testing.T) {
	toks := []Token{&StartArray{}, Int64Scalar(1), &EndArray{}}
	src := NewSliceSource(toks)
	for _, tok := range toks {
		assertNext(t, src, tok, nil)
	}
	assertNext(t, src, nil, io.EOF)
	assertNext(t, src, nil, io.EOF)
	if src.Remaining() != 0 {
		t.Fatalf("Expected no remaining tokens, got %d", src.Remaining())
	}
}

func TestFailingSliceSource(t *testing.T) {
	boom := errors.New("boom")
	tok := StringScalar("x")
	src := NewFailingSliceSource([]Token{tok}, boom)
	assertNext(t, src, tok, nil)
	assertNext(t, src, nil, boom)
}

func TestAccumulator(t *testing.T) {
	acc := NewAccumulator()
	acc.Put(&StartObject{})
	acc.Put(&EndObject{})
	if len(acc.Tokens()) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(acc.Tokens()))
	}
	Discard.Put(&StartObject{})
}
