package json

import (
	"io"

	"github.com/arnodel/jsonsplit/internal/scanner"
	"github.com/arnodel/jsonsplit/token"
)

// A Reader reads JSON input and returns it one token at a time.  It reads a
// stream of JSON values (usually a single document) and returns io.EOF after
// the last one.
//
// The only state kept besides the read buffer is the stack of currently open
// collections, so memory use does not depend on the size of the values.
type Reader struct {
	scanr    *scanner.Scanner
	stack    []byte // '{' or '[' for each open collection
	state    readerState
	skipping bool
	err      error
}

type readerState uint8

const (
	expectTopValue   readerState = iota // a top-level value or EOF
	expectValue                         // a value, after ':' or ','
	expectFirstItem                     // a value or ']'
	expectFirstKey                      // a key or '}'
	expectKey                           // a key, after ','
	expectSeparator                     // ',' or the end of the current collection
)

var _ token.Source = &Reader{}

// NewReader sets up a new Reader instance to read from the given input.
func NewReader(in io.Reader) *Reader {
	return &Reader{scanr: scanner.NewScanner(in)}
}

// NewReaderSize is like NewReader but with a read buffer of the given size.
func NewReaderSize(in io.Reader, size int) *Reader {
	return &Reader{scanr: scanner.NewScannerSize(in, size)}
}

// Pos returns the position in the input of the next byte to be read.
func (r *Reader) Pos() scanner.Pos {
	return r.scanr.CurrentPos()
}

// SetSkipping turns skipping on or off.  While skipping, strings are still
// checked but their bytes are not kept: string scalars and keys are returned
// as shared empty placeholders.
func (r *Reader) SetSkipping(on bool) {
	r.skipping = on
}

// Depth returns the number of currently open collections.
func (r *Reader) Depth() int {
	return len(r.stack)
}

// Next returns the next token in the input.  It returns (nil, io.EOF) when
// the input is exhausted between top-level values.  Any other error is
// final: subsequent calls return it again.
func (r *Reader) Next() (token.Token, error) {
	if r.err != nil {
		return nil, r.err
	}
	tok, err := r.next()
	if err != nil {
		if err == io.EOF && r.state != expectTopValue {
			err = r.unexpectedEOF()
		}
		r.err = err
		return nil, err
	}
	return tok, nil
}

func (r *Reader) next() (token.Token, error) {
	switch r.state {
	case expectTopValue:
		b, err := r.scanr.SkipSpaceAndPeek()
		if err != nil {
			return nil, err
		}
		if b == scanner.EOF {
			return nil, io.EOF
		}
		return r.parseValue()
	case expectValue:
		return r.parseValue()
	case expectFirstItem:
		b, err := r.scanr.SkipSpaceAndPeek()
		if err != nil {
			return nil, err
		}
		if b == ']' {
			r.scanr.Read()
			return r.closeCollection(endArray)
		}
		return r.parseValue()
	case expectFirstKey:
		b, err := r.scanr.SkipSpaceAndPeek()
		if err != nil {
			return nil, err
		}
		if b == '}' {
			r.scanr.Read()
			return r.closeCollection(endObject)
		}
		return r.parseKey()
	case expectKey:
		return r.parseKey()
	case expectSeparator:
		return r.parseSeparator()
	default:
		panic("invalid reader state")
	}
}

func (r *Reader) parseValue() (token.Token, error) {
	b, err := r.scanr.SkipSpaceAndPeek()
	if err != nil {
		return nil, err
	}
	switch b {
	case '"':
		if r.skipping {
			if err := SkipString(r.scanr); err != nil {
				return nil, err
			}
			return r.scalarDone(skippedString), nil
		}
		s, err := ParseString(r.scanr)
		if err != nil {
			return nil, err
		}
		return r.scalarDone(s), nil
	case '[':
		r.scanr.Read()
		r.stack = append(r.stack, '[')
		r.state = expectFirstItem
		return startArray, nil
	case '{':
		r.scanr.Read()
		r.stack = append(r.stack, '{')
		r.state = expectFirstKey
		return startObject, nil
	case 't':
		if err := checkBytes(r.scanr, trueBytes); err != nil {
			return nil, err
		}
		return r.scalarDone(token.TrueScalar), nil
	case 'f':
		if err := checkBytes(r.scanr, falseBytes); err != nil {
			return nil, err
		}
		return r.scalarDone(token.FalseScalar), nil
	case 'n':
		if err := checkBytes(r.scanr, nullBytes); err != nil {
			return nil, err
		}
		return r.scalarDone(token.NullScalar), nil
	case scanner.EOF:
		return nil, io.EOF
	default:
		if b == '-' || scanner.IsDigit(b) {
			n, err := ParseNumber(r.scanr)
			if err != nil {
				return nil, err
			}
			return r.scalarDone(n), nil
		}
		return nil, UnexpectedByte(r.scanr, "unexpected")
	}
}

func (r *Reader) parseKey() (token.Token, error) {
	b, err := r.scanr.SkipSpaceAndPeek()
	if err != nil {
		return nil, err
	}
	switch b {
	case '"':
	case scanner.EOF:
		return nil, io.EOF
	default:
		return nil, UnexpectedByte(r.scanr, "expected object key, got")
	}
	key, err := r.parseKeyString()
	if err != nil {
		return nil, err
	}
	b, err = r.scanr.SkipSpaceAndPeek()
	if err != nil {
		return nil, err
	}
	if b != ':' {
		return nil, UnexpectedByte(r.scanr, "expected ':', got")
	}
	r.scanr.Read()
	r.state = expectValue
	return key, nil
}

func (r *Reader) parseKeyString() (*token.Scalar, error) {
	if r.skipping {
		return skippedKey, SkipString(r.scanr)
	}
	key, err := ParseString(r.scanr)
	if err != nil {
		return nil, err
	}
	key.TypeAndFlags |= token.KeyMask
	return key, nil
}

func (r *Reader) parseSeparator() (token.Token, error) {
	b, err := r.scanr.SkipSpaceAndPeek()
	if err != nil {
		return nil, err
	}
	inObject := r.stack[len(r.stack)-1] == '{'
	switch {
	case b == ',':
		r.scanr.Read()
		if inObject {
			return r.parseKey()
		}
		return r.parseValue()
	case b == '}' && inObject:
		r.scanr.Read()
		return r.closeCollection(endObject)
	case b == ']' && !inObject:
		r.scanr.Read()
		return r.closeCollection(endArray)
	case b == scanner.EOF:
		return nil, io.EOF
	case inObject:
		return nil, UnexpectedByte(r.scanr, "expected '}' or ',', got")
	default:
		return nil, UnexpectedByte(r.scanr, "expected ']' or ',', got")
	}
}

func (r *Reader) scalarDone(s *token.Scalar) token.Token {
	r.afterValue()
	return s
}

func (r *Reader) closeCollection(tok token.Token) (token.Token, error) {
	r.stack = r.stack[:len(r.stack)-1]
	r.afterValue()
	return tok, nil
}

func (r *Reader) afterValue() {
	if len(r.stack) == 0 {
		r.state = expectTopValue
	} else {
		r.state = expectSeparator
	}
}

func (r *Reader) unexpectedEOF() error {
	return &SyntaxError{Pos: r.scanr.CurrentPos(), Msg: "unexpected end of input", Err: io.ErrUnexpectedEOF}
}

// Structural tokens carry no data so they can be shared.
var (
	startObject = &token.StartObject{}
	endObject   = &token.EndObject{}
	startArray  = &token.StartArray{}
	endArray    = &token.EndArray{}
)

// Placeholders returned for strings while skipping.
var (
	skippedString = unescaped(token.NewScalar(token.String, []byte(`""`)))
	skippedKey    = unescaped(token.NewKey(token.String, []byte(`""`)))
)

func unescaped(s *token.Scalar) *token.Scalar {
	s.TypeAndFlags |= token.UnescapedMask
	return s
}
