package token

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// A Token is one parse event of a JSON document.  For example, the JSON
// value
//
//	{"id": 123, "tags": ["important", "new"]}
//
// is read as the sequence of Token (in pseudocode for clarity):
//
//	{            -> StartObject
//	"id":        -> Key("id")
//	123,         -> Scalar(123, Number)
//	"tags":      -> Key("tags")
//	[            -> StartArray
//	"important", -> Scalar("important", String)
//	"new"        -> Scalar("new", String)
//	]            -> EndArray
//	}            -> EndObject
//
// End of stream is not a token: a Source returns io.EOF instead.
type Token interface {
	fmt.Stringer
}

// StartObject represents the start of a JSON object (introduced by '{').
type StartObject struct{}

func (s *StartObject) String() string {
	return "StartObject"
}

var _ Token = &StartObject{}

// EndObject represents the end of a JSON object (introduced by '}').
type EndObject struct{}

func (e *EndObject) String() string {
	return "EndObject"
}

var _ Token = &EndObject{}

// StartArray represents the start of a JSON array (introduced by '[').
type StartArray struct{}

func (s *StartArray) String() string {
	return "StartArray"
}

var _ Token = &StartArray{}

// EndArray represents the end of a JSON array (introduced by ']').
type EndArray struct{}

func (e *EndArray) String() string {
	return "EndArray"
}

var _ Token = &EndArray{}

// Scalar is the type used to represent all scalar JSON values, i.e.
// - strings
// - numbers
// - booleans (two values)
// - null (a single value)
//
// Object keys are also Scalar values, of type String with the key flag set.
//
// The type is encoded in the TypeAndFlags field, while the Bytes fields
// contains the literal representation of the value as found in the input.
type Scalar struct {

	// Literal representation of the value, e.g.
	// - the string "foo" is represented as []byte("\"foo\"")
	// - the number 123.5 is represented as []byte("123.5")
	// - the boolean true is represented as []byte("true")
	Bytes []byte

	// Type of the value and flags
	TypeAndFlags uint8
}

// EqualsString reports whether s is a string (or key) whose decoded value is
// str.
func (s *Scalar) EqualsString(str string) bool {
	if s.Type() != String {
		return false
	}
	if s.IsUnescaped() {
		// Cheap path: no escape sequences, compare the raw bytes in place.
		return len(s.Bytes) == len(str)+2 && string(s.Bytes[1:len(s.Bytes)-1]) == str
	}
	return s.ToString() == str
}

func NewScalar(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp),
	}
}

func NewKey(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp) | KeyMask,
	}
}

func (s *Scalar) Type() ScalarType {
	return (ScalarType(s.TypeAndFlags & TypeMask))
}

func (s *Scalar) IsKey() bool {
	return KeyMask&s.TypeAndFlags != 0
}

func (s *Scalar) IsAlnum() bool {
	return AlnumMask&s.TypeAndFlags != 0
}

func (s *Scalar) IsUnescaped() bool {
	return UnescapedMask&s.TypeAndFlags != 0
}

func (s *Scalar) String() string {
	if s.IsKey() {
		return fmt.Sprintf("Key(%s)", s.Bytes)
	}
	return fmt.Sprintf("Scalar(%s)", s.Bytes)
}

// ToString returns the decoded value of a string scalar.  It panics if s is
// not a valid JSON string literal.
func (s *Scalar) ToString() string {
	if s.IsUnescaped() {
		return string(s.Bytes[1 : len(s.Bytes)-1])
	}
	var str string
	if err := json.Unmarshal(s.Bytes, &str); err != nil {
		panic(err)
	}
	return str
}

// ScalarType encodes the four possible JSON scalar types.
type ScalarType uint8

const (
	Null               = 0x0 // the type of JSON null
	Boolean            = 0x1 // a JSON boolean
	Number             = 0x2 // a JSON number
	String  ScalarType = 0x3 // a JSON string
)

const (
	TypeMask      = 0b00011
	KeyMask       = 0b00100
	AlnumMask     = 0b01000
	UnescapedMask = 0b10000
)

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)

var (
	TrueScalar  = NewScalar(Boolean, trueBytes)
	FalseScalar = NewScalar(Boolean, falseBytes)
	NullScalar  = NewScalar(Null, nullBytes)
)

// StringScalar returns a scalar for the JSON encoding of s.
func StringScalar(s string) *Scalar {
	encoded, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return NewScalar(String, encoded)
}

// StringKey is like StringScalar but returns an object key.
func StringKey(s string) *Scalar {
	k := StringScalar(s)
	k.TypeAndFlags |= KeyMask
	return k
}

func Int64Scalar(n int64) *Scalar {
	return NewScalar(Number, []byte(strconv.FormatInt(n, 10)))
}

// Kind classifies a token for structural processing.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindStartObject
	KindEndObject
	KindStartArray
	KindEndArray
	KindKey
	KindScalar
)

// KindOf returns the Kind of tok.  A nil token has KindInvalid.
func KindOf(tok Token) Kind {
	switch t := tok.(type) {
	case *StartObject:
		return KindStartObject
	case *EndObject:
		return KindEndObject
	case *StartArray:
		return KindStartArray
	case *EndArray:
		return KindEndArray
	case *Scalar:
		if t.IsKey() {
			return KindKey
		}
		return KindScalar
	default:
		return KindInvalid
	}
}

// IsStart reports whether k opens a collection.
func (k Kind) IsStart() bool {
	return k == KindStartObject || k == KindStartArray
}

// IsEnd reports whether k closes a collection.
func (k Kind) IsEnd() bool {
	return k == KindEndObject || k == KindEndArray
}
