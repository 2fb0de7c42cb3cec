package json

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arnodel/jsonsplit/internal/format"
	"github.com/arnodel/jsonsplit/token"
)

// TestEncoderSimpleValues tests encoding simple scalar values
func TestEncoderSimpleValues(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []token.Token
		expected string
	}{
		{"true", []token.Token{token.TrueScalar}, "true"},
		{"null", []token.Token{token.NullScalar}, "null"},
		{"integer", []token.Token{token.Int64Scalar(-123)}, "-123"},
		{"string", []token.Token{token.StringScalar("hello")}, `"hello"`},
		{"verbatim number", []token.Token{tokenWithBytes(token.Number, "1.50e+10")}, "1.50e+10"},
		{"verbatim escapes", []token.Token{tokenWithBytes(token.String, `"é\/"`)}, `"é\/"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if output := encodeTokens(t, tt.tokens); output != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, output)
			}
		})
	}
}

// TestEncoderCollections tests compact array and object encoding
func TestEncoderCollections(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []token.Token
		expected string
	}{
		{"empty array", []token.Token{&token.StartArray{}, &token.EndArray{}}, "[]"},
		{"empty object", []token.Token{&token.StartObject{}, &token.EndObject{}}, "{}"},
		{"array", []token.Token{
			&token.StartArray{},
			token.Int64Scalar(1),
			token.Int64Scalar(2),
			token.Int64Scalar(3),
			&token.EndArray{},
		}, "[1,2,3]"},
		{"object", []token.Token{
			&token.StartObject{},
			token.StringKey("name"),
			token.StringScalar("Alice"),
			token.StringKey("age"),
			token.Int64Scalar(30),
			&token.EndObject{},
		}, `{"name":"Alice","age":30}`},
		{"nested", []token.Token{
			&token.StartObject{},
			token.StringKey("a"),
			&token.StartArray{},
			&token.StartObject{},
			&token.EndObject{},
			&token.StartArray{},
			&token.EndArray{},
			token.NullScalar,
			&token.EndArray{},
			token.StringKey("b"),
			&token.StartObject{},
			token.StringKey("c"),
			token.TrueScalar,
			&token.EndObject{},
			&token.EndObject{},
		}, `{"a":[{},[],null],"b":{"c":true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if output := encodeTokens(t, tt.tokens); output != tt.expected {
				t.Errorf("expected:\n%s\ngot:\n%s", tt.expected, output)
			}
		})
	}
}

// TestEncoderReset checks that Reset separates top-level values
func TestEncoderReset(t *testing.T) {
	var buf bytes.Buffer
	encoder := NewEncoder(format.NewPrinter(&buf), nil)
	encoder.Put(token.Int64Scalar(1))
	encoder.Reset()
	buf.WriteByte('\n')
	encoder.Put(&token.StartArray{})
	encoder.Put(token.Int64Scalar(2))
	encoder.Put(&token.EndArray{})
	if buf.String() != "1\n[2]" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestEncoderColors(t *testing.T) {
	var buf bytes.Buffer
	c := &format.Colorizer{
		KeyColorCode:     []byte("<k>"),
		ScalarColorCodes: [4][]byte{[]byte("<n>"), []byte("<b>"), []byte("<x>"), []byte("<s>")},
		ResetCode:        []byte("</>"),
	}
	encoder := NewEncoder(format.NewPrinter(&buf), c)
	for _, tok := range []token.Token{
		&token.StartObject{},
		token.StringKey("a"),
		token.Int64Scalar(1),
		token.StringKey("b"),
		token.StringScalar("x"),
		&token.EndObject{},
	} {
		encoder.Put(tok)
	}
	expected := `{<k>"a"</>:<x>1</>,<k>"b"</>:<s>"x"</>}`
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestEncoderWriteError(t *testing.T) {
	boom := errors.New("boom")
	encoder := NewEncoder(format.NewPrinter(failingWriter{boom}), nil)
	err := func() (err error) {
		defer format.CatchPrinterError(&err)
		encoder.Put(&token.StartArray{})
		return nil
	}()
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

// Helper functions

func encodeTokens(t *testing.T, tokens []token.Token) string {
	t.Helper()
	var buf bytes.Buffer
	encoder := NewEncoder(format.NewPrinter(&buf), nil)
	for _, tok := range tokens {
		encoder.Put(tok)
	}
	return buf.String()
}
