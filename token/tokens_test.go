package token

import (
	"testing"
)

func unescapedKey(s string) *Scalar {
	k := NewKey(String, []byte(`"`+s+`"`))
	k.TypeAndFlags |= UnescapedMask
	return k
}

// TestEqualsString checks key matching, with and without escapes in the
// literal.
func TestEqualsString(t *testing.T) {
	tests := []struct {
		name   string
		scalar *Scalar
		str    string
		equal  bool
	}{
		{"unescaped match", unescapedKey("result"), "result", true},
		{"unescaped prefix", unescapedKey("result"), "res", false},
		{"unescaped longer", unescapedKey("res"), "result", false},
		{"unescaped empty", unescapedKey(""), "", true},
		{"escaped match", NewKey(String, []byte(`"result"`)), "result", true},
		{"escaped quote", NewKey(String, []byte(`"a\"b"`)), `a"b`, true},
		{"escaped mismatch", NewKey(String, []byte(`"results"`)), "result", false},
		{"marshalled", StringScalar("tab\there"), "tab\there", true},
		{"number", Int64Scalar(42), "42", false},
		{"boolean", TrueScalar, "true", false},
		{"null", NullScalar, "null", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scalar.EqualsString(tt.str); got != tt.equal {
				t.Errorf("EqualsString(%q) on %s: expected %v, got %v", tt.str, tt.scalar, tt.equal, got)
			}
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		scalar   *Scalar
		expected string
	}{
		{unescapedKey("deal-42"), "deal-42"},
		{NewKey(String, []byte(`"café"`)), "café"},
		{NewScalar(String, []byte(`"line\nbreak \/"`)), "line\nbreak /"},
		{StringKey("x"), "x"},
		{StringScalar(""), ""},
	}
	for _, tt := range tests {
		if got := tt.scalar.ToString(); got != tt.expected {
			t.Errorf("ToString() on %s: expected %q, got %q", tt.scalar, tt.expected, got)
		}
	}
}

func TestToStringPanics(t *testing.T) {
	for _, s := range []*Scalar{Int64Scalar(1), FalseScalar, NewScalar(String, []byte(`"\x"`))} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ToString() on %s did not panic", s)
				}
			}()
			s.ToString()
		}()
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		scalar *Scalar
		typ    ScalarType
		key    bool
		bytes  string
	}{
		{StringScalar(`say "hi"`), String, false, `"say \"hi\""`},
		{StringKey(`a\b`), String, true, `"a\\b"`},
		{Int64Scalar(-9223372036854775808), Number, false, "-9223372036854775808"},
		{TrueScalar, Boolean, false, "true"},
		{FalseScalar, Boolean, false, "false"},
		{NullScalar, Null, false, "null"},
	}
	for _, tt := range tests {
		if tt.scalar.Type() != tt.typ || tt.scalar.IsKey() != tt.key || string(tt.scalar.Bytes) != tt.bytes {
			t.Errorf("unexpected scalar %s (type %d, key %v)", tt.scalar, tt.scalar.Type(), tt.scalar.IsKey())
		}
	}
}

// TestTokenStrings checks the representations used in error messages.
func TestTokenStrings(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{&StartObject{}, "StartObject"},
		{&EndObject{}, "EndObject"},
		{&StartArray{}, "StartArray"},
		{&EndArray{}, "EndArray"},
		{StringKey("result"), `Key("result")`},
		{StringScalar("result"), `Scalar("result")`},
		{NewScalar(Number, []byte("1e3")), "Scalar(1e3)"},
		{NullScalar, "Scalar(null)"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, got)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		tok   Token
		kind  Kind
		start bool
		end   bool
	}{
		{&StartObject{}, KindStartObject, true, false},
		{&EndObject{}, KindEndObject, false, true},
		{&StartArray{}, KindStartArray, true, false},
		{&EndArray{}, KindEndArray, false, true},
		{StringKey("k"), KindKey, false, false},
		{StringScalar("k"), KindScalar, false, false},
		{TrueScalar, KindScalar, false, false},
		{nil, KindInvalid, false, false},
	}
	for _, tt := range tests {
		kind := KindOf(tt.tok)
		if kind != tt.kind || kind.IsStart() != tt.start || kind.IsEnd() != tt.end {
			t.Errorf("KindOf(%v): got %d (start %v, end %v)", tt.tok, kind, kind.IsStart(), kind.IsEnd())
		}
	}
}
