package json

import (
	"fmt"
	"io"

	"github.com/arnodel/jsonsplit/internal/scanner"
	"github.com/arnodel/jsonsplit/token"
)

// SyntaxError reports invalid JSON input at a given position.  If the input
// ended too early, Err is io.ErrUnexpectedEOF.
type SyntaxError struct {
	Pos scanner.Pos
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func ExpectByte(scanr *scanner.Scanner, xb byte) error {
	b, err := scanr.Read()
	if err != nil {
		return err
	}
	if b != xb {
		scanr.Back()
		return UnexpectedByte(scanr, "expected %q, got", xb)
	}
	return nil
}

// UnexpectedByte returns a *SyntaxError describing the next byte in the
// input, which is consumed.
func UnexpectedByte(scanr *scanner.Scanner, expected string, args ...interface{}) error {
	pos := scanr.CurrentPos()
	b, err := scanr.Read()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf(expected, args...)
	if b == scanner.EOF {
		return &SyntaxError{Pos: pos, Msg: msg + ": <EOF>", Err: io.ErrUnexpectedEOF}
	}
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf("%s: %q", msg, b)}
}

// ParseString reads a JSON string literal.  The returned scalar keeps the
// literal bytes, escapes included.
func ParseString(scanr *scanner.Scanner) (*token.Scalar, error) {
	return scanString(scanr, true)
}

// SkipString checks a JSON string literal like ParseString but does not keep
// its bytes, so memory use does not depend on the length of the string.
func SkipString(scanr *scanner.Scanner) error {
	_, err := scanString(scanr, false)
	return err
}

func scanString(scanr *scanner.Scanner, record bool) (*token.Scalar, error) {
	endToken := func() []byte {
		if !record {
			return nil
		}
		return scanr.EndToken()
	}
	if record {
		scanr.StartToken()
	}
	err := ExpectByte(scanr, '"')
	if err != nil {
		endToken()
		return nil, err
	}
	isAlnum := true
	isUnescaped := true
	firstChar := true
	for {
		b, err := scanr.Read()
		if err != nil {
			return nil, err
		}
		switch b {
		case '\\':
			isUnescaped = false
			isAlnum = false
			x, err := scanr.Read()
			if err != nil {
				return nil, err
			}
			switch x {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				continue
			case 'u':
				for i := 0; i < 4; i++ {
					b, err = scanr.Read()
					if err != nil {
						return nil, err
					}
					if !scanner.IsHex(b) {
						scanr.Back()
						endToken()
						return nil, UnexpectedByte(scanr, "expected hex, got")
					}
				}
			default:
				scanr.Back()
				endToken()
				return nil, UnexpectedByte(scanr, "invalid escape sequence")
			}
		case '"':
			stringBytes := endToken()
			if !record {
				return nil, nil
			}
			scalar := token.NewScalar(token.String, stringBytes)
			if isAlnum && !firstChar {
				scalar.TypeAndFlags |= token.AlnumMask
			}
			if isUnescaped {
				scalar.TypeAndFlags |= token.UnescapedMask
			}
			return scalar, nil
		case scanner.EOF:
			scanr.Back()
			endToken()
			return nil, UnexpectedByte(scanr, "unterminated string")
		default:
			if scanner.IsCtrl(b) {
				scanr.Back()
				endToken()
				return nil, UnexpectedByte(scanr, "invalid control character in string")
			}
			if isAlnum {
				if firstChar {
					isAlnum = scanner.IsAlpha(b)
				} else {
					isAlnum = scanner.IsAlnum(b)
				}
			}
			firstChar = false
		}
	}
}

// ParseNumber parses a JSON number from the scanner.
func ParseNumber(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	var n int
	b, err := scanr.Read()

	// Sign part
	if b == '-' {
		b, err = scanr.Read()
	}
	if err != nil {
		return nil, err
	}

	// Integer part
	if b == '0' {
		b, err = scanr.Read()
		if err != nil {
			return nil, err
		}
	} else if b >= '1' && b <= '9' {
		b, _, err = ReadDigits(scanr)
		if err != nil {
			return nil, err
		}
	} else {
		scanr.Back()
		scanr.EndToken()
		return nil, UnexpectedByte(scanr, "expected digit, got")
	}

	// Fraction part
	if b == '.' {
		b, n, err = ReadDigits(scanr)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			scanr.Back()
			scanr.EndToken()
			return nil, UnexpectedByte(scanr, "expected digit, got")
		}
	}

	// Exponent part
	if b == 'e' || b == 'E' {
		b, err = scanr.Peek()
		if err != nil {
			return nil, err
		}
		if b == '-' || b == '+' {
			scanr.Read()
		}
		_, n, err = ReadDigits(scanr)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			scanr.Back()
			scanr.EndToken()
			return nil, UnexpectedByte(scanr, "expected digit, got")
		}
	}
	scanr.Back()
	return token.NewScalar(token.Number, scanr.EndToken()), nil
}

func ReadDigits(scanr *scanner.Scanner) (byte, int, error) {
	var n int
	for {
		b, err := scanr.Read()
		if err != nil {
			return 0, n, err
		}
		if !scanner.IsDigit(b) {
			return b, n, nil
		}
		n++
	}
}

func checkBytes(scanr *scanner.Scanner, expected []byte) error {
	for _, xb := range expected {
		if err := ExpectByte(scanr, xb); err != nil {
			return err
		}
	}
	return nil
}

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)
