package json

import (
	"fmt"

	"github.com/arnodel/jsonsplit/internal/format"
	"github.com/arnodel/jsonsplit/token"
)

// An Encoder writes the tokens it is given as compact JSON text (no
// whitespace), using a Printer for output.  Scalars are written verbatim as
// they were read, so numbers and string escapes are preserved exactly.
//
// The Encoder does not check that the tokens are well paired: it trusts its
// input to be a valid stream, as produced by a Reader.
type Encoder struct {
	format.Printer
	*format.Colorizer

	// Set after a complete value inside a collection: the next item needs a
	// ',' before it.
	needSeparator bool
}

var _ token.Sink = &Encoder{}

// NewEncoder returns an Encoder printing to p.  c may be nil.
func NewEncoder(p format.Printer, c *format.Colorizer) *Encoder {
	return &Encoder{Printer: p, Colorizer: c}
}

// Put writes one token.  It panics with a *format.PrinterError if the
// Printer fails.
func (e *Encoder) Put(tok token.Token) {
	switch t := tok.(type) {
	case *token.StartObject:
		e.separate()
		e.PrintBytes(openObjectBytes)
		e.needSeparator = false
	case *token.StartArray:
		e.separate()
		e.PrintBytes(openArrayBytes)
		e.needSeparator = false
	case *token.EndObject:
		e.PrintBytes(closeObjectBytes)
		e.needSeparator = true
	case *token.EndArray:
		e.PrintBytes(closeArrayBytes)
		e.needSeparator = true
	case *token.Scalar:
		e.separate()
		e.Colorizer.PrintScalar(e.Printer, t)
		if t.IsKey() {
			e.PrintBytes(keyValueSeparatorBytes)
			e.needSeparator = false
		} else {
			e.needSeparator = true
		}
	default:
		panic(fmt.Sprintf("invalid token: %#v", tok))
	}
}

// Reset forgets any pending separator so that the next token starts a new
// top-level value.
func (e *Encoder) Reset() {
	e.needSeparator = false
}

func (e *Encoder) separate() {
	if e.needSeparator {
		e.PrintBytes(itemSeparatorBytes)
	}
}

var (
	openObjectBytes        = []byte("{")
	closeObjectBytes       = []byte("}")
	openArrayBytes         = []byte("[")
	closeArrayBytes        = []byte("]")
	itemSeparatorBytes     = []byte(",")
	keyValueSeparatorBytes = []byte(":")
)
