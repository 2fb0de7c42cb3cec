package token

import "io"

// A Source produces tokens one at a time, on demand.  When the stream is
// exhausted, Next returns (nil, io.EOF).  Any other error is a failure of the
// underlying input (I/O or syntax) and the Source should not be used further.
type Source interface {
	Next() (Token, error)
}

// A Sink accepts tokens one at a time.  Put does not return an error: sinks
// writing output are expected to panic with a *format.PrinterError, which
// callers capture with format.CatchPrinterError.
type Sink interface {
	Put(Token)
}

// SliceSource is a Source reading from a fixed slice of tokens.
type SliceSource struct {
	toks []Token
	err  error
}

var _ Source = &SliceSource{}

func NewSliceSource(toks []Token) *SliceSource {
	return &SliceSource{toks: toks}
}

// NewFailingSliceSource returns a SliceSource which returns err instead of
// io.EOF once toks are exhausted.
func NewFailingSliceSource(toks []Token, err error) *SliceSource {
	return &SliceSource{toks: toks, err: err}
}

func (r *SliceSource) Next() (Token, error) {
	if len(r.toks) == 0 {
		if r.err != nil {
			return nil, r.err
		}
		return nil, io.EOF
	}
	tok := r.toks[0]
	r.toks = r.toks[1:]
	return tok, nil
}

// Remaining returns the number of tokens not yet read.
func (r *SliceSource) Remaining() int {
	return len(r.toks)
}

// Accumulator is a Sink which stores all the tokens it is given.
type Accumulator struct {
	toks []Token
}

var _ Sink = &Accumulator{}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

func (w *Accumulator) Put(tok Token) {
	w.toks = append(w.toks, tok)
}

func (w *Accumulator) Tokens() []Token {
	return w.toks
}

// Discard is a Sink which drops all tokens.
var Discard Sink = discard{}

type discard struct{}

func (discard) Put(Token) {}
