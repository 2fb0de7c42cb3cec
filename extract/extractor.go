package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arnodel/jsonsplit/encoding/json"
	"github.com/arnodel/jsonsplit/internal/format"
	"github.com/arnodel/jsonsplit/token"
	"github.com/cespare/xxhash/v2"
)

// A Filter decides whether a record is written.  record is the compact JSON
// text of the record's value.
type Filter interface {
	Match(record []byte) (bool, error)
}

// Stats sums up the work of an Extractor.  Bytes and Digest are computed on
// the records as written without color codes.
type Stats struct {
	Records int64  // records written
	Skipped int64  // records dropped by the filter
	Bytes   int64  // bytes written, including line terminators
	Digest  uint64 // xxhash64 of the bytes written
}

// An Extractor writes each record it is given as one line of compact JSON.
// Each line is written in a single call to the output's Write method, then
// the output is flushed if it has a Flush() error method.
type Extractor struct {
	out     *format.DefaultPrinter
	buf     bytes.Buffer
	encoder *json.Encoder

	// Only set when coloring
	colorEncoder *json.Encoder

	filter   Filter
	observer Observer
	digest   *xxhash.Digest
	stats    Stats
}

var _ RecordHandler = &Extractor{}

// NewExtractor returns an Extractor writing to w.  The WithFilter,
// WithColor and WithObserver options are relevant.
func NewExtractor(w io.Writer, opts ...Option) *Extractor {
	o := newOptions(opts)
	x := &Extractor{
		out:      format.NewPrinter(w),
		filter:   o.filter,
		observer: o.observer,
		digest:   xxhash.New(),
	}
	x.encoder = json.NewEncoder(format.NewPrinter(&x.buf), nil)
	if o.color {
		x.colorEncoder = json.NewEncoder(x.out, &format.DefaultColorizer)
	}
	return x
}

// HandleRecord reads the value of the record from src and writes it out.
func (x *Extractor) HandleRecord(key *token.Scalar, src token.Source) error {
	name := key.ToString()
	x.observer.RecordStart(name)
	x.buf.Reset()
	x.encoder.Reset()
	if err := ConsumeValue(src, x.encoder); err != nil {
		return err
	}
	if x.filter != nil {
		ok, err := x.filter.Match(x.buf.Bytes())
		if err != nil {
			return fmt.Errorf("filtering record %q: %w", name, err)
		}
		if !ok {
			x.stats.Skipped++
			x.observer.RecordEnd(name, 0)
			return nil
		}
	}
	x.buf.WriteByte('\n')
	line := x.buf.Bytes()
	if err := x.write(line); err != nil {
		var perr *format.PrinterError
		if errors.As(err, &perr) {
			err = perr.Err
		}
		return &StreamError{Op: "write", Err: err}
	}
	x.digest.Write(line)
	x.stats.Records++
	x.stats.Bytes += int64(len(line))
	x.observer.RecordEnd(name, len(line))
	return nil
}

// Stats returns the statistics of the records handled so far.
func (x *Extractor) Stats() Stats {
	s := x.stats
	s.Digest = x.digest.Sum64()
	return s
}

func (x *Extractor) write(line []byte) (err error) {
	defer format.CatchPrinterError(&err)
	if x.colorEncoder == nil {
		x.out.PrintBytes(line)
	} else if err := x.writeColored(line); err != nil {
		return err
	}
	x.out.Flush()
	return nil
}

// writeColored reads the line back to print it with colors.
func (x *Extractor) writeColored(line []byte) error {
	r := json.NewReader(bytes.NewReader(line))
	x.colorEncoder.Reset()
	for {
		tok, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		x.colorEncoder.Put(tok)
	}
	x.out.PrintBytes(newline)
	return nil
}

var newline = []byte{'\n'}
