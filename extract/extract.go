package extract

import (
	"context"
	"io"

	"github.com/arnodel/jsonsplit/encoding/json"
)

// Extract reads a JSON document from r and writes each member of the object
// at the target key of its root object to w, one per line.  The statistics
// are returned even when there is an error, so it is possible to tell how
// many records were written.
//
// If ctx is canceled, reading stops and ctx.Err() is returned.
func Extract(ctx context.Context, r io.Reader, w io.Writer, opts ...Option) (Stats, error) {
	x := NewExtractor(w, opts...)
	err := NewNavigator(json.NewReader(cancelReader{ctx: ctx, r: r}), x, opts...).Run(ctx)
	return x.Stats(), err
}
