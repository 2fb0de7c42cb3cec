package extract

import (
	"context"
	"io"

	"github.com/arnodel/jsonsplit/token"
)

// cancelCheckInterval is the number of tokens read between two checks of the
// context by a cancelSource.
const cancelCheckInterval = 256

// A cancelSource fails with the context error once its context is done, so
// that skipping or copying a large value can be interrupted.
type cancelSource struct {
	token.Source
	ctx context.Context
	n   int
}

var _ skipper = (*cancelSource)(nil)

func (s *cancelSource) Next() (token.Token, error) {
	s.n++
	if s.n%cancelCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			return nil, err
		}
	}
	return s.Source.Next()
}

func (s *cancelSource) SetSkipping(on bool) {
	if sk, ok := s.Source.(skipper); ok {
		sk.SetSkipping(on)
	}
}

// A cancelReader stops reading once its context is done.  It catches
// cancellation inside a single token, e.g. a very long string.
type cancelReader struct {
	ctx context.Context
	r   io.Reader
}

func (r cancelReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
