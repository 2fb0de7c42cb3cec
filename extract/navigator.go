package extract

import (
	"context"
	"io"

	"github.com/arnodel/jsonsplit/internal/scanner"
	"github.com/arnodel/jsonsplit/token"
)

// DefaultTargetKey is the root key whose object value holds the records,
// unless WithTargetKey says otherwise.
const DefaultTargetKey = "result"

// A RecordHandler is given each record of the target collection.  When
// HandleRecord is called, the next token in src is the first token of the
// record's value and HandleRecord must consume exactly that value.
type RecordHandler interface {
	HandleRecord(key *token.Scalar, src token.Source) error
}

// A Navigator walks the root object of a JSON document, skipping values
// until it finds the target key, then hands each member of the target object
// to a RecordHandler.
//
// Root members after the target object (including repeats of the target key)
// are skipped.  Only whitespace may follow the root object.
type Navigator struct {
	src       token.Source
	in        token.Source // src checking the context passed to Run
	handler   RecordHandler
	targetKey string
	observer  Observer
}

// NewNavigator returns a Navigator reading tokens from src.  Only the
// WithTargetKey and WithObserver options are relevant.
func NewNavigator(src token.Source, handler RecordHandler, opts ...Option) *Navigator {
	o := newOptions(opts)
	return &Navigator{
		src:       src,
		handler:   handler,
		targetKey: o.targetKey,
		observer:  o.observer,
	}
}

// Run consumes the whole input.  It returns nil if the target collection was
// found and all its records were handled successfully.  ctx is checked
// before each root member and each record, and regularly while skipping or
// handling a value.  If it is done, ctx.Err() is returned.
func (n *Navigator) Run(ctx context.Context) error {
	return n.withPos(n.run(ctx))
}

func (n *Navigator) run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.in = &cancelSource{Source: n.src, ctx: ctx}
	tok, err := n.in.Next()
	if err == io.EOF {
		return structureError(MsgExpectedTopLevelObject, nil)
	}
	if err != nil {
		return readError(err)
	}
	if token.KindOf(tok) != token.KindStartObject {
		return structureError(MsgExpectedTopLevelObject, tok)
	}
	if err := n.findCollection(ctx); err != nil {
		return err
	}
	if err := n.readRecords(ctx); err != nil {
		return err
	}
	return n.finishRoot(ctx)
}

// findCollection skips root members until the target key, and consumes the
// start of its object value.
func (n *Navigator) findCollection(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := n.in.Next()
		if err != nil {
			return readError(err)
		}
		switch kind := token.KindOf(tok); {
		case kind == token.KindKey:
			key := tok.(*token.Scalar)
			if !key.EqualsString(n.targetKey) {
				if err := ConsumeValue(n.in, nil); err != nil {
					return err
				}
				continue
			}
			tok, err := n.in.Next()
			if err != nil {
				return readError(err)
			}
			if token.KindOf(tok) != token.KindStartObject {
				return structureError(MsgExpectedCollection, tok)
			}
			n.observer.CollectionStart(n.targetKey)
			return nil
		case kind == token.KindEndObject:
			return structureError(MsgTargetNotFound, nil)
		case kind == token.KindScalar, kind.IsStart():
			// A value without a key: skip it.
			if err := consumeFrom(tok, n.in, nil); err != nil {
				return err
			}
		default:
			return structureError(MsgUnexpectedEvent, tok)
		}
	}
}

// readRecords passes each member of the target object to the handler, and
// consumes the end of the target object.
func (n *Navigator) readRecords(ctx context.Context) error {
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := n.in.Next()
		if err != nil {
			return readError(err)
		}
		switch token.KindOf(tok) {
		case token.KindKey:
			if err := n.handler.HandleRecord(tok.(*token.Scalar), n.in); err != nil {
				return err
			}
			count++
		case token.KindEndObject:
			n.observer.CollectionEnd(count)
			return nil
		default:
			return structureError(MsgUnexpectedEvent, tok)
		}
	}
}

// finishRoot skips the remaining root members and checks that nothing
// follows the root object.
func (n *Navigator) finishRoot(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := n.in.Next()
		if err != nil {
			return readError(err)
		}
		switch kind := token.KindOf(tok); {
		case kind == token.KindKey:
			if err := ConsumeValue(n.in, nil); err != nil {
				return err
			}
		case kind == token.KindScalar, kind.IsStart():
			if err := consumeFrom(tok, n.in, nil); err != nil {
				return err
			}
		case kind == token.KindEndObject:
			tok, err := n.in.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return readError(err)
			}
			return structureError(MsgTrailingData, tok)
		default:
			return structureError(MsgUnexpectedEvent, tok)
		}
	}
}

// positioner is implemented by sources which know where they are in the
// input, e.g. *json.Reader.
type positioner interface {
	Pos() scanner.Pos
}

func (n *Navigator) withPos(err error) error {
	serr, ok := err.(*StructureError)
	if !ok || serr.At != "" {
		return err
	}
	if p, ok := n.src.(positioner); ok {
		serr.At = p.Pos().String()
	}
	return err
}
