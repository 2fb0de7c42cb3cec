// Package filter selects records with a JSONPath query (RFC 9535).
//
// The query is evaluated against a one-element array holding the record, so
// that a filter selector applies to the record itself:
//
//	$[?@.status == "open" && @.amount > 100]
//
// A record matches if the query selects at least one node which is neither
// false nor null.  So $[0].active matches the records whose "active" member
// is present and not false or null.
//
// Numbers are compared as float64 values, so integers beyond 2^53 may compare
// equal to their neighbours.  Large identifiers are best compared as strings
// when the records store them that way.
package filter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theory/jsonpath"
)

var (
	ErrEmptyQuery   = errors.New("empty JSONPath query")
	ErrInvalidQuery = errors.New("invalid JSONPath query")
	ErrInvalidJSON  = errors.New("invalid JSON record")
)

// JSONPath is a record filter.  It implements extract.Filter.
type JSONPath struct {
	query string
	path  *jsonpath.Path
}

// Parse compiles query.
func Parse(query string) (*JSONPath, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	path, err := jsonpath.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidQuery, query, err)
	}
	return &JSONPath{query: query, path: path}, nil
}

// Match reports whether the query selects a node in record which is neither
// false nor null.  Numbers in record are decoded as float64.
func (f *JSONPath) Match(record []byte) (bool, error) {
	var value any
	if err := json.Unmarshal(record, &value); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	for _, node := range f.path.Select([]any{value}) {
		if node != nil && node != false {
			return true, nil
		}
	}
	return false, nil
}

func (f *JSONPath) String() string {
	return f.query
}
