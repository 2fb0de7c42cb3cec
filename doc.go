// Package jsonsplit turns a large JSON document holding a collection of
// records into a stream of NDJSON lines, one per record, in constant memory.
//
// The package is organized into several sub-packages:
//
// - token: JSON tokens and the Source / Sink interfaces
// - encoding/json: pull reader and compact encoder for JSON tokens
// - extract: finding the collection and writing its records
// - filter: selecting records with JSONPath queries
// - decompress: reading zstd, gzip, s2 or lz4 compressed input
//
// These are combined as follows:
//
//	decompress -> read JSON -> navigate to collection -> encode records
//
// The document is never loaded in memory.  Values outside the collection are
// skipped token by token, and each record is written out and flushed as soon
// as it has been read, so output is available straight away when piping it
// through tools like 'head'.
//
// The CLI utility is in the directory cmd/jsonsplit. You can install it with:
//
//	go install github.com/arnodel/jsonsplit/cmd/jsonsplit
//
// Example:
//
//	jsonsplit -key result deals.json.zst > deals.ndjson
package jsonsplit
