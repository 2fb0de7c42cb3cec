// Package extract splits the records of one object nested in a large JSON
// document into lines of compact JSON (NDJSON).
//
// The document is read as a stream of tokens.  A Navigator finds the target
// key in the root object, skipping the values of the other root keys without
// decoding them, then hands each member of the target object to an
// Extractor, which writes its value on a line of its own.  For example, with
// the default target key "result", the input
//
//	{"id": 1, "result": {"a": {"x": 1}, "b": [1, 2, 3]}}
//
// produces
//
//	{"x":1}
//	[1,2,3]
//
// Values are written as they were found: numbers are not reparsed and string
// escapes are kept.  Memory use only depends on the size of the largest
// record and on the nesting depth of the document.
package extract
