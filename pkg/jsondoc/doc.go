// Package jsondoc provides a codec boundary and pure tree transforms for
// decoded JSON documents.
//
// A document is the decoded form produced by [Decode]: map[string]any,
// []any, string, float64, bool, or nil. All transform functions operate on
// that representation and perform no I/O. Flatten and search traverse with
// an explicit work list instead of recursion so arbitrarily deep documents
// cannot exhaust the call stack.
package jsondoc
