package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/jsonkit/internal/fs"
)

// Options configures encoding.
type Options struct {
	// Indent is the number of spaces per nesting level.
	// Zero produces compact output.
	Indent int

	// EscapeHTML controls whether <, >, and & are escaped in strings.
	// Off by default, matching output meant for files rather than HTML.
	EscapeHTML bool

	// Prefix is prepended to every indented line. Rarely needed; passed
	// through to the underlying encoder.
	Prefix string
}

// DefaultOptions returns the options used for pretty output: four-space
// indentation, no HTML escaping.
func DefaultOptions() Options {
	return Options{Indent: 4}
}

// Encode serializes doc to UTF-8 JSON text.
//
// Returns an error for values the codec cannot represent (channels, cycles,
// NaN). The output carries no trailing newline.
func Encode(doc any, opts Options) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(opts.EscapeHTML)

	if opts.Indent > 0 {
		enc.SetIndent(opts.Prefix, strings.Repeat(" ", opts.Indent))
	}

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses UTF-8 JSON text into a document.
func Decode(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return doc, nil
}

// DecodeString parses a JSON string into a document.
func DecodeString(text string) (any, error) {
	return Decode([]byte(text))
}

// DecodeLenient parses JSONC (comments, trailing commas) by standardizing
// the input first, then decoding.
func DecodeLenient(data []byte) (any, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize: %w", err)
	}

	return Decode(standardized)
}

// Pretty returns doc as an indented JSON string.
func Pretty(doc any, opts Options) (string, error) {
	if opts.Indent <= 0 {
		opts.Indent = DefaultOptions().Indent
	}

	data, err := Encode(doc, opts)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Fprint pretty-prints doc to w with a trailing newline.
func Fprint(w io.Writer, doc any, opts Options) error {
	text, err := Pretty(doc, opts)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, text)

	return err
}

// ValidBytes reports whether data is well-formed JSON.
// The specific parse error is discarded.
func ValidBytes(data []byte) bool {
	return json.Valid(data)
}

// ValidString reports whether text is well-formed JSON.
func ValidString(text string) bool {
	return ValidBytes([]byte(text))
}

// ValidFile reports whether the file at path contains well-formed JSON.
// Read failures count as invalid.
func ValidFile(fsys fs.FS, path string) bool {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return false
	}

	return ValidBytes(data)
}
