// Package batch loads and saves many JSON files concurrently.
//
// Two in-process strategies share one contract:
//   - [Load] / [Save]: one goroutine per item, unbounded fan-out, the
//     caller bounds concurrency by the size of the input.
//   - [LoadPool] / [SavePool]: a bounded pool of reusable workers, excess
//     items queue until a worker frees up.
//
// A third, process-backed strategy lives in package procpool.
//
// Failure policy is the same everywhere: a single item's failure (missing
// file, permission, malformed content, unencodable value) is caught at the
// item boundary and never aborts sibling items or propagates to the caller.
// Reads surface it as a failed [Item]; writes omit the path from the
// success list. Callers needing diagnostics set [Config.Logger], which
// debug-logs every swallowed failure.
package batch

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/jsonkit/internal/fs"
	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

// DefaultWorkers bounds pool strategies when Config.Workers is unset.
const DefaultWorkers = 10

const filePerm = 0o644

// Item is the per-path outcome of a batch read.
// A non-nil Err marks the item absent; Doc is then nil.
type Item struct {
	Doc any
	Err error
}

// Failed reports whether the item is an absence marker.
// A failed item is distinct from a successfully decoded null document.
func (it Item) Failed() bool {
	return it.Err != nil
}

// Entry pairs a destination path with the document to write there.
type Entry struct {
	Path string
	Doc  any
}

// Config carries the shared knobs of all batch operations.
// The zero value uses the real filesystem, compact encoding, and
// [DefaultWorkers] for pool strategies.
type Config struct {
	// Workers bounds the pool strategies. Ignored by Load/Save.
	Workers int

	// Encode configures document serialization for writes.
	Encode jsondoc.Options

	// FS is the filesystem boundary. Nil means the real filesystem.
	FS fs.FS

	// Logger, when set, receives a debug line for every swallowed
	// per-item failure.
	Logger *log.Logger
}

func (c Config) fsys() fs.FS {
	if c.FS != nil {
		return c.FS
	}

	return fs.NewReal()
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}

	return DefaultWorkers
}

func (c Config) logFailure(op, path string, err error) {
	if c.Logger != nil {
		c.Logger.Debug("item failed", "op", op, "path", path, "err", err)
	}
}

// loadFile reads and decodes one document. Any failure, filesystem or
// decode, comes back as a single error for the item boundary to swallow.
func loadFile(fsys fs.FS, path string) (any, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := jsondoc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return doc, nil
}

// saveFile encodes and atomically writes one document.
func saveFile(fsys fs.FS, entry Entry, opts jsondoc.Options) error {
	data, err := jsondoc.Encode(entry.Doc, opts)
	if err != nil {
		return fmt.Errorf("encode %s: %w", entry.Path, err)
	}

	err = fsys.WriteFileAtomic(entry.Path, data, os.FileMode(filePerm))
	if err != nil {
		return fmt.Errorf("write %s: %w", entry.Path, err)
	}

	return nil
}
